package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rpgo/networth-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the report in the named format ("all" writes the
// console and detailed CSV variants) and returns the files written.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		path, err := WriteFormatted(f, report, dir, FileExtension(f))
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, CSVSummarizer{}} {
			path, err := WriteFormatted(f, report, dir, FileExtension(f))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveProfile writes a profile as JSON when filename ends in .json, YAML otherwise.
func SaveProfile(profile *domain.Profile, filename string) error {
	var (
		b   []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		b, err = json.MarshalIndent(profile, "", "  ")
	} else {
		b, err = yaml.Marshal(profile)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
