package state

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
)

// ShareParam is the query parameter carrying a share code.
const ShareParam = "s"

// ErrInvalidShareCode is returned for codes that do not decode to a profile.
var ErrInvalidShareCode = errors.New("invalid share code")

// EncodeShareCode packs a profile into a URL-safe, unpadded base64 string.
func EncodeShareCode(p *domain.Profile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShareCode unpacks a share code. Padded codes are accepted.
func DecodeShareCode(code string) (*domain.Profile, error) {
	code = strings.TrimRight(strings.TrimSpace(code), "=")
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", ErrInvalidShareCode)
	}
	data, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}
	profile, err := config.NewInputParser().ParseProfileJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShareCode, err)
	}
	return profile, nil
}

// ShareURL returns base with the profile's share code in the query string.
func ShareURL(base string, p *domain.Profile) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	code, err := EncodeShareCode(p)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(ShareParam, code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ProfileFromURL extracts and decodes the share code from a URL.
func ProfileFromURL(raw string) (*domain.Profile, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}
	code := u.Query().Get(ShareParam)
	if code == "" {
		return nil, fmt.Errorf("%w: url has no %q parameter", ErrInvalidShareCode, ShareParam)
	}
	return DecodeShareCode(code)
}
