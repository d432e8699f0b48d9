package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/rpgo/networth-planner/internal/state"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode a profile into a shareable link, or decode one",
	}
	cmd.AddCommand(a.newShareEncodeCmd(), a.newShareDecodeCmd())
	return cmd
}

func (a *app) newShareEncodeCmd() *cobra.Command {
	var codeOnly bool
	cmd := &cobra.Command{
		Use:   "encode [profile-file]",
		Short: "Print a share link for a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProfile(args)
			if err != nil {
				return err
			}
			var s string
			if codeOnly {
				s, err = state.EncodeShareCode(p)
			} else {
				s, err = state.ShareURL(a.settings.ShareBaseURL, p)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&codeOnly, "code-only", false, "print only the share code")
	return cmd
}

func (a *app) newShareDecodeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "decode <code-or-url>",
		Short: "Decode a share code or link back into a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *domain.Profile
				err error
			)
			if strings.Contains(args[0], "://") {
				p, err = state.ProfileFromURL(args[0])
			} else {
				p, err = state.DecodeShareCode(args[0])
			}
			if err != nil {
				return err
			}
			return a.emitProfile(cmd, p, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the profile to this file instead of stdout")
	return cmd
}

// emitProfile writes p to filename, or prints it as YAML when filename is empty.
func (a *app) emitProfile(cmd *cobra.Command, p *domain.Profile, filename string) error {
	if filename != "" {
		if err := output.SaveProfile(p, filename); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Profile written to %s\n", filename)
		return nil
	}
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
