package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"musyoka.dev/internal/content"
	"musyoka.dev/internal/templates"
)

var checkCmd = &cobra.Command{
	Use:   "check [content.yaml]",
	Short: "Validate the site content and templates",
	Long: `Loads the content file (the configured one, or the embedded default
when none is set) and reports every problem found, then parses all templates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := cfg.ContentPath
		if len(args) == 1 {
			path = args[0]
		}

		site, err := content.Load(path)
		if err != nil {
			var verr *content.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
				}
				return fmt.Errorf("%d content problems", len(verr.Problems))
			}
			return err
		}

		ts, err := templates.New()
		if err != nil {
			return err
		}

		source := path
		if source == "" {
			source = "embedded content"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d projects, %d templates)\n", source, len(site.Projects), len(ts.Names()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
