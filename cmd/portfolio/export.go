package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"musyoka.dev/internal/content"
	"musyoka.dev/internal/site"
	"musyoka.dev/internal/templates"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the rendered site to a directory",
	Long:  `Renders the home page, one page per project category and one detail page per project, and copies the static assets, so the site can be hosted without the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")

		s, err := content.Load(cfg.ContentPath)
		if err != nil {
			return err
		}
		ts, err := templates.New()
		if err != nil {
			return err
		}

		exporter := &site.Exporter{
			Site:            s,
			Templates:       ts,
			StaticDir:       cfg.StaticDir,
			OutputDir:       out,
			ScrollThreshold: cfg.ScrollThreshold,
		}
		res, err := exporter.Export()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d pages and %d static files to %s\n", res.Pages, res.StaticFiles, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "dist", "output directory")
	rootCmd.AddCommand(exportCmd)
}
