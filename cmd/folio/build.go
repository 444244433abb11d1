package main

import (
	"fmt"
	"path/filepath"

	"github.com/danielliu2707/folio/analytics"
	"github.com/danielliu2707/folio/log"
	"github.com/danielliu2707/folio/prerender"
	"github.com/danielliu2707/folio/server"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	buildCmd.Flags().Bool("clean", false, "build into a new directory")
	buildCmd.Flags().Int("concurrency", 0, "pages rendered at once (0 for the default)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Prerender the website into the public directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer log.Sync()

		clean, err := cmd.Flags().GetBool("clean")
		if err != nil {
			return err
		}

		concurrency, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return err
		}

		c, err := setup()
		if err != nil {
			return err
		}

		// Page views are recorded by the host of the static build.
		err = analytics.Inject(c.Development, nil)
		if err != nil {
			return err
		}

		s, err := server.NewServer(server.Options{Config: c})
		if err != nil {
			return err
		}

		b, err := prerender.NewBuilder(prerender.Options{
			Handler:     s.Handler(),
			Origin:      c.Site.URL(),
			Assets:      afero.NewBasePathFs(s.Source(), server.AssetsDirectory),
			Public:      afero.NewBasePathFs(afero.NewOsFs(), c.PublicDirectory),
			Concurrency: concurrency,
		})
		if err != nil {
			return err
		}

		report, err := b.Build(cmd.Context(), clean, prerender.Seeds()...)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages, %d files, %d skipped in %s\n",
			filepath.Join(c.PublicDirectory, report.Dir), report.Pages, report.Files, len(report.Skipped), report.Took)
		return nil
	},
}
