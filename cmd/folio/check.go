package main

import (
	"fmt"

	"github.com/danielliu2707/folio/posts"
	"github.com/danielliu2707/folio/site"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration, the site registries and the posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := setup()
		if err != nil {
			return err
		}

		index := posts.NewIndex(afero.NewBasePathFs(afero.NewOsFs(), c.SourceDirectory), posts.Options{
			IncludeDrafts: c.Development,
		})
		snap, err := index.Refresh()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "site:     %s\n", c.Site.URL())
		fmt.Fprintf(out, "projects: %d\n", len(site.Projects()))
		fmt.Fprintf(out, "themes:   %d\n", len(site.Themes()))
		fmt.Fprintf(out, "posts:    %d\n", len(snap.Posts))
		return nil
	},
}
