package main

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/danielliu2707/folio/analytics"
	"github.com/danielliu2707/folio/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(viewsCmd)
}

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Show the page views recorded by the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Parse()
		if err != nil {
			return err
		}

		if c.DataDirectory == "" {
			return errors.New("no data directory configured")
		}

		r, err := analytics.NewBoltReporter(filepath.Join(c.DataDirectory, analytics.DatabaseName))
		if err != nil {
			return err
		}
		defer r.Close()

		counts, err := r.Counts()
		if err != nil {
			return err
		}

		paths := lo.Keys(counts)
		slices.SortFunc(paths, func(a, b string) int {
			if n := cmp.Compare(counts[b], counts[a]); n != 0 {
				return n
			}
			return strings.Compare(a, b)
		})

		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "%8d %s\n", counts[p], p)
		}
		return nil
	},
}
