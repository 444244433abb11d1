package main

import (
	"fmt"

	"github.com/danielliu2707/folio/site"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(themesCmd)
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def := site.DefaultTheme()
		for _, t := range site.Themes() {
			marker := lo.Ternary(t == def, "*", " ")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %s\n", marker, t.Name, t.Text)
		}
		return nil
	},
}
