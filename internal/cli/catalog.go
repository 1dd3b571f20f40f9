package cli

import (
	"github.com/spf13/cobra"
)

// catalogCmd は不在区分カタログを一覧表示します。
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the configured absence types",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, cleanup, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		catalog, err := eng.catalogs.ListOrdered(ctx)
		if err != nil {
			return err
		}
		if catalog.Empty() {
			cmd.Println("catalog is empty")
			return nil
		}

		for _, t := range catalog.Types() {
			suffix := ""
			if t.RequiresHours {
				suffix = " (requires hours)"
			}
			cmd.Printf("%-4s %s%s\n", t.Code, t.DisplayName, suffix)
		}
		return nil
	},
}
