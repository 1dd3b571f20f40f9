package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
)

var (
	duplicatesStore string
	duplicatesStart string
	duplicatesEnd   string
)

// duplicatesCmd は店舗と期間に対する既存グリッドの衝突を分類します。
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Classify conflicts between a period and the persisted grids of a store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		start, err := timesheet.ParseDateKey(duplicatesStart)
		if err != nil {
			return fmt.Errorf("parse --start %q: %w", duplicatesStart, err)
		}
		end, err := timesheet.ParseDateKey(duplicatesEnd)
		if err != nil {
			return fmt.Errorf("parse --end %q: %w", duplicatesEnd, err)
		}

		eng, cleanup, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		check, err := eng.service.CheckForDuplicate(ctx, duplicatesStore, start, end)
		if err != nil {
			return err
		}

		if !check.HasDuplicate {
			cmd.Println("no conflict")
			return nil
		}
		cmd.Printf("conflict: %s\n", check.ConflictType)
		if existing := check.Existing; existing != nil {
			cmd.Printf("existing grid %s: %s .. %s, %d employees, %.2f hours\n",
				existing.ID,
				timesheet.DateKey(existing.PeriodStart),
				timesheet.DateKey(existing.PeriodEnd),
				existing.EmployeeCount,
				existing.TotalHours,
			)
		}
		return nil
	},
}

func init() {
	duplicatesCmd.Flags().StringVar(&duplicatesStore, "store", "", "store identifier")
	duplicatesCmd.Flags().StringVar(&duplicatesStart, "start", "", "period start (YYYY-MM-DD)")
	duplicatesCmd.Flags().StringVar(&duplicatesEnd, "end", "", "period end (YYYY-MM-DD)")
	_ = duplicatesCmd.MarkFlagRequired("store")
	_ = duplicatesCmd.MarkFlagRequired("start")
	_ = duplicatesCmd.MarkFlagRequired("end")
}
