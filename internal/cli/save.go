package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
)

var (
	saveForce          bool
	saveSkipValidation bool
)

// saveCmd はグリッドファイルを検証・重複判定のうえ永続化します。
var saveCmd = &cobra.Command{
	Use:   "save <grid.json>",
	Short: "Validate, check duplicates and persist a grid file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		grid, err := readGridFile(args[0])
		if err != nil {
			return err
		}

		eng, cleanup, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		eng.logger.WithFields(logrus.Fields{
			"store":        grid.StoreID,
			"period_start": timesheet.DateKey(grid.PeriodStart),
			"period_end":   timesheet.DateKey(grid.PeriodEnd),
			"employees":    len(grid.Entries),
			"force":        saveForce,
		}).Info("saving timesheet grid")

		result, err := eng.service.SaveTimesheetGrid(ctx, grid, timesheet.SaveOptions{
			ForceCreate:    saveForce,
			SkipValidation: saveSkipValidation,
		})
		if err != nil {
			return err
		}

		if !result.Success {
			if result.Validation != nil {
				printValidation(cmd, result.Validation)
			}
			if dup := result.Duplicate; dup != nil && dup.HasDuplicate {
				cmd.Printf("conflict: %s (retry with --force to save anyway)\n", dup.ConflictType)
			}
			eng.logger.WithField("session", result.SessionID).Warn("save rejected")
			return fmt.Errorf("save failed: %s", strings.Join(result.Errors, "; "))
		}

		outcome := "updated"
		if result.Created {
			outcome = "created"
		}
		eng.logger.WithFields(logrus.Fields{
			"session": result.SessionID,
			"grid":    result.GridID,
			"outcome": outcome,
		}).Info("grid saved")

		cmd.Printf("%s %s (%s)\n", outcome, result.Title, result.GridID)
		cmd.Printf("total hours: %.2f, employees: %d\n", result.TotalHours, result.EmployeeCount)
		for _, emp := range result.Employees {
			name := emp.DisplayName
			if name == "" {
				name = emp.EmployeeID
			}
			cmd.Printf("  %s: %s\n", name, emp.Outcome)
		}
		return nil
	},
}

func init() {
	saveCmd.Flags().BoolVar(&saveForce, "force", false, "save even when the period conflicts with an existing grid")
	saveCmd.Flags().BoolVar(&saveSkipValidation, "skip-validation", false, "persist without running grid validation")
}
