package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
)

var validateOffline bool

// validateCmd はグリッドファイルを保存せずに検証します。
var validateCmd = &cobra.Command{
	Use:   "validate <grid.json>",
	Short: "Validate a grid file without saving it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		grid, err := readGridFile(args[0])
		if err != nil {
			return err
		}

		var validation *timesheet.GridValidation
		if validateOffline {
			// オフラインではカタログもディレクトリも使わず、
			// ステータス照合は保留扱いになります。
			service := timesheet.NewService(nil, nil, nil, nil, nil)
			validation, err = service.ValidateTimesheetGrid(ctx, grid, nil)
		} else {
			eng, cleanup, engErr := newEngine(ctx)
			if engErr != nil {
				return engErr
			}
			defer cleanup()

			restrictions, rErr := eng.service.BuildRestrictions(ctx, grid)
			if rErr != nil {
				return rErr
			}
			validation, err = eng.service.ValidateTimesheetGrid(ctx, grid, restrictions)
		}
		if err != nil {
			return err
		}

		printValidation(cmd, validation)
		if !validation.Valid {
			return fmt.Errorf("grid is invalid")
		}
		cmd.Println("grid is valid")
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateOffline, "offline", false, "validate without a database connection (status checks stay pending)")
}

func printValidation(cmd *cobra.Command, v *timesheet.GridValidation) {
	for _, e := range v.SetupErrors {
		cmd.Printf("setup error: %s: %s\n", e.Field, e.Message)
	}
	for _, issue := range v.Errors {
		cmd.Printf("error: %s %s: %s\n", issue.EmployeeID, issue.Date, issue.Message)
	}
	for _, issue := range v.Warnings {
		cmd.Printf("warning: %s %s: %s\n", issue.EmployeeID, issue.Date, issue.Message)
	}
	for _, issue := range v.Infos {
		cmd.Printf("info: %s %s: %s\n", issue.EmployeeID, issue.Date, issue.Message)
	}
}
