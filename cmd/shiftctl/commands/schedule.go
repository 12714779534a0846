package commands

import (
	"time"

	"shiftdesk/cmd/shiftctl/printer"
	"shiftdesk/models"

	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate schedules",
	}
	cmd.AddCommand(newScheduleGenerateCmd())
	return cmd
}

func newScheduleGenerateCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the solver for a schedule of one date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format(models.DateLayout)
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return printer.Error("Failed to start", err.Error(), nil)
			}
			if _, err := a.Roster.List(cmd.Context()); err != nil {
				return printer.Error("Failed to load roster", err.Error(), nil)
			}

			printer.Step(cmd.OutOrStdout(), "Generating schedule for %s\n", date)
			assignments, err := a.Coordinator.Generate(cmd.Context(), date)
			if err != nil {
				return printer.Error("Schedule generation failed", err.Error(),
					[]string{"Define demand for the date first, or check SOLVER_URL."})
			}
			printer.Schedule(cmd.OutOrStdout(), assignments, a.Coordinator.RoleOrder().Roles)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date to schedule, YYYY-MM-DD (default today)")
	return cmd
}
