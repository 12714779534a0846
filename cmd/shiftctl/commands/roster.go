package commands

import (
	"errors"
	"fmt"

	"shiftdesk/cmd/shiftctl/printer"
	"shiftdesk/models"
	"shiftdesk/services/confirm"
	"shiftdesk/services/errs"
	"shiftdesk/services/roster"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List and edit employees",
	}
	cmd.AddCommand(newRosterListCmd(), newRosterEditCmd(), newRosterDeleteCmd())
	return cmd
}

func newRosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return printer.Error("Failed to start", err.Error(), nil)
			}
			employees, err := a.Roster.List(cmd.Context())
			if err != nil {
				return printer.Error("Failed to load roster", err.Error(),
					[]string{"Check that the roster service is reachable (ROSTER_SERVICE_URL)."})
			}
			printer.Roster(cmd.OutOrStdout(), employees)
			return nil
		},
	}
}

func newRosterEditCmd() *cobra.Command {
	var (
		name, job, start, end string
		age                   int
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return printer.Error("Failed to start", err.Error(), nil)
			}
			if _, err := a.Roster.List(cmd.Context()); err != nil {
				return printer.Error("Failed to load roster", err.Error(), nil)
			}
			id := models.EmployeeID(args[0])
			existing, ok := a.Roster.Get(id)
			if !ok {
				return printer.Error(fmt.Sprintf("Employee %s not found", id), "", []string{"Run 'shiftctl roster list' to see ids."})
			}

			session := roster.EditEmployeeSession(existing)
			flags := cmd.Flags()
			if flags.Changed("name") {
				session.Draft.Name = name
			}
			if flags.Changed("job") {
				session.Draft.Job = job
			}
			if flags.Changed("start") {
				session.Draft.Start = start
			}
			if flags.Changed("end") {
				session.Draft.End = end
			}
			if flags.Changed("age") {
				if age < 0 {
					session.Draft.Age = nil
				} else {
					v := age
					session.Draft.Age = &v
				}
			}

			updated, err := session.Save(cmd.Context(), a.Roster)
			if err != nil {
				return printer.Error("Failed to update employee", err.Error(), nil)
			}
			printer.Success(cmd.OutOrStdout(), "Updated %s (%s)\n", updated.Name, updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "employee name")
	cmd.Flags().IntVar(&age, "age", -1, "employee age (negative clears it)")
	cmd.Flags().StringVar(&job, "job", "", "job from the catalog")
	cmd.Flags().StringVar(&start, "start", "", "availability start, HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "availability end, HH:MM")
	return cmd
}

func newRosterDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an employee after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.EmployeeID(args[0])
			var confirmer confirm.Confirmer = confirm.Fixed(true)
			if !yes {
				confirmer = confirm.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			ok, err := confirm.Await(cmd.Context(), confirmer.Confirm(cmd.Context(), fmt.Sprintf("Delete employee %s?", id)))
			if err != nil {
				return printer.Error("Confirmation failed", err.Error(), nil)
			}
			if !ok {
				printer.Warning(cmd.OutOrStdout(), "Aborted; employee %s kept\n", id)
				return nil
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return printer.Error("Failed to start", err.Error(), nil)
			}
			err = a.Roster.Delete(cmd.Context(), id)
			var notFound *errs.NotFoundError
			if errors.As(err, &notFound) {
				printer.Warning(cmd.OutOrStdout(), "Employee %s was already gone\n", id)
				return nil
			}
			if err != nil {
				return printer.Error("Failed to delete employee", err.Error(), nil)
			}
			printer.Success(cmd.OutOrStdout(), "Deleted employee %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
