package printer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"shiftdesk/models"

	"github.com/fatih/color"
)

func init() {
	// Users can disable colors with NO_COLOR.
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

// Success prints a success message in green with a checkmark prefix.
func Success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s", fmt.Sprintf(format, a...))
}

// Warning prints a warning message in yellow.
func Warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "⚠️  %s", fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis.
func Step(w io.Writer, format string, a ...any) {
	cyan.Fprintf(w, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a titled error with suggestions to stderr and returns a plain error for Cobra.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(os.Stderr, "%s\n", explanation)
	}
	if len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(os.Stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(os.Stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}
	return fmt.Errorf("%s", title)
}

// Roster renders the roster as an aligned table.
func Roster(w io.Writer, employees []models.Employee) {
	if len(employees) == 0 {
		faint.Fprintln(w, "No employees.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tJOB\tSTART\tEND")
	for _, e := range employees {
		age := "-"
		if e.Age != nil {
			age = fmt.Sprintf("%d", *e.Age)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, age, e.Job, e.Start, e.End)
	}
	tw.Flush()
}

// Demand renders a day of demand with one column per role. Roles that appear in the slots but
// not in roles are appended in sorted order.
func Demand(w io.Writer, slots []models.DemandSlot, roles []string) {
	if len(slots) == 0 {
		faint.Fprintln(w, "No demand.")
		return
	}
	seen := make(map[string]bool, len(roles))
	for _, role := range roles {
		seen[role] = true
	}
	columns := append([]string(nil), roles...)
	for _, s := range slots {
		for _, role := range s.Roles() {
			if !seen[role] {
				seen[role] = true
				columns = append(columns, role)
			}
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(append([]string{"HOUR"}, upper(columns)...), "\t"))
	for _, s := range slots {
		row := []string{s.Hour}
		for _, role := range columns {
			row = append(row, fmt.Sprintf("%d", s.PerRole[role]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// Schedule renders assignments with one column per role, in the given order.
func Schedule(w io.Writer, assignments []models.ScheduleAssignment, roles []string) {
	if len(assignments) == 0 {
		faint.Fprintln(w, "No assignments.")
		return
	}
	if len(roles) == 0 {
		roles = rolesOf(assignments)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := append([]string{"HOUR"}, upper(roles)...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, a := range assignments {
		row := []string{a.Hour}
		for _, role := range roles {
			names := a.PerRole[role]
			if len(names) == 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, strings.Join(names, ", "))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func rolesOf(assignments []models.ScheduleAssignment) []string {
	seen := map[string]bool{}
	var roles []string
	for _, a := range assignments {
		for role := range a.PerRole {
			if !seen[role] {
				seen[role] = true
				roles = append(roles, role)
			}
		}
	}
	sort.Strings(roles)
	return roles
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}
