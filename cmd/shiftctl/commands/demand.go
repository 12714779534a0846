package commands

import (
	"fmt"
	"os"
	"strconv"

	"shiftdesk/cmd/shiftctl/printer"
	"shiftdesk/models"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDemandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Show and replace the staffing demand of a date",
	}
	cmd.AddCommand(newDemandShowCmd(), newDemandSetCmd())
	return cmd
}

func newDemandShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Print the saved demand of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return printer.Error("Failed to start", err.Error(), nil)
			}
			slots, err := a.Demand.ListForDate(cmd.Context(), args[0])
			if err != nil {
				return printer.Error("Failed to load demand", err.Error(),
					[]string{"Check that the demand service is reachable (DEMAND_SERVICE_URL)."})
			}
			printer.Demand(cmd.OutOrStdout(), slots, a.Settings.RoleKeys())
			return nil
		},
	}
}

func newDemandSetCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "set <date> --file demand.yaml",
		Short: "Replace the demand of a date with the slots in a YAML file",
		Long: `Replace the whole day of demand. The file is a list of slots, one per hour:

  - hour: "08:00"
    manager: 1
    server: 2
  - hour: "09:00"
    driver: 1

Hours missing from the file have no demand afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := readDemandFile(file)
			if err != nil {
				return printer.Error("Invalid demand file", err.Error(), nil)
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return printer.Error("Failed to start", err.Error(), nil)
			}
			if err := a.Demand.ReplaceForDate(cmd.Context(), args[0], slots); err != nil {
				return printer.Error("Failed to save demand", err.Error(), nil)
			}
			printer.Success(cmd.OutOrStdout(), "Saved %d slots for %s\n", len(slots), args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the day's slots")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readDemandFile decodes a YAML list of flat slots. The hour is read as raw text so that an
// unquoted 08:00 is not mistaken for a number.
func readDemandFile(path string) ([]models.DemandSlot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var rows []map[string]yaml.Node
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	slots := make([]models.DemandSlot, 0, len(rows))
	for i, row := range rows {
		slot := models.DemandSlot{PerRole: make(map[string]int, len(row))}
		for key, node := range row {
			if key == "hour" {
				slot.Hour = node.Value
				continue
			}
			n, err := strconv.Atoi(node.Value)
			if err != nil {
				return nil, fmt.Errorf("slot %d: headcount for %q is not a number: %q", i, key, node.Value)
			}
			slot.PerRole[models.RoleKey(key)] = n
		}
		if slot.Hour == "" {
			return nil, fmt.Errorf("slot %d has no hour", i)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
