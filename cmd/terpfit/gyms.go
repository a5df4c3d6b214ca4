package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Pranav-Anand04/TerpFit/internal/gyms"
)

var gymsCmd = &cobra.Command{
	Use:   "gyms",
	Short: "List campus gyms",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := gyms.Load(cfg.Gyms)
		if err != nil {
			return err
		}
		t := newTable("NAME", "HOURS", "LOCATION", "FACILITIES")
		for _, g := range catalog.All() {
			t.Row(g.Name, g.Hours, fmt.Sprintf("%.6f,%.6f", g.Location[0], g.Location[1]), strings.Join(g.Facilities, ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var bodyCell = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
}
