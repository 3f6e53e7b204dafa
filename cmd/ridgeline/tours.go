package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/content"
	"github.com/alexcabrera/ridgeline/internal/ui/shared"
)

func newToursCmd(g *globals) *cobra.Command {
	var featured bool

	cmd := &cobra.Command{
		Use:   "tours",
		Short: "List the tour catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withConfig(func(cfg config.Config) error {
				catalog, err := g.loadCatalog(cfg)
				if err != nil {
					return err
				}
				tours := catalog.Tours
				if featured {
					tours = catalog.Featured()
				}
				if len(tours) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tours.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), toursTable(tours))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&featured, "featured", false, "only featured tours")
	return cmd
}

func toursTable(tours []content.Tour) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(shared.ColorAccent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	rows := make([][]string, 0, len(tours))
	for _, t := range tours {
		rows = append(rows, []string{
			t.Slug,
			t.Name,
			t.Region,
			strconv.Itoa(t.Days),
			strconv.Itoa(t.DistanceKM),
			string(t.Difficulty),
			"€" + strconv.Itoa(t.PriceEUR),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(shared.ColorSubtle)).
		Headers("SLUG", "TOUR", "REGION", "DAYS", "KM", "DIFFICULTY", "FROM").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col >= 3 && col != 5:
				return number
			}
			return cell
		}).
		Render()
}
