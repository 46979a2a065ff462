package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"travelmap/internal/domain/models"
	"travelmap/internal/engine"
	"travelmap/internal/utils"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show the cost summary of a plan",
	Long: `Aggregate the estimated and actual costs of a plan per country, per route
and per visit. Only traveled entities are listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		summary := sess.View().Summary()
		if jsonOutput {
			return outputJSON(out(cmd), summary)
		}

		w := out(cmd)
		sections := []struct {
			title string
			lines []engine.CostLine
		}{
			{"Countries", summary.Countries},
			{"Routes", summary.Routes},
			{"Visits", summary.Visits},
		}
		for _, s := range sections {
			PrintSection(w, s.title)
			if len(s.lines) == 0 {
				PrintEmptyState(w, "Nothing traveled")
				continue
			}
			PrintTable(w, []string{"Name", "Estimated", "Actual"}, costRows(s.lines))
		}
		PrintSection(w, "Categories")
		PrintTable(w, []string{"Category", "Estimated", "Actual"}, categoryRows(summary.Total))
		fmt.Fprintln(w)
		PrintTotal(w, "Total estimated", utils.FormatAmount(summary.Total.Estimated.Total()))
		PrintTotal(w, "Total actual", utils.FormatAmount(summary.Total.Actual.Total()))
		return nil
	},
}

func costRows(lines []engine.CostLine) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			l.Name,
			utils.FormatAmount(l.Cost.Estimated.Total()),
			utils.FormatAmount(l.Cost.Actual.Total()),
		})
	}
	return rows
}

func categoryRows(total models.CostComparison) [][]string {
	e, a := total.Estimated, total.Actual
	pairs := []struct {
		name     string
		est, act float64
	}{
		{"accommodation", e.Accommodation, a.Accommodation},
		{"transport", e.Transport, a.Transport},
		{"food", e.Food, a.Food},
		{"activities", e.Activities, a.Activities},
		{"miscellaneous", e.Miscellaneous, a.Miscellaneous},
	}
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.name, utils.FormatAmount(p.est), utils.FormatAmount(p.act)})
	}
	return rows
}
