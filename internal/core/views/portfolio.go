package views

import (
	"context"
	"html/template"
	"sort"

	"github.com/glcplatform/portal/internal/core/domain"
)

// PortfolioView is the lender's aggregated book: totals, green share and
// the sector/status breakdowns.
type PortfolioView struct{}

func (PortfolioView) Title() string { return "Portfolio Overview" }

type breakdownRow struct {
	Key   string
	Count int
}

type portfolioData struct {
	Summary  domain.PortfolioSummary
	BySector []breakdownRow
	ByStatus []breakdownRow
}

func (PortfolioView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	summary, err := rc.Backend.PortfolioSummary(ctx, rc.Session)
	if err != nil {
		return "", err
	}

	return render("portfolio.tmpl", portfolioData{
		Summary:  summary,
		BySector: sortedRows(summary.SectorBreakdown),
		ByStatus: sortedRows(summary.StatusBreakdown),
	})
}

// sortedRows flattens a breakdown map into rows ordered by count, largest
// first, with name order breaking ties so renders are stable.
func sortedRows(m map[string]int) []breakdownRow {
	rows := make([]breakdownRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, breakdownRow{Key: k, Count: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}
