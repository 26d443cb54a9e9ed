package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
)

// articlesMarkdown renders articles as a markdown table.
func articlesMarkdown(articles []models.Article, amount func(decimal.Decimal) string) string {
	if len(articles) == 0 {
		return "No articles.\n"
	}

	var b strings.Builder
	fmt.Fprintln(&b, "| ID | Title | Brand | Size | Price | Bought | Status |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|:---|")
	for _, a := range articles {
		bought := ""
		if a.PurchasePrice != nil {
			bought = amount(*a.PurchasePrice)
		}
		status := "in stock"
		if a.Sold {
			status = "sold"
			if a.SoldDate != nil {
				status += " " + a.SoldDate.Format(dateLayout)
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			a.ID,
			escapeCell(a.Title),
			escapeCell(a.Brand),
			escapeCell(a.Size),
			amount(a.SalePrice),
			bought,
			status,
		)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
