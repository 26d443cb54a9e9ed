package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/service/reporting"
)

const dateLayout = "2006-01-02"

type statsCmd struct {
	app    *App
	date   string
	period string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display sales analytics" }
func (*statsCmd) Usage() string {
	return `ledger stats [-d <date>] [-p week|month|year]

  Displays the activity summary as of now, or as of the end of the given day.
  With -p only the revenue of that window is printed.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Report date YYYY-MM-DD (defaults to now)")
	f.StringVar(&c.period, "p", "", "Print only the revenue of this window (week, month, year)")
}

func (c *statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, reports, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}

	var report models.Analytics
	if c.date == "" {
		report, err = svc.CurrentAnalytics(ctx)
	} else {
		day, perr := time.ParseInLocation(dateLayout, c.date, svc.Location())
		if perr != nil {
			return c.app.usage("invalid date %q, expected YYYY-MM-DD", c.date)
		}
		report, err = svc.AnalyticsAsOf(ctx, day.AddDate(0, 0, 1).Add(-time.Nanosecond))
	}
	if err != nil {
		return c.app.fail(err)
	}

	if c.period == "" {
		fmt.Fprintln(c.app.Out, reports.FormatSummary(report))
		return subcommands.ExitSuccess
	}
	period, err := models.ParsePeriod(c.period)
	if err != nil {
		return c.app.usage("%v", err)
	}
	fmt.Fprintf(c.app.Out, "%s revenue: %s\n", period, reports.FormatAmount(report.RevenueFor(period)))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	app *App
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export sold articles to the configured spreadsheet" }
func (*exportCmd) Usage() string {
	return `ledger export

  Rewrites the configured Google Sheets range with every sold article.
`
}

func (*exportCmd) SetFlags(*flag.FlagSet) {}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, reports, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	n, err := reports.ExportSold(ctx)
	if errors.Is(err, reporting.ErrExportDisabled) {
		return c.app.usage("%v, set GOOGLE_SHEET_DATABASE_ID", err)
	}
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "exported %d sold articles\n", n)
	return subcommands.ExitSuccess
}
