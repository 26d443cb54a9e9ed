package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/resaletracker/internal/repository/memory"
	"github.com/mamadbah2/resaletracker/internal/service/ledger"
	"github.com/mamadbah2/resaletracker/internal/service/reporting"
)

type harness struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
	opened int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	ids := 0
	svc := ledger.NewService(memory.NewStore(), zaptest.NewLogger(t),
		ledger.WithClock(func() time.Time { return now }),
		ledger.WithLocation(time.UTC),
		ledger.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id%d", ids)
		}))
	reports := reporting.NewService(svc, nil, "EUR", "", nil)

	h := &harness{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	h.app = &App{
		Open: func(context.Context) (*ledger.Service, *reporting.Service, error) {
			h.opened++
			return svc, reports, nil
		},
		Out: h.out,
		Err: h.errOut,
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()

	fs := flag.NewFlagSet("ledger", flag.ContinueOnError)
	cmdr := subcommands.NewCommander(fs, "ledger")
	cmdr.Output = h.out
	cmdr.Error = h.errOut
	Register(cmdr, h.app)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmdr.Execute(context.Background())
}

func TestArticleCommands(t *testing.T) {
	h := newHarness(t)

	if st := h.run(t, "add", "-title", "Wool coat", "-brand", "Zara", "-size", "L", "-price", "40,50", "-buy", "12"); st != subcommands.ExitSuccess {
		t.Fatalf("add = %v, stderr %s", st, h.errOut)
	}
	// the article id is generated first, then its initial history entry
	if got := strings.TrimSpace(h.out.String()); got != "created id1" {
		t.Fatalf("add output = %q", got)
	}

	if st := h.run(t, "search", "zara"); st != subcommands.ExitSuccess || !strings.Contains(h.out.String(), "Wool coat") {
		t.Errorf("search = %v, output %q", st, h.out)
	}

	if st := h.run(t, "reprice", "id1", "35"); st != subcommands.ExitSuccess {
		t.Errorf("reprice = %v, stderr %s", st, h.errOut)
	}

	if st := h.run(t, "sell", "id1", "33.5"); st != subcommands.ExitSuccess {
		t.Errorf("sell = %v, stderr %s", st, h.errOut)
	}
	if st := h.run(t, "sell", "id1", "30"); st != subcommands.ExitFailure || !strings.Contains(h.errOut.String(), "already sold") {
		t.Errorf("second sell = %v, stderr %q", st, h.errOut)
	}

	h.run(t, "list", "-status", "sold")
	if out := h.out.String(); !strings.Contains(out, "| id1 | Wool coat |") || !strings.Contains(out, "sold 2024-03-06") {
		t.Errorf("sold list = %q", out)
	}
	h.run(t, "list", "-status", "unsold")
	if out := h.out.String(); out != "No articles.\n" {
		t.Errorf("unsold list = %q", out)
	}

	if st := h.run(t, "delete", "id1"); st != subcommands.ExitSuccess {
		t.Errorf("delete = %v", st)
	}
	h.run(t, "list")
	if out := h.out.String(); out != "No articles.\n" {
		t.Errorf("list after delete = %q", out)
	}
}

func TestStatsCommand(t *testing.T) {
	h := newHarness(t)
	h.run(t, "add", "-title", "Boots", "-brand", "Dr. Martens", "-size", "42", "-price", "80", "-buy", "30")
	h.run(t, "sell", "id1", "75")

	if st := h.run(t, "stats"); st != subcommands.ExitSuccess {
		t.Fatalf("stats = %v, stderr %s", st, h.errOut)
	}
	if out := h.out.String(); !strings.Contains(out, "1 sold") || !strings.Contains(out, "75") {
		t.Errorf("stats output = %q", out)
	}

	h.run(t, "stats", "-p", "month")
	if out := h.out.String(); !strings.HasPrefix(out, "month revenue: ") || !strings.Contains(out, "75") {
		t.Errorf("monthly stats = %q", out)
	}

	// The following week has no sales of its own.
	h.run(t, "stats", "-d", "2024-03-12", "-p", "week")
	if out := h.out.String(); !strings.HasPrefix(out, "week revenue: ") || strings.Contains(out, "75") {
		t.Errorf("stats for the following week = %q", out)
	}
}

func TestStatsForPastDateIgnoresLaterSales(t *testing.T) {
	h := newHarness(t)
	h.run(t, "add", "-title", "Bag", "-brand", "Longchamp", "-size", "U", "-price", "45", "-buy", "15")
	h.run(t, "sell", "id1", "40")

	h.run(t, "stats", "-d", "2024-02-01", "-p", "week")
	if out := h.out.String(); !strings.HasPrefix(out, "week revenue: ") || strings.Contains(out, "40") {
		t.Errorf("week revenue before the sale = %q", out)
	}

	h.run(t, "stats", "-d", "2024-02-01")
	if out := h.out.String(); !strings.Contains(out, "No sales recorded yet.") {
		t.Errorf("summary before the sale = %q", out)
	}

	// The day of the sale itself includes it.
	h.run(t, "stats", "-d", "2024-03-06", "-p", "week")
	if out := h.out.String(); !strings.Contains(out, "40") {
		t.Errorf("week revenue on the sale day = %q", out)
	}
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	tests := [][]string{
		{"sell", "only-id"},
		{"reprice"},
		{"delete"},
		{"list", "-status", "archived"},
		{"stats", "-d", "06/03/2024"},
		{"stats", "-p", "decade"},
		{"export"},
	}
	for _, args := range tests {
		if st := h.run(t, args...); st != subcommands.ExitUsageError {
			t.Errorf("%v = %v, want usage error (stderr %q)", args, st, h.errOut)
		}
	}
}

func TestInvalidInputFails(t *testing.T) {
	h := newHarness(t)
	if st := h.run(t, "add", "-title", "x", "-brand", "y", "-size", "z", "-price", "free"); st != subcommands.ExitFailure {
		t.Errorf("add with bad price = %v, want failure", st)
	}
	if st := h.run(t, "sell", "missing", "10"); st != subcommands.ExitFailure || !strings.Contains(h.errOut.String(), "not found") {
		t.Errorf("sell missing = %v, stderr %q", st, h.errOut)
	}
}

func TestHelpDoesNotOpenStore(t *testing.T) {
	h := newHarness(t)
	h.app.Open = func(context.Context) (*ledger.Service, *reporting.Service, error) {
		h.opened++
		return nil, nil, errors.New("store unavailable")
	}
	h.run(t, "help")
	if h.opened != 0 {
		t.Errorf("help opened the store %d times", h.opened)
	}

	if st := h.run(t, "list"); st != subcommands.ExitFailure || !strings.Contains(h.errOut.String(), "store unavailable") {
		t.Errorf("list with broken store = %v, stderr %q", st, h.errOut)
	}
}
