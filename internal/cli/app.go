// Package cli implements the ledger command line subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/mamadbah2/resaletracker/internal/service/ledger"
	"github.com/mamadbah2/resaletracker/internal/service/reporting"
)

// OpenFunc builds the services a command runs against.
type OpenFunc func(ctx context.Context) (*ledger.Service, *reporting.Service, error)

// App is shared by every subcommand. Services are opened on first use so
// that help and usage never touch the store.
type App struct {
	Open OpenFunc
	Out  io.Writer
	Err  io.Writer

	ledger  *ledger.Service
	reports *reporting.Service
}

// NewApp returns an App writing to the standard streams.
func NewApp(open OpenFunc) *App {
	return &App{Open: open, Out: os.Stdout, Err: os.Stderr}
}

// Register the subcommands.
func Register(c *subcommands.Commander, app *App) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&addCmd{app: app}, "articles")
	c.Register(&listCmd{app: app}, "articles")
	c.Register(&searchCmd{app: app}, "articles")
	c.Register(&sellCmd{app: app}, "articles")
	c.Register(&repriceCmd{app: app}, "articles")
	c.Register(&deleteCmd{app: app}, "articles")

	c.Register(&statsCmd{app: app}, "reports")
	c.Register(&exportCmd{app: app}, "reports")
}

func (a *App) services(ctx context.Context) (*ledger.Service, *reporting.Service, error) {
	if a.ledger == nil {
		l, r, err := a.Open(ctx)
		if err != nil {
			return nil, nil, err
		}
		a.ledger, a.reports = l, r
	}
	return a.ledger, a.reports, nil
}

func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func (a *App) usage(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
