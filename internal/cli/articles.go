package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/service/ledger"
)

type addCmd struct {
	app *App
	in  ledger.ArticleInput
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "register a new article in inventory" }
func (*addCmd) Usage() string {
	return `ledger add -title <title> -brand <brand> -size <size> -price <price> [-buy <price>] [-desc <text>]

  Adds an unsold article. Prices accept a dot or a comma as decimal separator.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in.Title, "title", "", "Article title")
	f.StringVar(&c.in.Brand, "brand", "", "Brand")
	f.StringVar(&c.in.Size, "size", "", "Size label")
	f.StringVar(&c.in.Description, "desc", "", "Free text description")
	f.StringVar(&c.in.PurchasePrice, "buy", "", "Purchase price (optional)")
	f.StringVar(&c.in.SalePrice, "price", "", "Asking price")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, _, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	article, err := svc.CreateArticle(ctx, c.in)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "created %s\n", article.ID)
	return subcommands.ExitSuccess
}

type listCmd struct {
	app    *App
	status string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list articles" }
func (*listCmd) Usage() string {
	return `ledger list [-status all|unsold|sold]

  Lists articles in insertion order.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "all", "Filter by status (all, unsold, sold)")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, reports, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}

	var articles []models.Article
	switch c.status {
	case "all":
		articles, err = svc.ListArticles(ctx)
	case "unsold":
		articles, err = svc.ListUnsoldArticles(ctx)
	case "sold":
		articles, err = svc.ListSoldArticles(ctx)
	default:
		return c.app.usage("unknown status %q", c.status)
	}
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprint(c.app.Out, articlesMarkdown(articles, reports.FormatAmount))
	return subcommands.ExitSuccess
}

type searchCmd struct {
	app *App
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search unsold articles by title or brand" }
func (*searchCmd) Usage() string {
	return `ledger search <query>

  Case-insensitive substring match on title and brand of unsold articles.
`
}

func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return c.app.usage("search takes a single query, quote it if it contains spaces")
	}
	svc, reports, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	articles, err := svc.SearchUnsold(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprint(c.app.Out, articlesMarkdown(articles, reports.FormatAmount))
	return subcommands.ExitSuccess
}

type sellCmd struct {
	app *App
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "mark an article sold at its final price" }
func (*sellCmd) Usage() string {
	return `ledger sell <id> <price>
`
}

func (*sellCmd) SetFlags(*flag.FlagSet) {}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.app.usage("sell requires <id> <price>")
	}
	price, err := ledger.ParsePrice(f.Arg(1))
	if err != nil {
		return c.app.fail(err)
	}
	svc, reports, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	article, err := svc.MarkSold(ctx, f.Arg(0), price)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "sold %s for %s\n", article.Title, reports.FormatAmount(article.SalePrice))
	return subcommands.ExitSuccess
}

type repriceCmd struct {
	app *App
}

func (*repriceCmd) Name() string     { return "reprice" }
func (*repriceCmd) Synopsis() string { return "change the asking price of an unsold article" }
func (*repriceCmd) Usage() string {
	return `ledger reprice <id> <price>
`
}

func (*repriceCmd) SetFlags(*flag.FlagSet) {}

func (c *repriceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.app.usage("reprice requires <id> <price>")
	}
	price, err := ledger.ParsePrice(f.Arg(1))
	if err != nil {
		return c.app.fail(err)
	}
	svc, reports, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	article, err := svc.UpdatePrice(ctx, f.Arg(0), price)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "%s now listed at %s\n", article.Title, reports.FormatAmount(article.SalePrice))
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	app *App
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "permanently remove an article" }
func (*deleteCmd) Usage() string {
	return `ledger delete <id>
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("delete requires <id>")
	}
	svc, _, err := c.app.services(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := svc.DeleteArticle(ctx, f.Arg(0)); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "deleted %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
