package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/service/ledger"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = fmt.Errorf("%w: invalid command arguments", models.ErrInvalidInput)

const addSeparator = ";"

// HelpText lists the supported chat commands.
const HelpText = `Supported commands:
/add title; brand; size; price[; purchase price[; description]]
/sell <id> <price>
/price <id> <price>
/delete <id>
/stock
/search <text>
/stats [week|month|year]`

// LedgerService is the subset of the ledger reachable from chat.
type LedgerService interface {
	CreateArticle(ctx context.Context, in ledger.ArticleInput) (models.Article, error)
	MarkSold(ctx context.Context, id string, finalPrice decimal.Decimal) (models.Article, error)
	UpdatePrice(ctx context.Context, id string, newPrice decimal.Decimal) (models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	ListUnsoldArticles(ctx context.Context) ([]models.Article, error)
	SearchUnsold(ctx context.Context, query string) ([]models.Article, error)
	CurrentAnalytics(ctx context.Context) (models.Analytics, error)
}

// Formatter renders amounts and summaries for replies.
type Formatter interface {
	FormatSummary(report models.Analytics) string
	FormatAmount(amount decimal.Decimal) string
}

// Dispatcher executes parsed commands and returns the text reply.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	ledger LedgerService
	format Formatter
	logger *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(ledger LedgerService, format Formatter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, format: format, logger: logger}
}

// HandleCommand runs the ledger operation behind cmd. Unknown commands get
// the help text.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandAdd:
		in, err := buildArticleInput(cmd)
		if err != nil {
			return "", err
		}
		article, err := s.ledger.CreateArticle(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %s (%s, %s) at %s.\nid: %s",
			article.Title, article.Brand, article.Size, s.format.FormatAmount(article.SalePrice), article.ID), nil

	case models.CommandSell:
		id, price, err := idAndPrice(cmd)
		if err != nil {
			return "", err
		}
		article, err := s.ledger.MarkSold(ctx, id, price)
		if err != nil {
			return "", err
		}
		message := fmt.Sprintf("Sold %s for %s.", article.Title, s.format.FormatAmount(article.SalePrice))
		if profit, ok := article.ExpectedProfit(); ok {
			message += fmt.Sprintf(" Profit %s.", s.format.FormatAmount(profit))
		}
		return message, nil

	case models.CommandPrice:
		id, price, err := idAndPrice(cmd)
		if err != nil {
			return "", err
		}
		article, err := s.ledger.UpdatePrice(ctx, id, price)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s now listed at %s.", article.Title, s.format.FormatAmount(article.SalePrice)), nil

	case models.CommandDelete:
		if len(cmd.Args) != 1 {
			return "", fmt.Errorf("%w: usage /delete <id>", ErrInvalidArguments)
		}
		if err := s.ledger.DeleteArticle(ctx, cmd.Args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted %s.", cmd.Args[0]), nil

	case models.CommandStock:
		articles, err := s.ledger.ListUnsoldArticles(ctx)
		if err != nil {
			return "", err
		}
		return s.articleList("in stock", articles), nil

	case models.CommandSearch:
		articles, err := s.ledger.SearchUnsold(ctx, cmd.Rest)
		if err != nil {
			return "", err
		}
		return s.articleList(fmt.Sprintf("matching %q", cmd.Rest), articles), nil

	case models.CommandStats:
		report, err := s.ledger.CurrentAnalytics(ctx)
		if err != nil {
			return "", err
		}
		if len(cmd.Args) == 0 {
			return s.format.FormatSummary(report), nil
		}
		period, err := models.ParsePeriod(cmd.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Revenue this %s: %s", period, s.format.FormatAmount(report.RevenueFor(period))), nil

	default:
		return HelpText, nil
	}
}

func (s *Service) articleList(label string, articles []models.Article) string {
	if len(articles) == 0 {
		return fmt.Sprintf("No articles %s.", label)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d articles %s:", len(articles), label)
	for _, a := range articles {
		fmt.Fprintf(&b, "\n- %s (%s, %s) %s [%s]", a.Title, a.Brand, a.Size, s.format.FormatAmount(a.SalePrice), a.ID)
	}
	return b.String()
}

func buildArticleInput(cmd models.Command) (ledger.ArticleInput, error) {
	parts := strings.Split(cmd.Rest, addSeparator)
	if len(parts) < 4 || len(parts) > 6 {
		return ledger.ArticleInput{}, fmt.Errorf("%w: usage /add title; brand; size; price[; purchase price[; description]]", ErrInvalidArguments)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	in := ledger.ArticleInput{
		Title:     parts[0],
		Brand:     parts[1],
		Size:      parts[2],
		SalePrice: parts[3],
	}
	if len(parts) > 4 {
		in.PurchasePrice = parts[4]
	}
	if len(parts) > 5 {
		in.Description = parts[5]
	}
	return in, nil
}

func idAndPrice(cmd models.Command) (string, decimal.Decimal, error) {
	if len(cmd.Args) != 2 {
		return "", decimal.Zero, fmt.Errorf("%w: usage /%s <id> <price>", ErrInvalidArguments, cmd.Type)
	}
	price, err := ledger.ParsePrice(cmd.Args[1])
	if err != nil {
		return "", decimal.Zero, err
	}
	return cmd.Args[0], price, nil
}
