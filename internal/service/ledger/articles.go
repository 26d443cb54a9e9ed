package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
)

// CreateArticle validates the input and appends a new unsold article with
// its initial price history entry.
func (s *Service) CreateArticle(ctx context.Context, in ArticleInput) (models.Article, error) {
	v, err := in.validate()
	if err != nil {
		return models.Article{}, err
	}

	now := s.now()
	article := models.Article{
		ID:            s.newID(),
		Title:         v.title,
		Brand:         v.brand,
		Size:          v.size,
		Description:   v.description,
		PurchasePrice: v.purchasePrice,
		SalePrice:     v.salePrice,
		CreatedAt:     now,
		PriceHistory: []models.PriceHistory{{
			ID:    s.newID(),
			Price: v.salePrice,
			Date:  now,
			Type:  models.PriceInitial,
		}},
	}

	err = s.mutate(ctx, func(articles []models.Article) ([]models.Article, bool, error) {
		return append(articles, article), true, nil
	})
	if err != nil {
		return models.Article{}, err
	}

	s.logger.Info("article created",
		zap.String("article_id", article.ID),
		zap.String("title", article.Title),
		zap.Stringer("sale_price", article.SalePrice))
	return article, nil
}

// MarkSold flips an unsold article to sold at the given final price and
// appends the matching sale entry to its history.
func (s *Service) MarkSold(ctx context.Context, id string, finalPrice decimal.Decimal) (models.Article, error) {
	if err := requirePositive(finalPrice); err != nil {
		return models.Article{}, err
	}

	var sold models.Article
	err := s.mutate(ctx, func(articles []models.Article) ([]models.Article, bool, error) {
		i := indexOf(articles, id)
		if i < 0 {
			return nil, false, fmt.Errorf("%w: %s", models.ErrNotFound, id)
		}
		a := &articles[i]
		if a.Sold {
			return nil, false, fmt.Errorf("%w: %s", models.ErrAlreadySold, id)
		}

		now := s.now()
		a.Sold = true
		a.SoldDate = &now
		a.SalePrice = finalPrice
		a.PriceHistory = append(a.PriceHistory, models.PriceHistory{
			ID:    s.newID(),
			Price: finalPrice,
			Date:  now,
			Type:  models.PriceSale,
		})
		sold = *a
		return articles, true, nil
	})
	if err != nil {
		return models.Article{}, err
	}

	s.logger.Info("article sold", zap.String("article_id", id), zap.Stringer("price", finalPrice))
	return sold, nil
}

// UpdatePrice changes the asking price of an unsold article.
func (s *Service) UpdatePrice(ctx context.Context, id string, newPrice decimal.Decimal) (models.Article, error) {
	if err := requirePositive(newPrice); err != nil {
		return models.Article{}, err
	}

	var updated models.Article
	err := s.mutate(ctx, func(articles []models.Article) ([]models.Article, bool, error) {
		i := indexOf(articles, id)
		if i < 0 {
			return nil, false, fmt.Errorf("%w: %s", models.ErrNotFound, id)
		}
		a := &articles[i]
		if a.Sold {
			// the sale price of a sold article is a historical fact
			return nil, false, fmt.Errorf("%w: %s", models.ErrAlreadySold, id)
		}

		a.SalePrice = newPrice
		a.PriceHistory = append(a.PriceHistory, models.PriceHistory{
			ID:    s.newID(),
			Price: newPrice,
			Date:  s.now(),
			Type:  models.PriceUpdate,
		})
		updated = *a
		return articles, true, nil
	})
	if err != nil {
		return models.Article{}, err
	}

	s.logger.Info("article repriced", zap.String("article_id", id), zap.Stringer("price", newPrice))
	return updated, nil
}

// DeleteArticle permanently removes an article. Deleting an unknown id is a
// no-op and leaves the store untouched.
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	removed := false
	err := s.mutate(ctx, func(articles []models.Article) ([]models.Article, bool, error) {
		i := indexOf(articles, id)
		if i < 0 {
			return articles, false, nil
		}
		removed = true
		return append(articles[:i], articles[i+1:]...), true, nil
	})
	if err != nil {
		return err
	}

	if removed {
		s.logger.Info("article deleted", zap.String("article_id", id))
	} else {
		s.logger.Debug("delete of unknown article ignored", zap.String("article_id", id))
	}
	return nil
}

// GetArticle returns the article with the given id.
func (s *Service) GetArticle(ctx context.Context, id string) (models.Article, error) {
	articles, err := s.ListArticles(ctx)
	if err != nil {
		return models.Article{}, err
	}
	i := indexOf(articles, id)
	if i < 0 {
		return models.Article{}, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	return articles[i], nil
}

// ListArticles returns the full collection in insertion order.
func (s *Service) ListArticles(ctx context.Context) ([]models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ListUnsoldArticles returns the articles still in inventory.
func (s *Service) ListUnsoldArticles(ctx context.Context) ([]models.Article, error) {
	return s.filter(ctx, func(a models.Article) bool { return !a.Sold })
}

// ListSoldArticles returns the articles that left inventory.
func (s *Service) ListSoldArticles(ctx context.Context) ([]models.Article, error) {
	return s.filter(ctx, func(a models.Article) bool { return a.Sold })
}

// SearchUnsold matches unsold articles whose title or brand contains query,
// ignoring case. An empty query matches every unsold article.
func (s *Service) SearchUnsold(ctx context.Context, query string) ([]models.Article, error) {
	q := strings.ToLower(query)
	return s.filter(ctx, func(a models.Article) bool {
		if a.Sold {
			return false
		}
		return strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Brand), q)
	})
}

func (s *Service) filter(ctx context.Context, keep func(models.Article) bool) ([]models.Article, error) {
	articles, err := s.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}
