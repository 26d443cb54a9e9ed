package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/service/ledger"
)

// ArticleService describes the ledger operations exposed over HTTP.
type ArticleService interface {
	CreateArticle(ctx context.Context, in ledger.ArticleInput) (models.Article, error)
	MarkSold(ctx context.Context, id string, finalPrice decimal.Decimal) (models.Article, error)
	UpdatePrice(ctx context.Context, id string, newPrice decimal.Decimal) (models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	GetArticle(ctx context.Context, id string) (models.Article, error)
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListUnsoldArticles(ctx context.Context) ([]models.Article, error)
	ListSoldArticles(ctx context.Context) ([]models.Article, error)
	SearchUnsold(ctx context.Context, query string) ([]models.Article, error)
}

// ArticleHandler serves the article collection.
type ArticleHandler struct {
	svc    ArticleService
	logger *zap.Logger
}

// NewArticleHandler constructs the HTTP handler adapter.
func NewArticleHandler(svc ArticleService, logger *zap.Logger) *ArticleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArticleHandler{svc: svc, logger: logger}
}

// priceText holds a price sent either as a JSON number or as a string, so
// that "27,5" reaches ParsePrice like any other user-typed amount.
type priceText string

func (p *priceText) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*p = ""
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*p = priceText(s)
	default:
		*p = priceText(raw)
	}
	return nil
}

type createArticleRequest struct {
	Title         string    `json:"title"`
	Brand         string    `json:"brand"`
	Size          string    `json:"size"`
	Description   string    `json:"description"`
	PurchasePrice priceText `json:"purchasePrice"`
	SalePrice     priceText `json:"salePrice"`
}

type priceRequest struct {
	Price priceText `json:"price"`
}

// List returns articles filtered by ?status=all|unsold|sold. A ?q search
// term always applies to unsold articles.
func (h *ArticleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		articles []models.Article
		err      error
	)
	if q, ok := c.GetQuery("q"); ok {
		articles, err = h.svc.SearchUnsold(ctx, q)
	} else {
		switch status := c.DefaultQuery("status", "all"); status {
		case "all":
			articles, err = h.svc.ListArticles(ctx)
		case "unsold":
			articles, err = h.svc.ListUnsoldArticles(ctx)
		case "sold":
			articles, err = h.svc.ListSoldArticles(ctx)
		default:
			err = fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
		}
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	c.JSON(http.StatusOK, articles)
}

// Create adds a new article.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid article payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	article, err := h.svc.CreateArticle(c.Request.Context(), ledger.ArticleInput{
		Title:         req.Title,
		Brand:         req.Brand,
		Size:          req.Size,
		Description:   req.Description,
		PurchasePrice: string(req.PurchasePrice),
		SalePrice:     string(req.SalePrice),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Get returns one article.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.svc.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Sell marks an article sold at the requested final price.
func (h *ArticleHandler) Sell(c *gin.Context) {
	price, ok := h.bindPrice(c)
	if !ok {
		return
	}
	article, err := h.svc.MarkSold(c.Request.Context(), c.Param("id"), price)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Reprice updates the asking price of an unsold article.
func (h *ArticleHandler) Reprice(c *gin.Context) {
	price, ok := h.bindPrice(c)
	if !ok {
		return
	}
	article, err := h.svc.UpdatePrice(c.Request.Context(), c.Param("id"), price)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete removes an article. Unknown ids succeed as well.
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ArticleHandler) bindPrice(c *gin.Context) (decimal.Decimal, bool) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid price payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return decimal.Zero, false
	}
	price, err := ledger.ParsePrice(string(req.Price))
	if err != nil {
		writeError(c, h.logger, err)
		return decimal.Zero, false
	}
	return price, true
}
