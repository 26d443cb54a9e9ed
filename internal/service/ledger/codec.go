package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
)

// Encode serialises the collection as a JSON array. A nil collection is
// written as an empty array.
func Encode(articles []models.Article) ([]byte, error) {
	if articles == nil {
		articles = []models.Article{}
	}
	data, err := json.Marshal(articles)
	if err != nil {
		return nil, fmt.Errorf("encode articles: %w", err)
	}
	return data, nil
}

// Decode parses a collection written by Encode. Prices may be JSON strings
// or bare numbers. Empty input decodes to an empty collection.
func Decode(data []byte) ([]models.Article, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var articles []models.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	return articles, nil
}
