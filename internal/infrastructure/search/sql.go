package search

import (
	"context"
	"strings"

	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQLProductIndex answers searches straight from the products table. It
// is used when Elasticsearch is disabled, so Index and Remove do nothing.
type SQLProductIndex struct {
	db *gorm.DB
}

func NewSQLProductIndex(db *gorm.DB) *SQLProductIndex {
	return &SQLProductIndex{db: db}
}

func (x *SQLProductIndex) Index(context.Context, *catalog.Product) error { return nil }

func (x *SQLProductIndex) Remove(context.Context, uuid.UUID) error { return nil }

// Search ranks exact model-number matches first, then name matches
func (x *SQLProductIndex) Search(ctx context.Context, query string, from, size int) ([]catalog.SearchHit, int64, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []catalog.SearchHit{}, 0, nil
	}
	like := "%" + strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(query) + "%"

	q := x.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("active = ?", true).
		Where("LOWER(model_number) LIKE ? ESCAPE '!' OR LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", like, like, like)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID          uuid.UUID
		ModelNumber string
		Name        string
	}
	err := q.Select("id", "model_number", "name").
		Order(gorm.Expr("CASE WHEN LOWER(model_number) = ? THEN 0 WHEN LOWER(name) LIKE ? ESCAPE '!' THEN 1 ELSE 2 END", query, like)).
		Order("name").
		Offset(from).Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	hits := make([]catalog.SearchHit, len(rows))
	for i, r := range rows {
		score := 1.0
		switch {
		case strings.ToLower(r.ModelNumber) == query:
			score = 3
		case strings.Contains(strings.ToLower(r.Name), query):
			score = 2
		}
		hits[i] = catalog.SearchHit{ID: r.ID, Score: score}
	}
	return hits, total, nil
}

var _ catalog.ProductIndex = (*SQLProductIndex)(nil)
