package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newFakeElastic(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticProductIndex_Search(t *testing.T) {
	id := uuid.New()
	var sent map[string]any
	client := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/frames/_search", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &sent))
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[
			{"_id":"`+id.String()+`","_score":4.5},
			{"_id":"not-a-uuid","_score":1.0}]}}`)
	})

	idx := NewElasticProductIndex(client, "frames", nil)
	hits, total, err := idx.Search(context.Background(), "Aviator", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, hits, 1)
	assert.Equal(t, id, hits[0].ID)
	assert.Equal(t, 4.5, hits[0].Score)
	assert.EqualValues(t, 10, sent["size"])
}

func TestElasticProductIndex_IndexAndRemove(t *testing.T) {
	p, err := catalog.NewProduct("rb-3025", "Aviator", decimal.NewFromFloat(120.5))
	require.NoError(t, err)

	var doc productDoc
	client := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut, http.MethodPost:
			assert.Equal(t, "/products/_doc/"+p.ID.String(), r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"result":"created"}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
		}
	})

	idx := NewElasticProductIndex(client, "", nil)
	require.NoError(t, idx.Index(context.Background(), p))
	assert.Equal(t, "RB-3025", doc.ModelNumber)
	assert.Equal(t, 120.5, doc.Price)

	assert.NoError(t, idx.Remove(context.Background(), p.ID), "missing documents are not an error")
}

func TestElasticProductIndex_ErrorStatus(t *testing.T) {
	client := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"bad"}`)
	})
	_, _, err := NewElasticProductIndex(client, "", nil).Search(context.Background(), "x", 0, 5)
	assert.Error(t, err)
}

func TestSQLProductIndex_Search(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.ProductModel{}))

	for _, p := range []struct{ model, name string }{
		{"RB-3025", "Aviator Classic"},
		{"OK-9208", "Radar 100% Aviator"},
		{"PR-17WS", "Cat Eye"},
	} {
		prod, err := catalog.NewProduct(p.model, p.name, decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, db.Create(models.ProductModelFromDomain(prod)).Error)
	}

	idx := NewSQLProductIndex(db)
	ctx := context.Background()

	hits, total, err := idx.Search(ctx, "aviator", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, hits, 2)

	hits, total, err = idx.Search(ctx, "rb-3025", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 3.0, hits[0].Score)

	_, total, err = idx.Search(ctx, "100%", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "% is matched literally")

	hits, total, err = idx.Search(ctx, "  ", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, hits)
}
