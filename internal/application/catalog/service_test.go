package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	attributes *MockAttributeRepository
	products   *MockProductRepository
	index      *MockProductIndex
	images     *MockImageStore
	svc        *ProductService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		attributes: new(MockAttributeRepository),
		products:   new(MockProductRepository),
		index:      new(MockProductIndex),
		images:     new(MockImageStore),
	}
	f.svc = NewProductService(f.products, f.attributes, f.index, f.images)
	return f
}

func newBrand(t *testing.T, name string) *catalog.Attribute {
	a, err := catalog.NewAttribute(catalog.KindBrand, name, "")
	require.NoError(t, err)
	return a
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success indexes the product", func(t *testing.T) {
		f := newCatalogFixture()
		brand := newBrand(t, "Ray-Ban")

		f.products.On("ExistsByModelNumber", ctx, "RB3025", (*uuid.UUID)(nil)).Return(false, nil)
		f.attributes.On("FindByID", ctx, brand.ID).Return(brand, nil)
		f.products.On("Create", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		f.index.On("Index", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := f.svc.Create(ctx, CreateProductRequest{
			ModelNumber:            "rb3025",
			Name:                   "Aviator Classic",
			Price:                  decimal.RequireFromString("7499.999"),
			Stock:                  12,
			ProductAttributesInput: ProductAttributesInput{BrandID: &brand.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "RB3025", resp.ModelNumber)
		assert.Equal(t, "7500", resp.Price.String())
		assert.Equal(t, &brand.ID, resp.BrandID)
		assert.Nil(t, resp.ShapeID)
		f.index.AssertExpectations(t)
	})

	t.Run("attribute of the wrong kind", func(t *testing.T) {
		f := newCatalogFixture()
		shape, err := catalog.NewAttribute(catalog.KindShape, "Round", "")
		require.NoError(t, err)

		f.products.On("ExistsByModelNumber", ctx, "X1", (*uuid.UUID)(nil)).Return(false, nil)
		f.attributes.On("FindByID", ctx, shape.ID).Return(shape, nil)

		_, err = f.svc.Create(ctx, CreateProductRequest{
			ModelNumber: "X1", Name: "X", ProductAttributesInput: ProductAttributesInput{BrandID: &shape.ID},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidReference)
		f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		f := newCatalogFixture()
		missing := uuid.New()
		f.products.On("ExistsByModelNumber", ctx, "X1", (*uuid.UUID)(nil)).Return(false, nil)
		f.attributes.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, CreateProductRequest{
			ModelNumber: "X1", Name: "X", ProductAttributesInput: ProductAttributesInput{FrameTypeID: &missing},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidReference)
	})

	t.Run("index failure does not fail the create", func(t *testing.T) {
		f := newCatalogFixture()
		f.products.On("ExistsByModelNumber", ctx, "X1", (*uuid.UUID)(nil)).Return(false, nil)
		f.products.On("Create", ctx, mock.Anything).Return(nil)
		f.index.On("Index", ctx, mock.Anything).Return(errors.New("cluster red"))

		_, err := f.svc.Create(ctx, CreateProductRequest{ModelNumber: "X1", Name: "X"})
		assert.NoError(t, err)
	})

	t.Run("duplicate model number", func(t *testing.T) {
		f := newCatalogFixture()
		f.products.On("ExistsByModelNumber", ctx, "X1", (*uuid.UUID)(nil)).Return(true, nil)
		_, err := f.svc.Create(ctx, CreateProductRequest{ModelNumber: "X1", Name: "X"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestProductService_Update_ClearsAttribute(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	brand := newBrand(t, "Oakley")
	p, err := catalog.NewProduct("OK100", "Holbrook", decimal.NewFromInt(9000))
	require.NoError(t, err)
	require.NoError(t, p.SetAttribute(catalog.KindBrand, &brand.ID))
	p.ClearDomainEvents()

	f.products.On("FindByID", ctx, p.ID).Return(p, nil)
	f.products.On("Update", ctx, p).Return(nil)
	f.index.On("Index", ctx, p).Return(nil)

	publisher := &recordingPublisher{}
	f.svc.SetEventPublisher(publisher)

	stock := 3
	req := UpdateProductRequest{Stock: &stock}
	req.BrandID.Set = true
	resp, err := f.svc.Update(ctx, p.ID, req)

	require.NoError(t, err)
	assert.Nil(t, resp.BrandID)
	assert.Equal(t, 3, resp.Stock)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, catalog.EventTypeProductUpdated, publisher.events[0].EventType())
	f.attributes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProductService_Search_KeepsRelevanceOrder(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	a, err := catalog.NewProduct("A1", "Alpha", decimal.Zero)
	require.NoError(t, err)
	b, err := catalog.NewProduct("B1", "Beta", decimal.Zero)
	require.NoError(t, err)
	gone := uuid.New()

	hits := []catalog.SearchHit{{ID: b.ID, Score: 3}, {ID: gone, Score: 2}, {ID: a.ID, Score: 1}}
	f.index.On("Search", ctx, "beta", 20, 20).Return(hits, int64(43), nil)
	f.products.On("FindByIDs", ctx, []uuid.UUID{b.ID, gone, a.ID}).Return([]*catalog.Product{a, b}, nil)

	items, total, err := f.svc.Search(ctx, ProductSearchQuery{Q: "beta", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(43), total)
	require.Len(t, items, 2)
	assert.Equal(t, "B1", items[0].ModelNumber)
	assert.Equal(t, "A1", items[1].ModelNumber)
}

func TestProductService_Search_WithoutIndex(t *testing.T) {
	products := new(MockProductRepository)
	svc := NewProductService(products, new(MockAttributeRepository), nil, nil)
	products.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool { return f.Search == "round" })).
		Return([]*catalog.Product{}, int64(0), nil)

	_, _, err := svc.Search(context.Background(), ProductSearchQuery{Q: "round"})
	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestProductService_UploadImage_ReplacesOld(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	p, err := catalog.NewProduct("A1", "Alpha", decimal.Zero)
	require.NoError(t, err)
	p.SetImage("uploads/products/old.jpg")

	body := strings.NewReader("fake image")
	f.products.On("FindByID", ctx, p.ID).Return(p, nil)
	f.images.On("Save", ctx, storage.FolderProducts, body, int64(10)).Return("uploads/products/new.png", nil)
	f.products.On("Update", ctx, p).Return(nil)
	f.images.On("Remove", ctx, "uploads/products/old.jpg").Return(nil)

	resp, err := f.svc.UploadImage(ctx, p.ID, body, 10)
	require.NoError(t, err)
	assert.Equal(t, "uploads/products/new.png", resp.ImagePath)
	assert.Equal(t, "/uploads/products/new.png", resp.ImageURL)
	f.images.AssertExpectations(t)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	p, err := catalog.NewProduct("A1", "Alpha", decimal.Zero)
	require.NoError(t, err)
	p.SetImage("uploads/products/a.jpg")

	f.products.On("FindByID", ctx, p.ID).Return(p, nil)
	f.products.On("Delete", ctx, p.ID).Return(shared.ErrInUse).Once()
	require.ErrorIs(t, f.svc.Delete(ctx, p.ID), shared.ErrInUse)
	f.index.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)

	f.products.On("Delete", ctx, p.ID).Return(nil).Once()
	f.index.On("Remove", ctx, p.ID).Return(nil)
	f.images.On("Remove", ctx, "uploads/products/a.jpg").Return(nil)
	require.NoError(t, f.svc.Delete(ctx, p.ID))
	f.index.AssertExpectations(t)
	f.images.AssertExpectations(t)
}

func TestAttributeService(t *testing.T) {
	ctx := context.Background()

	t.Run("list all groups by kind", func(t *testing.T) {
		repo := new(MockAttributeRepository)
		svc := NewAttributeService(repo)
		round, err := catalog.NewAttribute(catalog.KindShape, "Round", "")
		require.NoError(t, err)
		repo.On("FindAll", ctx, true).Return([]*catalog.Attribute{newBrand(t, "Vogue"), round}, nil)

		grouped, err := svc.ListAll(ctx, true)
		require.NoError(t, err)
		assert.Len(t, grouped, len(catalog.AttributeKinds))
		assert.Len(t, grouped["brand"], 1)
		assert.Len(t, grouped["shape"], 1)
		assert.Empty(t, grouped["frame_type"])
	})

	t.Run("kind mismatch is not found", func(t *testing.T) {
		repo := new(MockAttributeRepository)
		svc := NewAttributeService(repo)
		brand := newBrand(t, "Vogue")
		repo.On("FindByID", ctx, brand.ID).Return(brand, nil)

		_, err := svc.GetByID(ctx, catalog.KindGender, brand.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("used attribute cannot be deleted", func(t *testing.T) {
		repo := new(MockAttributeRepository)
		svc := NewAttributeService(repo)
		brand := newBrand(t, "Vogue")
		repo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		repo.On("CountUsage", ctx, brand).Return(int64(4), nil)

		err := svc.Delete(ctx, catalog.KindBrand, brand.ID)
		assert.ErrorIs(t, err, shared.ErrInUse)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name within kind", func(t *testing.T) {
		repo := new(MockAttributeRepository)
		svc := NewAttributeService(repo)
		repo.On("ExistsByName", ctx, catalog.KindBrand, "Vogue", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, catalog.KindBrand, CreateAttributeRequest{Name: "Vogue"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
