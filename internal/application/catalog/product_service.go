package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ImageStore keeps uploaded product images
type ImageStore interface {
	Save(ctx context.Context, folder string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, key string) error
	URL(ctx context.Context, key string) string
}

// ProductService handles product operations and keeps the search index in
// step with the database.
type ProductService struct {
	products   catalog.ProductRepository
	attributes catalog.AttributeRepository
	index      catalog.ProductIndex
	images     ImageStore
	publisher  shared.EventPublisher
}

// NewProductService creates a new ProductService. index may be nil, in
// which case Search falls back to the repository's text match.
func NewProductService(
	products catalog.ProductRepository,
	attributes catalog.AttributeRepository,
	index catalog.ProductIndex,
	images ImageStore,
) *ProductService {
	return &ProductService{
		products:   products,
		attributes: attributes,
		index:      index,
		images:     images,
	}
}

func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.ModelNumber, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueModel(ctx, product.ModelNumber, nil); err != nil {
		return nil, err
	}
	if err := product.Describe(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}
	ids := req.ProductAttributesInput.byKind()
	for _, kind := range catalog.AttributeKinds {
		if err := s.assignAttribute(ctx, product, kind, ids[kind]); err != nil {
			return nil, err
		}
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.reindex(ctx, product)
	application.PublishEvents(ctx, s.publisher, product)

	return s.response(ctx, product), nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, product), nil
}

func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	f := filter.Filter()
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}
	for kind, raw := range filter.attributeFilters() {
		application.SetUUIDFilter(f.Filters, kind.Field(), raw)
	}

	products, total, err := s.products.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return s.responses(ctx, products), total, nil
}

// Search runs a full-text query and returns products in relevance order
func (s *ProductService) Search(ctx context.Context, query ProductSearchQuery) ([]ProductResponse, int64, error) {
	f := shared.Filter{Page: query.Page, PageSize: query.PageSize}.Normalize()
	if s.index == nil {
		f.Search = query.Q
		products, total, err := s.products.FindAll(ctx, f)
		if err != nil {
			return nil, 0, err
		}
		return s.responses(ctx, products), total, nil
	}

	hits, total, err := s.index.Search(ctx, query.Q, f.Offset(), f.PageSize)
	if err != nil {
		return nil, 0, err
	}
	ids := lo.Map(hits, func(h catalog.SearchHit, _ int) uuid.UUID { return h.ID })
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := lo.KeyBy(found, func(p *catalog.Product) uuid.UUID { return p.ID })
	ordered := make([]*catalog.Product, 0, len(hits))
	for _, id := range ids {
		// the index may briefly list products deleted since
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.responses(ctx, ordered), total, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ModelNumber != nil {
		if err := product.SetModelNumber(*req.ModelNumber); err != nil {
			return nil, err
		}
		if err := s.ensureUniqueModel(ctx, product.ModelNumber, &product.ID); err != nil {
			return nil, err
		}
	}
	if req.Name != nil || req.Description != nil {
		name, desc := product.Name, product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			desc = *req.Description
		}
		if err := product.Describe(name, desc); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		product.SetActive(*req.Active)
	}
	changes := req.ProductAttributesUpdate.byKind()
	for _, kind := range catalog.AttributeKinds {
		if ch := changes[kind]; ch.Set {
			if err := s.assignAttribute(ctx, product, kind, ch.ID); err != nil {
				return nil, err
			}
		}
	}

	product.MarkUpdated()
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.reindex(ctx, product)
	application.PublishEvents(ctx, s.publisher, product)

	return s.response(ctx, product), nil
}

// Delete removes a product no order references, together with its image
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			logger.L(ctx).Warn("Failed to remove product from search index", zap.String("product_id", id.String()), zap.Error(err))
		}
	}
	s.removeImage(ctx, product.ImagePath)

	product.AddDomainEvent(catalog.NewProductChangedEvent(catalog.EventTypeProductDeleted, product))
	application.PublishEvents(ctx, s.publisher, product)
	return nil
}

// UploadImage stores a new product image and drops the previous one
func (s *ProductService) UploadImage(ctx context.Context, id uuid.UUID, r io.Reader, size int64) (*ProductResponse, error) {
	if s.images == nil {
		return nil, shared.ErrServiceUnavailable
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	path, err := s.images.Save(ctx, storage.FolderProducts, r, size)
	if err != nil {
		return nil, err
	}
	old := product.SetImage(path)
	product.MarkUpdated()
	if err := s.products.Update(ctx, product); err != nil {
		s.removeImage(ctx, path)
		return nil, err
	}
	s.removeImage(ctx, old)
	application.PublishEvents(ctx, s.publisher, product)

	return s.response(ctx, product), nil
}

// assignAttribute checks that id names an attribute of kind before
// setting it. A nil id clears the attribute.
func (s *ProductService) assignAttribute(ctx context.Context, product *catalog.Product, kind catalog.AttributeKind, id *uuid.UUID) error {
	if id == nil || *id == uuid.Nil {
		return product.SetAttribute(kind, nil)
	}
	attr, err := s.attributes.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_REFERENCE", fmt.Sprintf("%s does not reference an existing %s", kind.Field(), kind))
		}
		return err
	}
	if attr.Kind != kind {
		return shared.NewDomainError("INVALID_REFERENCE", fmt.Sprintf("%s references a %s, not a %s", kind.Field(), attr.Kind, kind))
	}
	return product.SetAttribute(kind, id)
}

func (s *ProductService) ensureUniqueModel(ctx context.Context, model string, excludeID *uuid.UUID) error {
	taken, err := s.products.ExistsByModelNumber(ctx, model, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "Product with this model number already exists")
	}
	return nil
}

// reindex pushes the product to the search index. The database write has
// already succeeded, so a failure is only logged.
func (s *ProductService) reindex(ctx context.Context, product *catalog.Product) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, product); err != nil {
		logger.L(ctx).Warn("Failed to index product", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
}

func (s *ProductService) removeImage(ctx context.Context, path string) {
	if s.images == nil || path == "" {
		return
	}
	if err := s.images.Remove(ctx, path); err != nil {
		logger.L(ctx).Warn("Failed to remove product image", zap.String("path", path), zap.Error(err))
	}
}

func (s *ProductService) response(ctx context.Context, p *catalog.Product) *ProductResponse {
	resp := ToProductResponse(p)
	if s.images != nil {
		resp.ImageURL = s.images.URL(ctx, p.ImagePath)
	}
	return &resp
}

func (s *ProductService) responses(ctx context.Context, products []*catalog.Product) []ProductResponse {
	return lo.Map(products, func(p *catalog.Product, _ int) ProductResponse { return *s.response(ctx, p) })
}
