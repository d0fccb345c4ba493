package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
	"github.com/cymbol-superstore/marketplace-api/internal/core/security"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type CatalogService struct {
	products ports.ProductRepository
	images   ports.ImageRepository
	logger   zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, images ports.ImageRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, images: images, logger: logger}
}

// CreateProduct lists a new product owned by the calling seller.
func (s *CatalogService) CreateProduct(ctx context.Context, id domain.Identity, in ports.ProductInput) (*domain.Product, error) {
	if err := security.RequireRole(id, domain.RoleSeller); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Description: in.Description,
		SellerID:    id.ID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("seller_id", id.ID).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Int64("product_id", product.ID).Int64("seller_id", id.ID).Msg("product created")
	return product, nil
}

// AddImage attaches an image to a product. Only the seller that owns the
// product may do so; anyone else gets domain.ErrNotAcceptable.
func (s *CatalogService) AddImage(ctx context.Context, id domain.Identity, productID int64, in ports.ImageInput) (*domain.Image, error) {
	if err := security.RequireRole(id, domain.RoleSeller); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := security.RequireOwnership(id, product.SellerID); err != nil {
		s.logger.Warn().Int64("product_id", productID).Int64("seller_id", id.ID).Msg("image rejected: product owned by another seller")
		return nil, err
	}

	img := &domain.Image{
		URL:         in.URL,
		Description: in.Description,
		ProductID:   productID,
	}
	if err := s.images.Create(ctx, img); err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to add image")
		return nil, err
	}
	return img, nil
}

// GetProduct returns a product with its images.
func (s *CatalogService) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	images, err := s.images.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Images = images
	return product, nil
}

func (s *CatalogService) GetImage(ctx context.Context, imageID int64) (*domain.Image, error) {
	return s.images.FindByID(ctx, imageID)
}

func (s *CatalogService) ListProducts(ctx context.Context, page ports.Page) ([]*domain.Product, error) {
	return s.list(ctx, nil, page)
}

func (s *CatalogService) ListSellerProducts(ctx context.Context, sellerID int64, page ports.Page) ([]*domain.Product, error) {
	return s.list(ctx, &sellerID, page)
}

// ListMyProducts lists the calling seller's own products.
func (s *CatalogService) ListMyProducts(ctx context.Context, id domain.Identity, page ports.Page) ([]*domain.Product, error) {
	if err := security.RequireRole(id, domain.RoleSeller); err != nil {
		return nil, err
	}
	return s.list(ctx, &id.ID, page)
}

func (s *CatalogService) list(ctx context.Context, sellerID *int64, page ports.Page) ([]*domain.Product, error) {
	page = normalizePage(page)
	return s.products.List(ctx, ports.ListProductsFilter{
		SellerID: sellerID,
		Offset:   page.Offset,
		Limit:    page.Limit,
	})
}

func normalizePage(p ports.Page) ports.Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}
