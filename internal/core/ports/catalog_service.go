package ports

import (
	"context"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// ProductInput holds a new product listing.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
}

// ImageInput holds an image to attach to a product.
type ImageInput struct {
	URL         string
	Description string
}

// Page is an offset/limit window over a listing.
type Page struct {
	Offset int
	Limit  int
}

// CatalogService manages products and their images.
type CatalogService interface {
	CreateProduct(ctx context.Context, id domain.Identity, in ProductInput) (*domain.Product, error)
	AddImage(ctx context.Context, id domain.Identity, productID int64, in ImageInput) (*domain.Image, error)

	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	GetImage(ctx context.Context, imageID int64) (*domain.Image, error)
	ListProducts(ctx context.Context, page Page) ([]*domain.Product, error)
	ListSellerProducts(ctx context.Context, sellerID int64, page Page) ([]*domain.Product, error)
	ListMyProducts(ctx context.Context, id domain.Identity, page Page) ([]*domain.Product, error)
}
