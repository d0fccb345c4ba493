package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

// CatalogHandler serves products and product images.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// CreateProduct handles POST /products/create.
//
// @Summary      List a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /products/create [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	product, err := h.service.CreateProduct(c.Request().Context(), id, toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// AddImage handles POST /products/:id/images.
//
// @Summary      Attach an image to one of my products
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Product id"
// @Param        body  body      imageRequest  true  "Image details"
// @Success      201   {object}  domain.Image
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      406   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /products/{id}/images [post]
func (h *CatalogHandler) AddImage(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	productID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req imageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	img, err := h.service.AddImage(c.Request().Context(), id, productID, toImageInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, img)
}

// GetProduct handles GET /products/:id.
//
// @Summary      Get a product with its images
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	productID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// GetImage handles GET /images/:id.
//
// @Summary      Get an image
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Image id"
// @Success      200  {object}  domain.Image
// @Failure      404  {object}  errorResponse
// @Router       /images/{id} [get]
func (h *CatalogHandler) GetImage(c echo.Context) error {
	imageID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	img, err := h.service.GetImage(c.Request().Context(), imageID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, img)
}

// ListProducts handles GET /products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        offset  query     int  false  "Offset"  default(0)
// @Param        limit   query     int  false  "Limit"   default(10)
// @Success      200     {array}   domain.Product
// @Failure      422     {object}  errorResponse
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var q pageQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	products, err := h.service.ListProducts(c.Request().Context(), toPage(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListSellerProducts handles GET /products/seller/:seller_id.
//
// @Summary      List a seller's products
// @Tags         products
// @Produce      json
// @Param        seller_id  path      int  true   "Seller id"
// @Param        offset     query     int  false  "Offset"  default(0)
// @Param        limit      query     int  false  "Limit"   default(10)
// @Success      200        {array}   domain.Product
// @Router       /products/seller/{seller_id} [get]
func (h *CatalogHandler) ListSellerProducts(c echo.Context) error {
	sellerID, err := idParam(c, "seller_id")
	if err != nil {
		return err
	}
	var q pageQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	products, err := h.service.ListSellerProducts(c.Request().Context(), sellerID, toPage(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListMyProducts handles GET /sellers/me/products.
//
// @Summary      List my products
// @Tags         sellers
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Offset"  default(0)
// @Param        limit   query     int  false  "Limit"   default(10)
// @Success      200     {array}   domain.Product
// @Failure      403     {object}  errorResponse
// @Router       /sellers/me/products [get]
func (h *CatalogHandler) ListMyProducts(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var q pageQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	products, err := h.service.ListMyProducts(c.Request().Context(), id, toPage(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
