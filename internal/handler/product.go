package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmlink/farm-marketplace/internal/model"
	"github.com/farmlink/farm-marketplace/internal/repository"
	"github.com/farmlink/farm-marketplace/internal/utils"
)

// featuredLimit caps the featured-products endpoint. There is no
// featured flag in the data model; the storefront merely wants a short
// teaser list, so the first few rows are returned.
const featuredLimit = 3

// ProductStore is the slice of the product repository the handlers need.
type ProductStore interface {
	List(ctx context.Context, q repository.ProductQuery) ([]model.Product, error)
	Featured(ctx context.Context, limit int) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	Products ProductStore
}

func NewProductHandler(p ProductStore) *ProductHandler { return &ProductHandler{Products: p} }

// List handles GET /api/products/ with optional category, search and
// sort query parameters.
func (h *ProductHandler) List(c echo.Context) error {
	q := repository.ProductQuery{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.Products.List(ctx, q)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not list products")
	}
	return c.JSON(http.StatusOK, productViews(products))
}

// Featured handles GET /api/products/featured.
func (h *ProductHandler) Featured(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.Products.Featured(ctx, featuredLimit)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not list products")
	}
	return c.JSON(http.StatusOK, productViews(products))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "Product not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, p.View())
}

// Create handles POST /api/products/.
func (h *ProductHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.RequireFields(payload, "name", "price", "category"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	p := model.Product{}
	if p.Name, err = utils.StringField(payload, "name"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if p.Price, err = utils.FloatField(payload, "price"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if p.Category, err = utils.StringField(payload, "category"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if p.StockQuantity, err = utils.IntField(payload, "stock_quantity"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	// An omitted description defaults to the empty string; only an
	// explicit null stores NULL.
	if v, ok := payload["description"]; !ok {
		empty := ""
		p.Description = &empty
	} else if v != nil {
		s, err := utils.StringField(payload, "description")
		if err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
		p.Description = &s
	}
	if v, ok := payload["image_url"]; ok && v != nil {
		s, err := utils.StringField(payload, "image_url")
		if err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
		p.ImageURL = &s
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Products.Create(ctx, &p); err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not create product")
	}
	return c.JSON(http.StatusCreated, p.View())
}

// Update handles PUT /api/products/:id. Only fields present in the
// payload are touched; image_url and description may be cleared with an
// explicit null.
func (h *ProductHandler) Update(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "Product not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if _, ok := payload["name"]; ok {
		if p.Name, err = utils.StringField(payload, "name"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if v, ok := payload["description"]; ok {
		if v == nil {
			p.Description = nil
		} else {
			s, err := utils.StringField(payload, "description")
			if err != nil {
				return errJSON(c, http.StatusBadRequest, err.Error())
			}
			p.Description = &s
		}
	}
	if _, ok := payload["price"]; ok {
		if p.Price, err = utils.FloatField(payload, "price"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if _, ok := payload["category"]; ok {
		if p.Category, err = utils.StringField(payload, "category"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if _, ok := payload["stock_quantity"]; ok {
		if p.StockQuantity, err = utils.IntField(payload, "stock_quantity"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if v, ok := payload["image_url"]; ok {
		if v == nil {
			p.ImageURL = nil
		} else {
			s, err := utils.StringField(payload, "image_url")
			if err != nil {
				return errJSON(c, http.StatusBadRequest, err.Error())
			}
			p.ImageURL = &s
		}
	}

	if err := h.Products.Update(ctx, &p); err != nil {
		return errJSON(c, http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, p.View())
}

// Delete handles DELETE /api/products/:id. Products still referenced by
// order items cannot be removed.
func (h *ProductHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Products.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "Product not found")
		}
		if errors.Is(err, repository.ErrRowInUse) {
			return errJSON(c, http.StatusConflict, "Product is referenced by existing orders")
		}
		return errJSON(c, http.StatusInternalServerError, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func productViews(products []model.Product) []model.ProductView {
	out := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, p.View())
	}
	return out
}
