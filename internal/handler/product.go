package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusmerch/store/internal/model"
	"github.com/campusmerch/store/internal/repository"
)

// ProductHandler serves the product catalog: public browse endpoints plus
// the storekeeper-only mutations guarded by role and ownership.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(products *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{Products: products}
}

type productReq struct {
	StoreKeeperID string        `json:"storeKeeperId"`
	Name          string        `json:"name"`
	Price         float64       `json:"price"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Tags          model.TagList `json:"tags"`
	ImageURL      string        `json:"imageUrl"`
}

// List handles GET /api/products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.Products.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list products: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch products"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products, "count": len(products)})
}

// GetByID handles GET /api/products/:id.
func (h *ProductHandler) GetByID(c echo.Context) error {
	p, err := h.Products.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Product not found"})
		}
		c.Logger().Errorf("get product: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": p})
}

// ListByStoreKeeper handles GET /api/products/storekeeper/:storeKeeperId.
func (h *ProductHandler) ListByStoreKeeper(c echo.Context) error {
	products, err := h.Products.ListByStoreKeeper(c.Request().Context(), c.Param("storeKeeperId"))
	if err != nil {
		c.Logger().Errorf("list store products: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch products"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products, "count": len(products)})
}

// Create handles POST /api/products (storekeeper only). The owner is the
// authenticated identity; a body storeKeeperId that names anyone else is
// rejected rather than silently overridden.
func (h *ProductHandler) Create(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if req.StoreKeeperID != "" && req.StoreKeeperID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "You can only add products to your own store"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.ImageURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Name, price, description, category, and image URL are required"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Price must be a positive number"})
	}

	p := model.Product{
		StoreKeeperID: uid,
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		Category:      req.Category,
		Tags:          req.Tags,
		ImageURL:      req.ImageURL,
	}
	if p.Tags == nil {
		p.Tags = model.TagList{}
	}
	if err := h.Products.Create(c.Request().Context(), &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateProduct):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Store keeper not found"})
		default:
			c.Logger().Errorf("create product: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to add product"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Product added successfully", "product": p})
}

// Update handles PUT /api/products/:id (storekeeper only). Existence is
// checked before ownership so probing a nonexistent id yields 404, not 403.
func (h *ProductHandler) Update(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	id := c.Param("id")

	existing, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Product not found"})
		}
		c.Logger().Errorf("update product: lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to update product"})
	}
	if existing.StoreKeeperID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "You can only update your own products"})
	}

	var req struct {
		Name        *string        `json:"name"`
		Price       *float64       `json:"price"`
		Description *string        `json:"description"`
		Category    *string        `json:"category"`
		Tags        *model.TagList `json:"tags"`
		ImageURL    *string        `json:"imageUrl"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	updated, err := h.Products.Update(c.Request().Context(), id, repository.ProductUpdate{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Product not found"})
		}
		c.Logger().Errorf("update product: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to update product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product updated successfully", "product": updated})
}

// Delete handles DELETE /api/products/:id (storekeeper only). Same
// 404-before-403 ordering as Update.
func (h *ProductHandler) Delete(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	id := c.Param("id")

	existing, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Product not found"})
		}
		c.Logger().Errorf("delete product: lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to delete product"})
	}
	if existing.StoreKeeperID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "You can only delete your own products"})
	}
	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		c.Logger().Errorf("delete product: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to delete product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product deleted successfully"})
}
