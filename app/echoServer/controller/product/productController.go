package product

import (
	"log/slog"
	"net/http"
	"strconv"

	"renthub/app/echoServer/jwtx"
	"renthub/model"
	productsvc "renthub/service/product"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc productsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func isLender(c echo.Context) bool {
	role, err := jwtx.RoleFromContext(c)
	return err == nil && role == model.RoleLender
}

// POST /products  (lender)
func (h *Controller) Create(c echo.Context) error {
	if !isLender(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Only lenders can add products"})
	}
	var req CreateProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All required fields must be filled"})
	}

	id, err := h.Svc.Create(c.Request().Context(), productsvc.NewProduct{
		Name:          req.ProductName,
		Description:   req.Description,
		Category:      req.Category,
		PricePerDay:   req.PricePerDay,
		StockQuantity: req.StockQuantity,
		Availability:  req.Availability,
		ImageURL:      req.ImageURL,
		AddedByUserID: req.AddedByUserID,
	})
	if err != nil {
		if productsvc.Code(err) == productsvc.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "All required fields must be filled"})
		}
		h.Log.Error("product create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Product added successfully! Awaiting admin approval.",
		"productId": id,
	})
}

// GET /products/search?q=
func (h *Controller) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Search query cannot be empty"})
	}

	rows, err := h.Svc.Search(c.Request().Context(), q)
	if err != nil {
		h.Log.Error("product search", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /products/random
func (h *Controller) Random(c echo.Context) error {
	rows, err := h.Svc.Random(c.Request().Context(), 6)
	if err != nil {
		h.Log.Error("random products", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No products available"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": rows})
}

// GET /products/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	p, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if productsvc.Code(err) == productsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		h.Log.Error("product detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, p)
}

// GET /lender-products/:lenderId
func (h *Controller) ByLender(c echo.Context) error {
	lenderID, err := strconv.ParseInt(c.Param("lenderId"), 10, 64)
	if err != nil || lenderID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lender id"})
	}

	rows, err := h.Svc.ByLender(c.Request().Context(), lenderID)
	if err != nil {
		h.Log.Error("lender products", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No products found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"products": rows})
}

// PUT /edit-product/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req EditProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields must be filled"})
	}

	err = h.Svc.Update(c.Request().Context(), id, productsvc.Update{
		Name:          req.ProductName,
		Description:   req.Description,
		Category:      req.Category,
		PricePerDay:   req.PricePerDay,
		StockQuantity: req.StockQuantity,
		Availability:  req.Availability,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		switch productsvc.Code(err) {
		case productsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		case productsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid price or stock quantity"})
		default:
			h.Log.Error("product update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product updated successfully!"})
}

// DELETE /delete-product/:productId
//
// Products referenced by order history stay in place; delete deactivates the
// listing instead of dropping the row.
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.Svc.Deactivate(c.Request().Context(), id); err != nil {
		if productsvc.Code(err) == productsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		h.Log.Error("product delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}
