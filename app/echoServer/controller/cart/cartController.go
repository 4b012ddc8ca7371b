package cart

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	cartsvc "renthub/service/cart"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cartsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /cart
func (h *Controller) Add(c echo.Context) error {
	var req AddToCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": "User ID, Product ID, and Quantity are required",
		})
	}

	out, err := h.Svc.Add(c.Request().Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		switch cartsvc.Code(err) {
		case cartsvc.ErrNotRenter:
			return c.JSON(http.StatusForbidden, echo.Map{
				"status": "error", "message": "Only renters can add products to the cart",
			})
		case cartsvc.ErrProductNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{
				"status": "error", "message": "Product not found",
			})
		case cartsvc.ErrNoStock:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": fmt.Sprintf("Only %d items are available in stock.", cartsvc.Available(err)),
			})
		case cartsvc.ErrMultiLender:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status": "error", "message": "All products in the cart must belong to the same lender",
			})
		case cartsvc.ErrBadQuantity:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status": "error", "message": "Quantity must be at least 1",
			})
		default:
			h.Log.Error("cart add", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status": "error", "message": "Internal Server Error",
			})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Product added to cart. Stock updated.",
		"data": echo.Map{
			"cartId":         out.CartID,
			"userId":         req.UserID,
			"productId":      req.ProductID,
			"quantity":       req.Quantity,
			"remainingStock": out.RemainingStock,
		},
	})
}

// GET /cart/:userId
func (h *Controller) List(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid user id"})
	}

	rows, err := h.Svc.List(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("cart list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "error", "message": "Failed to fetch cart items",
		})
	}
	if rows == nil {
		rows = []cartsvc.Row{}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "cart": rows})
}

// DELETE /cart/:cartId
func (h *Controller) Remove(c echo.Context) error {
	cartID, err := strconv.ParseInt(c.Param("cartId"), 10, 64)
	if err != nil || cartID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid cart id"})
	}

	if err := h.Svc.Remove(c.Request().Context(), cartID); err != nil {
		switch cartsvc.Code(err) {
		case cartsvc.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "Cart item not found"})
		default:
			h.Log.Error("cart remove", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status": "error", "message": "Failed to remove product from cart",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success", "message": "Product removed from cart. Stock updated.",
	})
}

// PUT /cart/update-quantity
func (h *Controller) UpdateQuantity(c echo.Context) error {
	var req UpdateQuantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "error", "message": "Invalid cart item or quantity",
		})
	}

	if err := h.Svc.UpdateQuantity(c.Request().Context(), req.CartID, req.NewQuantity); err != nil {
		switch cartsvc.Code(err) {
		case cartsvc.ErrBadQuantity:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status": "error", "message": "Invalid cart item or quantity",
			})
		case cartsvc.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "Cart item not found"})
		case cartsvc.ErrNoStock:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": fmt.Sprintf("Only %d items are available in stock.", cartsvc.Available(err)),
			})
		default:
			h.Log.Error("cart update quantity", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status": "error", "message": "Failed to update cart quantity",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": fmt.Sprintf("Cart updated successfully. Quantity: %d", req.NewQuantity),
	})
}
