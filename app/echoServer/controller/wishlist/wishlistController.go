package wishlist

import (
	"log/slog"
	"net/http"
	"strconv"

	wishlistsvc "renthub/service/wishlist"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc wishlistsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /wishlist
func (h *Controller) Add(c echo.Context) error {
	var req WishlistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "error", "message": "User ID and Product ID are required",
		})
	}

	id, err := h.Svc.Add(c.Request().Context(), req.UserID, req.ProductID)
	if err != nil {
		if wishlistsvc.Code(err) == wishlistsvc.ErrDuplicate {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status": "error", "message": "Product is already in the wishlist",
			})
		}
		h.Log.Error("wishlist add", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "error", "message": "Failed to add to wishlist",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Product added to wishlist successfully!",
		"data":    echo.Map{"wishlistId": id, "userId": req.UserID, "productId": req.ProductID},
	})
}

// GET /wishlist/:userId
func (h *Controller) List(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid user id"})
	}

	rows, err := h.Svc.List(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("wishlist list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "error", "message": "Failed to fetch wishlist",
		})
	}
	if rows == nil {
		rows = []wishlistsvc.Row{}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "wishlist": rows})
}

// DELETE /wishlist
func (h *Controller) Remove(c echo.Context) error {
	var req WishlistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "error", "message": "User ID and Product ID are required.",
		})
	}

	if err := h.Svc.Remove(c.Request().Context(), req.UserID, req.ProductID); err != nil {
		if wishlistsvc.Code(err) == wishlistsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{
				"status": "error", "message": "Product not found in wishlist.",
			})
		}
		h.Log.Error("wishlist remove", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "error", "message": "Internal Server Error. Please try again later.",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "Product removed from wishlist."})
}
