package review

import (
	"log/slog"
	"net/http"
	"strconv"

	reviewsvc "renthub/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /reviews/submit-review
func (h *Controller) Submit(c echo.Context) error {
	var req SubmitReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid input data"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid input data"})
	}

	_, err := h.Svc.Submit(c.Request().Context(), req.OrderID, req.ProductID, req.UserID, req.Review, req.Rating)
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid input data"})
		case reviewsvc.ErrOrderNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid orderId."})
		case reviewsvc.ErrProductNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid productId."})
		case reviewsvc.ErrUserNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid userId."})
		case reviewsvc.ErrDuplicate:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You have already reviewed this product."})
		default:
			h.Log.Error("submit review", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to submit review."})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Review submitted successfully!"})
}

// GET /reviews/product/:productId
func (h *Controller) ByProduct(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || productID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid product id"})
	}

	rows, err := h.Svc.ByProduct(c.Request().Context(), productID)
	if err != nil {
		h.Log.Error("reviews by product", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Database query failed."})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reviews": rows})
}

// GET /random-reviews
func (h *Controller) Random(c echo.Context) error {
	rows, err := h.Svc.Random(c.Request().Context(), 6)
	if err != nil {
		h.Log.Error("random reviews", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Database query failed."})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reviews": rows})
}
