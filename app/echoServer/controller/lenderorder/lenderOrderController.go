package lenderorder

import (
	"log/slog"
	"net/http"
	"strconv"

	ordersvc "renthub/service/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ordersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /lender-orders/:userId
func (h *Controller) List(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid user id"})
	}

	orders, err := h.Svc.LenderOrders(c.Request().Context(), userID)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		case ordersvc.ErrNotLender:
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "User is not a lender"})
		default:
			h.Log.Error("lender orders", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error fetching orders"})
		}
	}
	if len(orders) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "No orders found for this lender."})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

// PUT /update-order-status/:orderId
func (h *Controller) UpdateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid order id"})
	}

	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}

	if err := h.Svc.UpdateStatus(c.Request().Context(), orderID, req.Status); err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Invalid or missing status. Valid statuses: 'Pending', 'Shipped', 'Delivered', 'Returned', 'Cancelled'.",
			})
		case ordersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Order not found"})
		case ordersvc.ErrTerminalState:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "Order status cannot be changed from its current state",
			})
		default:
			h.Log.Error("update order status", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error updating status"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order status updated successfully"})
}
