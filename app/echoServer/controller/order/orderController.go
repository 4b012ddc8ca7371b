package order

import (
	"log/slog"
	"net/http"
	"strconv"

	"renthub/app/echoServer/jwtx"
	ordersvc "renthub/service/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ordersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /orders/place-order
func (h *Controller) Place(c echo.Context) error {
	var req PlaceOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields."})
	}

	// fall back to the authenticated user when the body omits userId
	if req.UserID == 0 {
		id, err := jwtx.UserIDFromContext(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
		}
		req.UserID = id
	}

	lines := make([]ordersvc.Line, 0, len(req.CartItems))
	for _, it := range req.CartItems {
		lines = append(lines, ordersvc.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	orderID, err := h.Svc.Place(c.Request().Context(), req.UserID, lines, req.TotalAmount, req.PaymentMethod, req.Address)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields."})
		case ordersvc.ErrProductNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Unknown product in cart."})
		default:
			h.Log.Error("place order", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Order placed successfully",
		"orderId": orderID,
	})
}

// GET /orders/user-orders/:userId
func (h *Controller) UserOrders(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid user id"})
	}

	orders, err := h.Svc.UserOrders(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("user orders", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal Server Error"})
	}
	if len(orders) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "No orders found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

// PUT /orders/cancel-order/:orderId
func (h *Controller) Cancel(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid order id"})
	}

	if err := h.Svc.Cancel(c.Request().Context(), orderID); err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Order not found"})
		case ordersvc.ErrAlreadyCancelled:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Order has already been canceled."})
		case ordersvc.ErrAlreadyDelivered:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Order cannot be canceled as it is already delivered."})
		case ordersvc.ErrTerminalState:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Order cannot be canceled from its current status."})
		default:
			h.Log.Error("cancel order", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order canceled successfully, stock updated."})
}
