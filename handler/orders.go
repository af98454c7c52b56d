package handler

import (
	"net/http"

	"storefront-api/auth"
	"storefront-api/models"
)

// PlaceOrder handles POST /order
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	order, err := h.svc.PlaceOrder(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err, "An error occurred while placing the order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Order placed successfully", "order": order})
}

// OrderHistory handles GET /order/order-history
func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	orders, err := h.svc.OrderHistory(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err, "An error occurred while retrieving the order history")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// OrderDetail handles GET /order/{orderId}
func (h *Handler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	orderID, err := pathID(r, "orderId")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	order, err := h.svc.OrderDetail(r.Context(), id, orderID)
	if err != nil {
		h.writeErr(w, r, err, "An error occurred while retrieving the order details")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}
