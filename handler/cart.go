package handler

import (
	"net/http"

	"storefront-api/auth"
	"storefront-api/service"
)

type addToCartReq struct {
	Product  int64 `json:"product" validate:"required,gt=0"`
	Quantity int   `json:"quantity,omitempty" validate:"gte=0,max=2147483647"` // 0 or absent means 1
}

// AddToCart handles POST /cart/add
// body: { "product": 1, "quantity": 2 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req addToCartReq
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.svc.AddToCart(r.Context(), id, req.Product, req.Quantity)
	if err != nil {
		h.writeErr(w, r, err, "An error occurred while adding the product to the cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Product added to the cart successfully", "cart": cart})
}

// ViewCart handles GET /cart/view
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	cart, err := h.svc.ViewCart(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err, "An error occurred while retrieving the cart details")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Cart details retrieved successfully", "cart": cart})
}

// DecrementCartItem handles PATCH /cart/decrement/{productId}
func (h *Handler) DecrementCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	productID, err := pathID(r, "productId")
	if err != nil {
		writeFieldErrors(w, []service.FieldError{{Field: "productId", Message: "Invalid product ID"}})
		return
	}

	cart, err := h.svc.DecrementCartItem(r.Context(), id, productID)
	if err != nil {
		h.writeErr(w, r, err, "An error occurred while decrementing the quantity")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Quantity decremented successfully", "cart": cart})
}

// RemoveCartItem handles DELETE|PATCH /cart/remove/{productId}
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	productID, err := pathID(r, "productId")
	if err != nil {
		writeFieldErrors(w, []service.FieldError{{Field: "productId", Message: "Invalid product ID"}})
		return
	}

	cart, err := h.svc.RemoveCartItem(r.Context(), id, productID)
	if err != nil {
		h.writeErr(w, r, err, "An error occurred while removing the product from the cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Product removed from the cart successfully", "cart": cart})
}
