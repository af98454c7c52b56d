package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"storefront-api/auth"
	"storefront-api/models"
)

// createProductReq uses pointers so an absent field can be told apart from a zero value.
type createProductReq struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Price        *decimal.Decimal `json:"price"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image"`
	Quantity     *int             `json:"quantity"`
	Availability *bool            `json:"availability,omitempty"` // accepted, derived from quantity
}

func (req createProductReq) missing() []string {
	var out []string
	blank := func(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }
	if blank(req.Name) {
		out = append(out, "name")
	}
	if blank(req.Category) {
		out = append(out, "category")
	}
	if req.Price == nil {
		out = append(out, "price")
	}
	if blank(req.Description) {
		out = append(out, "description")
	}
	if blank(req.Image) {
		out = append(out, "image")
	}
	if req.Quantity == nil {
		out = append(out, "quantity")
	}
	return out
}

type categoryResp struct {
	Category string `json:"category"`
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req createProductReq
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if missing := req.missing(); len(missing) > 0 {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	saved, err := h.svc.CreateProduct(r.Context(), id, models.Product{
		Name:        *req.Name,
		Category:    *req.Category,
		Price:       *req.Price,
		Description: *req.Description,
		Image:       *req.Image,
		Quantity:    *req.Quantity,
	})
	if err != nil {
		h.writeErr(w, r, err, "Error Inserting Product")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Product Added", "savedProduct": saved})
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.writeErr(w, r, err, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// ListCategories handles GET /products/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.writeErr(w, r, err, "Internal Server Error")
		return
	}
	out := make([]categoryResp, 0, len(cs))
	for _, c := range cs {
		out = append(out, categoryResp{Category: c})
	}
	writeJSON(w, http.StatusOK, out)
}

// ProductsByCategory handles GET /products/category/{categoryName}
func (h *Handler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.ProductsByCategory(r.Context(), mux.Vars(r)["categoryName"])
	if err != nil {
		h.writeErr(w, r, err, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// GetProduct handles GET /products/{productId}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		// an id that can never exist is reported like any other missing product
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found.", mux.Vars(r)["productId"]))
		return
	}
	p, err := h.svc.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeErr(w, r, err, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
