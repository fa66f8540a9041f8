package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"menu-ordering/app"
	"menu-ordering/catalog"
	"menu-ordering/logger"
	"menu-ordering/model"
	"menu-ordering/orders"
	"menu-ordering/service"
)

const defaultMaxBodySize = 1 << 20

// Handler is the HTTP layer over the application store. Catalog, cart and
// order requests go through store actions; reviews talk to their service
// directly.
type Handler struct {
	store   *app.Store
	reviews service.ReviewService
	log     *zap.Logger

	// MaxBodySize caps request bodies in bytes.
	MaxBodySize int64
}

// NewHandler returns a Handler instance
func NewHandler(s *app.Store, reviews service.ReviewService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: s, reviews: reviews, log: log, MaxBodySize: defaultMaxBodySize}
}

// Router returns the routes wrapped in the request middleware.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	r.Use(RequestID(h.log), AccessLog, Recover)
	return r
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Catalog
	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)

	// Cart
	r.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/add", h.AddToCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/clear", h.ClearCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/checkout", h.Checkout).Methods(http.MethodPost)

	// Orders
	r.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id:[0-9]+}", h.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id:[0-9]+}/status", h.UpdateOrderStatus).Methods(http.MethodPatch)
	r.HandleFunc("/orders/{id:[0-9]+}", h.DeleteOrder).Methods(http.MethodDelete)

	// Reviews
	r.HandleFunc("/reviews", h.ListReviews).Methods(http.MethodGet)
	r.HandleFunc("/reviews", h.SubmitReview).Methods(http.MethodPost)

	r.HandleFunc("/debug/actions", h.Actions).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
}

// --- request / response shapes ---
type cartReq struct {
	ProductID int64 `json:"product_id"`
}

type statusReq struct {
	Status model.OrderStatus `json:"status"`
}

type reviewView struct {
	model.Review
	ProductName string   `json:"productName"`
	Stars       []string `json:"stars"`
}

type errorBody struct {
	Error     string               `json:"error"`
	Fields    []service.FieldError `json:"fields,omitempty"`
	RequestID string               `json:"request_id,omitempty"`
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}

// writeFailure maps a domain error to its status code.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, service.ErrOrderNotFound):
		writeErr(w, http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, catalog.ErrEmptyCart):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:     "internal error",
			RequestID: logger.RequestID(r.Context()),
		})
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, h.MaxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeErr(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func orderID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

// --- Catalog ---

// ListProducts handles GET /products?category=...&search=...
// Query parameters override the session's filter for this request only.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	cs := h.store.State().Catalog
	q := r.URL.Query()
	if q.Has("category") {
		cs.SelectedCategory = q.Get("category")
		if cs.SelectedCategory == "" {
			cs.SelectedCategory = model.AllCategories
		}
	}
	if q.Has("search") {
		cs.SearchTerm = q.Get("search")
	}
	writeJSON(w, http.StatusOK, catalog.SelectFilteredProducts(cs))
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.SelectCategories(h.store.State().Catalog))
}

// --- Cart ---

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, app.SelectCartSummary(h.store.State()))
}

// AddToCart handles POST /cart/add
// body: { "product_id": 1 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !h.decode(w, r, &req) {
		return
	}
	p, ok := catalog.FindProduct(h.store.State().Catalog, req.ProductID)
	if !ok {
		writeErr(w, http.StatusNotFound, "product not found")
		return
	}
	s := h.store.Dispatch(r.Context(), catalog.AddToCart{Product: p})
	if s.Catalog.Err != nil {
		h.writeFailure(w, r, s.Catalog.Err)
		return
	}
	writeJSON(w, http.StatusOK, app.SelectCartSummary(s))
}

// RemoveFromCart handles POST /cart/remove
// body: { "product_id": 1 }
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !h.decode(w, r, &req) {
		return
	}
	s := h.store.Dispatch(r.Context(), catalog.RemoveFromCart{ProductID: req.ProductID})
	if s.Catalog.Err != nil {
		h.writeFailure(w, r, s.Catalog.Err)
		return
	}
	writeJSON(w, http.StatusOK, app.SelectCartSummary(s))
}

// ClearCart handles POST /cart/clear
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.store.Dispatch(r.Context(), catalog.ClearCart{})
	if s.Catalog.Err != nil {
		h.writeFailure(w, r, s.Catalog.Err)
		return
	}
	writeJSON(w, http.StatusOK, app.SelectCartSummary(s))
}

// Checkout handles POST /cart/checkout
// Once the order exists the checkout succeeded; a later bookkeeping failure
// is logged, not returned.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	s := h.store.Dispatch(r.Context(), catalog.Checkout{})
	if s.Catalog.LastOrder == nil {
		err := s.Catalog.Err
		if err == nil {
			err = errors.New("checkout produced no order")
		}
		h.writeFailure(w, r, err)
		return
	}
	if s.Catalog.Err != nil {
		logger.FromContext(r.Context()).Warn("checkout completed with storage failure",
			zap.Int64("order_id", s.Catalog.LastOrder.ID),
			zap.Error(s.Catalog.Err),
		)
	}
	writeJSON(w, http.StatusCreated, s.Catalog.LastOrder)
}

// --- Orders ---

// ListOrders handles GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	s := h.store.Dispatch(r.Context(), orders.LoadOrders{})
	if err := orders.SelectOrdersError(s.Orders); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders.SelectAllOrders(s.Orders))
}

// GetOrder handles GET /orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid order id")
		return
	}
	s := h.store.Dispatch(r.Context(), orders.LoadOrderByID{ID: id})
	if err := orders.SelectOrdersError(s.Orders); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders.SelectSelectedOrder(s.Orders))
}

// CreateOrder handles POST /orders
// body: { "items": [...], "totalPrice": 12.5, "status": "PENDING" }
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req service.NewOrder
	if !h.decode(w, r, &req) {
		return
	}
	s := h.store.Dispatch(r.Context(), orders.CreateOrder{Order: req})
	if err := orders.SelectOrdersError(s.Orders); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.Orders.Orders[0])
}

// UpdateOrderStatus handles PATCH /orders/{id}/status
// body: { "status": "CONFIRMED" }
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req statusReq
	if !h.decode(w, r, &req) {
		return
	}
	s := h.store.Dispatch(r.Context(), orders.UpdateOrderStatus{ID: id, Status: req.Status})
	if err := orders.SelectOrdersError(s.Orders); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	for _, o := range s.Orders.Orders {
		if o.ID == id {
			writeJSON(w, http.StatusOK, o)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": req.Status})
}

// DeleteOrder handles DELETE /orders/{id}
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid order id")
		return
	}
	s := h.store.Dispatch(r.Context(), orders.DeleteOrder{ID: id})
	if err := orders.SelectOrdersError(s.Orders); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Reviews ---

// ListReviews handles GET /reviews
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviews, err := h.reviews.List(ctx)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	names := h.reviews.ProductNames(ctx)
	out := make([]reviewView, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, reviewView{
			Review:      rv,
			ProductName: service.NameOf(names, rv.ProductID),
			Stars:       model.Stars(rv.Rating),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// SubmitReview handles POST /reviews
// body: { "productId": 1, "username": "...", "rating": 4, "comment": "..." }
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req service.ReviewInput
	if !h.decode(w, r, &req) {
		return
	}
	rv, err := h.reviews.Submit(r.Context(), req)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// --- Debug ---

// Actions handles GET /debug/actions
func (h *Handler) Actions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.History())
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
