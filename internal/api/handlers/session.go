package handlers

import (
	"net/http"
	"strconv"

	"github.com/foodcourt/shopfront/internal/api/middleware"
	appErrors "github.com/foodcourt/shopfront/internal/errors"
	"github.com/foodcourt/shopfront/internal/models"
	service "github.com/foodcourt/shopfront/internal/services"
	"github.com/foodcourt/shopfront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	sessionService service.SessionService
	validator      *validator.Validate
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validator:      validator.New(),
	}
}

// CreateSession starts a new shopping session and returns it with the
// tenant list already loaded.
func (h *SessionHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		view, err := h.sessionService.Create(r.Context())

		if err != nil {
			logger.Error("Error during session creation", "error", err.Error())
			response.Error(w, err)
			return
		}

		logger.Info("Session created", "sessionId", view.ID)
		response.Success(w, http.StatusCreated, view)

	}
}

func (h *SessionHandler) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.PathValue("id")

		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Session ID is required"))
			return
		}

		view, err := h.sessionService.Get(r.Context(), sessionID)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)

	}
}

// SelectTenant switches the session's merchant. The cart is always
// cleared; the product catalog is refreshed for the new selection.
func (h *SessionHandler) SelectTenant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.PathValue("id")

		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Session ID is required"))
			return
		}

		var req models.SelectTenantRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		view, err := h.sessionService.SelectTenant(r.Context(), sessionID, req.TenantID)

		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Tenant selected",
			"sessionId", sessionID, "tenantId", req.TenantID)
		response.Success(w, http.StatusOK, view)

	}
}

func (h *SessionHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.PathValue("id")

		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Session ID is required"))
			return
		}

		var req models.AddItemRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		view, err := h.sessionService.AddItem(r.Context(), sessionID, req.ProductID)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)

	}
}

func (h *SessionHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.PathValue("id")

		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Session ID is required"))
			return
		}

		productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)

		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		view, err := h.sessionService.RemoveItem(r.Context(), sessionID, productID)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)

	}
}

// ApplyVoucher checks the code against the backend validator. The outcome
// is always a notice, never an error, unless the session itself is gone.
func (h *SessionHandler) ApplyVoucher() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.PathValue("id")

		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Session ID is required"))
			return
		}

		var req models.ApplyVoucherRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		notice, err := h.sessionService.ApplyVoucher(r.Context(), sessionID, req.Code)

		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Voucher checked",
			"sessionId", sessionID, "status", notice.Status)
		response.Success(w, http.StatusOK, notice)

	}
}

// Checkout submits the cart to the backend processor and returns the
// notice together with the reset session state.
func (h *SessionHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.PathValue("id")

		if sessionID == "" {
			response.Error(w, appErrors.BadRequestError("Session ID is required"))
			return
		}

		notice, err := h.sessionService.Checkout(r.Context(), sessionID)

		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Checkout resolved",
			"sessionId", sessionID, "status", notice.Status)
		response.Success(w, http.StatusOK, notice)

	}
}
