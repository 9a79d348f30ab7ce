package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/auth"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
	"github.com/UmangSachdeva/StaffPortal/repository"
	"github.com/UmangSachdeva/StaffPortal/services"
)

type Handler struct {
	transactions *services.TransactionService
	staff        *services.StaffService
	auth         *services.AuthService
	health       repository.Pinger
	logger       *slog.Logger
}

func New(
	transactions *services.TransactionService,
	staff *services.StaffService,
	authService *services.AuthService,
	health repository.Pinger,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		transactions: transactions,
		staff:        staff,
		auth:         authService,
		health:       health,
		logger:       logger,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterCustomerRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	customer, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response := struct {
		Message  string           `json:"message"`
		Customer *models.Customer `json:"customer"`
	}{
		Message:  "Registration successful.",
		Customer: customer,
	}

	helpers.WriteJSON(w, http.StatusCreated, response)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CustomerLoginRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, token)
}

func (h *Handler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req models.StaffLoginRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.auth.StaffLogin(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, token)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.auth.Logout(r.Context(), identity); err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: "Logged out."})
}

// Me returns the identity the bearer token resolved to.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	helpers.WriteJSON(w, http.StatusOK, identity)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteError(w, h.logger, r, err)
}

// caller writes 401 and reports false when the request carries no verified identity.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.fail(w, r, apperror.InvalidCredential("Authentication required."))
		return models.Identity{}, false
	}
	return identity, true
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
