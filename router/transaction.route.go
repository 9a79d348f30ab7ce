package router

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/StaffPortal/handlers"
	"github.com/UmangSachdeva/StaffPortal/middleware"
	"github.com/UmangSachdeva/StaffPortal/models"
)

// TransactionRoutes only gates on authentication; ownership and role rules
// live in the transaction service because reads depend on the record's owner.
func TransactionRoutes(r *mux.Router, h *handlers.Handler, authenticated mux.MiddlewareFunc, logger *slog.Logger) {
	r.Use(authenticated)

	r.HandleFunc("", h.CreateTransaction).Methods(http.MethodPost)
	r.HandleFunc("", h.GetTransactions).Methods(http.MethodGet)
	r.HandleFunc("/customer/{customerId}", h.GetCustomerTransactions).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.GetTransaction).Methods(http.MethodGet)

	staffOnly := middleware.RequireRoles(logger, models.RoleEmployee, models.RoleAdmin)
	r.Handle("/{id}", staffOnly(http.HandlerFunc(h.UpdateTransaction))).Methods(http.MethodPut)
	r.Handle("/{id}", staffOnly(http.HandlerFunc(h.DeleteTransaction))).Methods(http.MethodDelete)
}
