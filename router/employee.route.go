package router

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/StaffPortal/handlers"
	"github.com/UmangSachdeva/StaffPortal/middleware"
	"github.com/UmangSachdeva/StaffPortal/models"
)

func EmployeeRoutes(r *mux.Router, h *handlers.Handler, authenticated mux.MiddlewareFunc, logger *slog.Logger) {
	r.Use(authenticated, middleware.RequireRoles(logger, models.RoleEmployee, models.RoleAdmin))

	r.HandleFunc("/getPendingTransactions", h.GetPendingTransactions).Methods(http.MethodGet)
	r.HandleFunc("/getVerifiedTransactions", h.GetVerifiedTransactions).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.GetTransaction).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.ReviewTransaction).Methods(http.MethodPut)
}
