package router

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/StaffPortal/handlers"
	"github.com/UmangSachdeva/StaffPortal/middleware"
	"github.com/UmangSachdeva/StaffPortal/models"
)

func AdminRoutes(r *mux.Router, h *handlers.Handler, authenticated mux.MiddlewareFunc, logger *slog.Logger) {
	r.Use(authenticated, middleware.RequireRoles(logger, models.RoleAdmin))

	r.HandleFunc("/getEmployees", h.GetEmployees).Methods(http.MethodGet)
	r.HandleFunc("/getAdmins", h.GetAdmins).Methods(http.MethodGet)
	r.HandleFunc("/createEmployee", h.CreateEmployee).Methods(http.MethodPost)
	r.HandleFunc("/{id}", h.GetStaffMember).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.UpdateStaffMember).Methods(http.MethodPut)
	r.HandleFunc("/{id}", h.DeleteStaffMember).Methods(http.MethodDelete)
}
