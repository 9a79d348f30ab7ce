package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/StaffPortal/handlers"
)

func AuthRoutes(r *mux.Router, h *handlers.Handler, authenticated mux.MiddlewareFunc, lim limiters) {
	r.Handle("/register", lim.register.Middleware(http.HandlerFunc(h.Register))).Methods(http.MethodPost)
	r.Handle("/login", lim.login.Middleware(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	r.Handle("/staffLogin", lim.login.Middleware(http.HandlerFunc(h.StaffLogin))).Methods(http.MethodPost)

	restricted := r.PathPrefix("/").Subrouter()
	restricted.Use(authenticated)
	restricted.HandleFunc("/logout", h.Logout).Methods(http.MethodGet, http.MethodPost)
	restricted.HandleFunc("/me", h.Me).Methods(http.MethodGet)
}
