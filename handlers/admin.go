package handlers

import (
	"net/http"

	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	h.listStaff(w, r, models.RoleEmployee)
}

func (h *Handler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	h.listStaff(w, r, models.RoleAdmin)
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request, role models.Role) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	page, err := helpers.ParsePage(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	staff, err := h.staff.List(r.Context(), identity, role, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, staff)
}

func (h *Handler) GetStaffMember(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	member, err := h.staff.Get(r.Context(), identity, pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.CreateStaffRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	member, err := h.staff.Create(r.Context(), identity, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, member)
}

func (h *Handler) UpdateStaffMember(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.UpdateStaffRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	member, err := h.staff.Update(r.Context(), identity, pathID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) DeleteStaffMember(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	deleted, err := h.staff.Delete(r.Context(), identity, pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response := struct {
		Message string        `json:"message"`
		Staff   *models.Staff `json:"staff"`
	}{
		Message: "Staff member deleted.",
		Staff:   deleted,
	}

	helpers.WriteJSON(w, http.StatusOK, response)
}
