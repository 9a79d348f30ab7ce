package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.CreateTransactionRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	tx, err := h.transactions.Create(r.Context(), identity, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, tx)
}

// GetTransactions lists every transaction, newest first. ?status takes a
// comma separated list of statuses; ?page and ?limit page the result.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	page, err := helpers.ParsePage(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var statuses []models.TransactionStatus
	for _, v := range strings.Split(r.URL.Query().Get("status"), ",") {
		if v = strings.TrimSpace(v); v != "" {
			statuses = append(statuses, models.TransactionStatus(v))
		}
	}

	result, err := h.transactions.List(r.Context(), identity, page, statuses...)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	tx, err := h.transactions.GetOne(r.Context(), identity, pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) GetCustomerTransactions(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	page, err := helpers.ParsePage(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.transactions.ListByCustomer(r.Context(), identity, mux.Vars(r)["customerId"], page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response := struct {
		Transactions []*models.Transaction `json:"transactions"`
		Total        int64                 `json:"total"`
	}{
		Transactions: result.Data,
		Total:        result.Total,
	}

	helpers.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.review(w, r)
	if !ok {
		return
	}

	helpers.WriteJSON(w, http.StatusAccepted, tx)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	deleted, err := h.transactions.Delete(r.Context(), identity, pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusAccepted, deleted)
}

// review decodes a staff decision and applies it, writing the error response itself.
func (h *Handler) review(w http.ResponseWriter, r *http.Request) (*models.Transaction, bool) {
	identity, ok := h.caller(w, r)
	if !ok {
		return nil, false
	}

	var req models.ReviewRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return nil, false
	}

	tx, err := h.transactions.UpdateStatus(r.Context(), identity, pathID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}

	return tx, true
}
