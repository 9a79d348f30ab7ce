package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

func (h *Handler) GetPendingTransactions(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, h.transactions.ListPending)
}

func (h *Handler) GetVerifiedTransactions(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, h.transactions.ListVerified)
}

type listFunc func(ctx context.Context, caller models.Identity, page helpers.Page) (*models.TransactionPage, error)

func (h *Handler) listByStatus(w http.ResponseWriter, r *http.Request, list listFunc) {
	identity, ok := h.caller(w, r)
	if !ok {
		return
	}

	page, err := helpers.ParsePage(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := list(r.Context(), identity, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result.Data)
}

func (h *Handler) ReviewTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.review(w, r)
	if !ok {
		return
	}

	response := struct {
		Message     string              `json:"message"`
		Transaction *models.Transaction `json:"transaction"`
	}{
		Message:     fmt.Sprintf("Transaction %s updated to %s.", tx.ID, tx.Status),
		Transaction: tx,
	}

	helpers.WriteJSON(w, http.StatusOK, response)
}
