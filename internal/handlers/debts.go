package handlers

import "net/http"

func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	counterpartyID := query.Get("counterparty_id")
	if counterpartyID == "" {
		respondError(w, http.StatusBadRequest, "counterparty_id is required")
		return
	}
	debts, err := h.debts.ListByCounterparty(r.Context(), counterpartyID, query.Get("status"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load debts")
		return
	}
	respondJSON(w, http.StatusOK, debts)
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (h *Handler) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := parseInt(query.Get("limit"), 50)
	page := parseInt(query.Get("page"), 1)
	entries, err := h.audit.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load audit log")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
