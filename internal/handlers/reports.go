package handlers

import (
	"net/http"
	"time"
)

func (h *Handler) MonthlyPosition(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	scopeID := optionalString(r.URL.Query().Get("scope_id"))
	position, err := h.reports.Monthly(r.Context(), year, month, scopeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute position")
		return
	}
	respondJSON(w, http.StatusOK, position)
}

func (h *Handler) PartnerDistribution(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	scopeID := optionalString(r.URL.Query().Get("scope_id"))
	distribution, err := h.reports.Distribution(r.Context(), year, month, scopeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute distribution")
		return
	}
	respondJSON(w, http.StatusOK, distribution)
}

func parsePeriod(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	query := r.URL.Query()
	year := parseInt(query.Get("year"), 0)
	month := parseInt(query.Get("month"), 0)
	if year < 2000 || year > 2100 {
		respondError(w, http.StatusBadRequest, "invalid year")
		return 0, 0, false
	}
	if month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "invalid month")
		return 0, 0, false
	}
	return year, time.Month(month), true
}
