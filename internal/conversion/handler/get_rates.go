package handler

import "net/http"

// GetRates godoc
// @Summary      Live exchange rates
// @Description  Fetches the current rate table from the forex provider. Nothing is cached.
// @Tags         rates
// @Produce      json
// @Success      200  {object}  dataResponse{data=domain.LiveRatesSnapshot}
// @Failure      500  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.LiveRates(r.Context())
	if err != nil {
		writeError(w, r, "GetRates", err)
		return
	}
	writeData(w, http.StatusOK, snapshot)
}
