package handler

import (
	"net/http"
	"strconv"

	"fxconvert/internal/domain"

	"github.com/go-chi/chi/v5"
)

var errReasonID = domain.InvalidRequest("Reason id must be a positive integer")

// GetReason godoc
// @Summary      One conversion reason
// @Tags         reasons
// @Produce      json
// @Param        id   path      int  true  "Reason id"
// @Success      200  {object}  dataResponse{data=domain.Reason}
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/reasons/{id} [get]
func (h *Handler) GetReason(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, "GetReason", errReasonID)
		return
	}

	reason, err := h.service.Reason(r.Context(), id)
	if err != nil {
		writeError(w, r, "GetReason", err)
		return
	}
	writeData(w, http.StatusOK, reason)
}
