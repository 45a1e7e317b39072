package handler

import (
	"net/http"

	"fxconvert/internal/domain"
)

// ListReasons godoc
// @Summary      Conversion reasons
// @Description  Returns the catalogue of reasons a conversion can be tagged with.
// @Tags         reasons
// @Produce      json
// @Success      200  {object}  dataResponse{data=[]domain.Reason}
// @Failure      500  {object}  errorResponse
// @Router       /api/reasons [get]
func (h *Handler) ListReasons(w http.ResponseWriter, r *http.Request) {
	reasons, err := h.service.Reasons(r.Context())
	if err != nil {
		writeError(w, r, "ListReasons", err)
		return
	}
	if reasons == nil {
		reasons = []domain.Reason{}
	}
	writeData(w, http.StatusOK, reasons)
}
