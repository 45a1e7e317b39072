package handler

import "net/http"

// ListConversions godoc
// @Summary      List stored conversions
// @Description  Returns every stored conversion, newest first.
// @Tags         conversions
// @Produce      json
// @Success      200  {object}  dataResponse{data=[]ConversionResponse}
// @Failure      500  {object}  errorResponse
// @Router       /api/conversions [get]
func (h *Handler) ListConversions(w http.ResponseWriter, r *http.Request) {
	conversions, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, "ListConversions", err)
		return
	}

	res := make([]ConversionResponse, 0, len(conversions))
	for _, c := range conversions {
		res = append(res, toConversionResponse(c))
	}
	writeData(w, http.StatusOK, res)
}
