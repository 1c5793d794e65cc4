package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type GetResultsResponse struct {
	Results []ResultResponse `json:"results"`
}

// GetResults godoc
// @Summary List recent arbitrage results
// @Description Most recent results first, optionally filtered by asset
// @Tags Results
// @Produce json
// @Param asset query string false "Asset symbol, e.g. BTC"
// @Param limit query int false "Number of results, 1..500" default(50)
// @Success 200 {object} GetResultsResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /results [get]
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := h.validator.ParseFilter(q.Get("asset"), q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.service.Recent(r.Context(), filter)
	if err != nil {
		msg := "ups, couldn't get results this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetResults", "asset": filter.Asset, "limit": filter.Limit}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := GetResultsResponse{Results: make([]ResultResponse, 0, len(results))}
	for _, item := range results {
		res.Results = append(res.Results, toResultResponse(item))
	}
	writeJSON(w, http.StatusOK, res)
}
