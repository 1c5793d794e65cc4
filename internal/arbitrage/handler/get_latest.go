package handler

import (
	"errors"
	"net/http"
	"strings"

	"arbscanner/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetLatest godoc
// @Summary Latest arbitrage result for an asset
// @Tags Results
// @Produce json
// @Param asset path string true "Asset symbol, e.g. BTC"
// @Success 200 {object} ResultResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /results/{asset}/latest [get]
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	asset := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "asset")))

	if err := h.validator.ValidateAsset(asset); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Latest(r.Context(), asset)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			writeError(w, http.StatusNotFound, "no result yet for "+asset)
			return
		}
		msg := "ups, couldn't get latest result this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetLatest", "asset": asset}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toResultResponse(result))
}
