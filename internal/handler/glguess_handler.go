package handler

import (
	"net/http"

	"flowwork/internal/glguess"
	"flowwork/internal/logger"
	"flowwork/internal/metrics"

	"github.com/gin-gonic/gin"
)

type GLGuessHandler struct {
	guesser Guesser
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewGLGuessHandler(guesser Guesser, log *logger.Logger, m *metrics.Metrics) *GLGuessHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &GLGuessHandler{guesser: guesser, log: log, metrics: m}
}

type GLGuessRequest struct {
	// SupplierID may be zero when the supplier is unknown; supplier based
	// signals are skipped then.
	SupplierID int64               `json:"supplier_id" binding:"gte=0"`
	Lines      []glguess.LineInput `json:"lines" binding:"required"`
}

// Guess annotates parsed purchase lines with GL accounts, spike flags and
// ranked suggestions.
func (h *GLGuessHandler) Guess(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		return
	}

	var req GLGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := h.log.WithCompanyID(c.Request.Context(), company)
	res, err := h.guesser.Guess(ctx, glguess.Request{
		CompanyID:  company,
		SupplierID: req.SupplierID,
		Lines:      req.Lines,
	})
	if err != nil {
		h.log.Error(ctx, "gl guess", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to guess GL accounts"})
		return
	}

	for _, line := range res.Lines {
		h.metrics.ObserveGLGuess(line.GLSource, line.FlagSpike)
	}
	c.JSON(http.StatusOK, res)
}
