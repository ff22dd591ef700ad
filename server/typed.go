package server

import (
	"net/http"

	"jpanalyzer/analyze"
	"jpanalyzer/model"
	"jpanalyzer/tokenize"

	"github.com/gin-gonic/gin"
)

type typedAnalyzeRequest struct {
	Text *string `json:"text" binding:"required"`
	Mode string  `json:"mode"`
}

func setupTypedRoutes(router *gin.Engine, h *Handler) {
	router.GET("/health", h.health)
	router.POST("/health", h.health)
	router.POST("/analyze", h.typedAnalyze)
}

// typedAnalyze returns one flat record per token. Unknown mode codes fall back to A.
func (h *Handler) typedAnalyze(c *gin.Context) {
	var req typedAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": bindMessage(err, "text is required")})
		return
	}
	mode := tokenize.ResolveModeOr(req.Mode, model.ModeCoarse)

	toks, err := h.tk.Tokenize(c.Request.Context(), *req.Text, mode)
	if err != nil {
		h.analyzerFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	h.metrics.observeTokens(c.FullPath(), len(toks))

	out := make([]model.TypedToken, 0, len(toks))
	for _, tok := range toks {
		out = append(out, analyze.Typed(tok))
	}
	c.JSON(http.StatusOK, out)
}
