package server

import (
	"context"
	"errors"
	"net/http"

	"jpanalyzer/analyze"
	"jpanalyzer/model"
	"jpanalyzer/tokenize"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type textRequest struct {
	Text *string `json:"text" binding:"required"`
	Mode string  `json:"mode"`
}

type analyzeRequest struct {
	Text        *string `json:"text" binding:"required"`
	Mode        string  `json:"mode"`
	NominalForm bool    `json:"nominal_form"`
	PrintFields bool    `json:"print_fields"`
}

type batchRequest struct {
	Text []string `json:"text" binding:"required"`
	Mode string   `json:"mode"`
}

func setupFullRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.index)
	router.GET("/health", h.health)
	router.POST("/analyze", h.analyze)
	router.POST("/furigana", h.shapeText(model.Furigana))
	router.POST("/furiganas", h.furiganas)
	router.POST("/romaji", h.shapeText(model.Romaji))
	router.POST("/grammar", h.shapeText(model.Grammar))
	router.POST("/frequency", h.shapeText(model.Frequency))
}

// bindMessage reports a failed binding. Validation failures mean a required field is absent;
// anything else is a body that could not be decoded.
func bindMessage(err error, missing string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return missing
	}
	return "malformed request body: " + err.Error()
}

// resolveMode applies the configured default code when the request leaves mode out.
func (h *Handler) resolveMode(code string) model.Mode {
	if code == "" {
		code = h.defaultMode
	}
	return tokenize.ResolveMode(code)
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err, "text is required")})
		return
	}
	if req.PrintFields {
		h.log.Debug("print_fields requested", zap.String("request_id", c.GetString("request_id")))
	}
	kind := model.Plain
	if req.NominalForm {
		kind = model.Grammar
	}
	h.respondShaped(c, kind, *req.Text, h.resolveMode(req.Mode))
}

func (h *Handler) shapeText(kind model.OutputKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req textRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err, "text is required")})
			return
		}
		h.respondShaped(c, kind, *req.Text, h.resolveMode(req.Mode))
	}
}

func (h *Handler) respondShaped(c *gin.Context, kind model.OutputKind, text string, mode model.Mode) {
	out, err := h.shapeOne(c.Request.Context(), c.FullPath(), kind, text, mode)
	if err != nil {
		h.analyzerFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) furiganas(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err, "text must be a list of strings")})
		return
	}
	mode := h.resolveMode(req.Mode)
	out := make([][]analyze.Shaped, 0, len(req.Text))
	for _, text := range req.Text {
		shaped, err := h.shapeOne(c.Request.Context(), c.FullPath(), model.FuriganaShort, text, mode)
		if err != nil {
			h.analyzerFailure(c, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, shaped)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) shapeOne(ctx context.Context, route string, kind model.OutputKind, text string, mode model.Mode) ([]analyze.Shaped, error) {
	toks, err := h.tk.Tokenize(ctx, text, mode)
	if err != nil {
		return nil, err
	}
	h.metrics.observeTokens(route, len(toks))
	return h.shaper.ShapeAll(ctx, kind, toks, mode)
}

func (h *Handler) analyzerFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	h.log.Error("analysis failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
