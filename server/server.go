package server

import (
	"net/http"

	"jpanalyzer/analyze"
	"jpanalyzer/config"
	"jpanalyzer/tokenize"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by both API variants.
type Deps struct {
	Tokenizer tokenize.Tokenizer
	// DictName is reported by GET /tokenizer.
	DictName string
	Logger   *zap.Logger
	Metrics  *Metrics
}

// Handler serves the analysis endpoints.
type Handler struct {
	tk          tokenize.Tokenizer
	shaper      *analyze.Shaper
	dictName    string
	defaultMode string
	log         *zap.Logger
	metrics     *Metrics
}

// NewHandler wires a Handler from cfg and deps.
func NewHandler(cfg *config.Config, deps Deps) *Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := deps.Metrics
	if m == nil {
		m = NewMetrics()
	}
	return &Handler{
		tk:          deps.Tokenizer,
		shaper:      analyze.NewShaper(deps.Tokenizer),
		dictName:    deps.DictName,
		defaultMode: cfg.DefaultMode,
		log:         log,
		metrics:     m,
	}
}

// NewRouter builds the gin engine for the configured API variant.
func NewRouter(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	h := NewHandler(cfg, deps)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(h.log))
	router.Use(h.metrics.instrument())
	router.Use(cors.New(corsConfig(cfg)))

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{})))
	}
	router.GET("/tokenizer", h.tokenizerInfo)

	switch cfg.APIVariant {
	case config.VariantTyped:
		setupTypedRoutes(router, h)
	default:
		tmpl, err := loadPage(cfg.TemplateDir)
		if err != nil {
			return nil, err
		}
		router.SetHTMLTemplate(tmpl)
		setupFullRoutes(router, h)
	}
	return router, nil
}

// NewHTTPServer wraps handler in an http.Server with the configured timeouts.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout / 2,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) == 0 || containsStar(cfg.CORSAllowOrigins) {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.CORSAllowOrigins
	}
	if containsStar(cfg.CORSAllowMethods) {
		cc.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	} else if len(cfg.CORSAllowMethods) > 0 {
		cc.AllowMethods = cfg.CORSAllowMethods
	}
	if containsStar(cfg.CORSAllowHeaders) {
		cc.AllowHeaders = []string{"*"}
	} else if len(cfg.CORSAllowHeaders) > 0 {
		cc.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cc
}

func containsStar(vals []string) bool {
	for _, v := range vals {
		if v == "*" {
			return true
		}
	}
	return false
}

func (h *Handler) tokenizerInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dictionary": h.dictName,
		"modes":      tokenize.ModeCodes,
		"default":    h.defaultMode,
	})
}
