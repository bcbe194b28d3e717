package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/glcplatform/portal/internal/api/handler"
	"github.com/glcplatform/portal/internal/api/middleware"
	"github.com/glcplatform/portal/internal/api/web"
	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
	"github.com/glcplatform/portal/internal/core/service"
	"github.com/glcplatform/portal/internal/infrastructure/config"
	"github.com/glcplatform/portal/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The navigation service is returned alongside so the caller can start its
// visit janitor with the process lifetime context.
func NewRouter(cfg *config.Config, backend ports.BackendGateway, drafts ports.DraftStore) (*echo.Echo, *service.NavService, error) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("25M"))
	e.Use(echoprometheus.NewMiddleware("glc_portal"))

	e.Renderer = web.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Component("http"))

	// --- Dependencies ---
	authService := service.NewAuthService(backend, cfg.Session.Secret, cfg.Session.TTL, logger.Component("auth-service"))
	navService, err := service.NewNavService(backend, drafts, cfg.Nav.LenderHome, cfg.Nav.BorrowerHome, cfg.Nav.VisitTTL, logger.Component("nav-service"))
	if err != nil {
		return nil, nil, err
	}
	applyService := service.NewApplyService(backend, drafts, logger.Component("apply-service"))
	draftService := service.NewDraftService(drafts, logger.Component("draft-service"))
	reviewService := service.NewReviewService(backend, logger.Component("review-service"))
	documentService := service.NewDocumentService(backend, logger.Component("document-service"))

	secureCookies := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, navService, cfg.Session.TTL, secureCookies)
	pageHandler := handler.NewPageHandler(navService)
	applicationHandler := handler.NewApplicationHandler(applyService, reviewService)
	documentHandler := handler.NewDocumentHandler(documentService)
	draftHandler := handler.NewDraftHandler(draftService)

	// --- Auth routes ---
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Shell and static assets ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/portal")
	})
	e.GET("/portal", pageHandler.Shell, middleware.Session(authService, true))
	e.StaticFS("/static", web.Assets())

	// --- Portal fragments and actions (session via cookie, JSON errors) ---
	p := e.Group("/portal", middleware.Session(authService, false))

	p.GET("/fragment/:page", pageHandler.Fragment)
	p.GET("/fragment/audit/:tab", pageHandler.AuditTab)

	borrowerOnly := middleware.RequireRole(domain.RoleBorrower)
	lenderOnly := middleware.RequireRole(domain.RoleLender)

	p.POST("/applications", applicationHandler.Submit, borrowerOnly)
	p.POST("/applications/:id/documents", applicationHandler.Upload, borrowerOnly)
	p.POST("/applications/:id/ingest", applicationHandler.Ingest, borrowerOnly)
	p.POST("/applications/:id/verify", applicationHandler.Verify, lenderOnly)
	p.GET("/applications/:id/trail", documentHandler.Trail)

	p.GET("/documents/:id/download", documentHandler.Download)
	p.GET("/documents/:id/view", documentHandler.View)
	p.GET("/documents/:id/overlay", documentHandler.Overlay)

	p.GET("/drafts/:page", draftHandler.Get, borrowerOnly)
	p.PUT("/drafts/:page", draftHandler.Put, borrowerOnly)
	p.DELETE("/drafts/:page", draftHandler.Delete, borrowerOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(backend, drafts)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, navService, nil
}
