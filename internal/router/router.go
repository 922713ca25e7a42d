package router

import (
	"net/http"

	"github.com/JRBelisario/livro-caixa-mei/internal/config"
	"github.com/JRBelisario/livro-caixa-mei/internal/handler"
	"github.com/JRBelisario/livro-caixa-mei/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Setup configures the gin engine: middleware, API routes and the static
// frontend under ./public.
func Setup(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// static frontend (login page, dashboard, chart assets)
	r.NoRoute(gin.WrapH(http.FileServer(http.Dir("./public"))))

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.Session, cfg.Security.BcryptCost, log)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/check-auth", authHandler.CheckAuth)

	// reference data is public: the entry form needs it before login
	configHandler := handler.NewConfiguracaoHandler(db, log)
	api.GET("/configuracoes", configHandler.List)

	protected := api.Group("")
	protected.Use(middleware.RequireSession(db, cfg.Session.CookieName))

	transacaoHandler := handler.NewTransacaoHandler(db, log)
	protected.GET("/lancamentos", transacaoHandler.List)
	protected.POST("/lancamentos", transacaoHandler.Create)
	protected.PUT("/lancamentos/:id", transacaoHandler.Update)
	protected.DELETE("/lancamentos/:id", transacaoHandler.Delete)

	reportHandler := handler.NewReportHandler(db, log)
	protected.GET("/resumo-financeiro", reportHandler.Resumo)
	protected.GET("/dados-grafico", reportHandler.DadosGrafico)
	protected.GET("/reports/csv", reportHandler.ExportCSV)
	protected.GET("/reports/pdf", reportHandler.ExportPDF)
	protected.GET("/reports/xlsx", reportHandler.ExportXLSX)

	importarHandler := handler.NewImportarHandler(db, log)
	protected.POST("/importar-extrato", importarHandler.Extrato)

	return r
}
