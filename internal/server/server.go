package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sunugrid/voltara/internal/config"
	"github.com/sunugrid/voltara/internal/journal"
	journaldomain "github.com/sunugrid/voltara/internal/journal/domain"
	"github.com/sunugrid/voltara/internal/meter"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	"github.com/sunugrid/voltara/internal/observability"
	obslogger "github.com/sunugrid/voltara/internal/observability/logger"
	obsmetrics "github.com/sunugrid/voltara/internal/observability/metrics"
	"github.com/sunugrid/voltara/internal/purchase"
	purchasedomain "github.com/sunugrid/voltara/internal/purchase/domain"
	"github.com/sunugrid/voltara/internal/tariff"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	tariff.Module,
	meter.Module,
	purchase.Module,
	journal.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, log *zap.Logger, m *obsmetrics.Metrics, reg *prometheus.Registry) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(m))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

func registerGin(obsCfg observability.Config, log *zap.Logger, m *obsmetrics.Metrics, reg *prometheus.Registry) *gin.Engine {
	return NewEngine(obsCfg, log, m, reg)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	purchaseSvc purchasedomain.Service
	meterSvc    meterdomain.Service
	tariffSvc   tariffdomain.Service
	journalSvc  journaldomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	PurchaseSvc purchasedomain.Service
	MeterSvc    meterdomain.Service
	TariffSvc   tariffdomain.Service
	JournalSvc  journaldomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http"),
		purchaseSvc: p.PurchaseSvc,
		meterSvc:    p.MeterSvc,
		tariffSvc:   p.TariffSvc,
		journalSvc:  p.JournalSvc,
	}

	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Purchases --------
	api.POST("/purchases", s.ProcessPurchase)
	api.GET("/purchases", s.ListPurchases)
	api.GET("/purchases/:reference", s.GetPurchaseByReference)

	// -------- Meters --------
	api.GET("/meters", s.ListMeters)
	api.POST("/meters", s.CreateMeter)
	api.GET("/meters/:identifier", s.GetMeterByIdentifier)
	api.PATCH("/meters/:identifier/status", s.SetMeterStatus)

	// -------- Tariffs --------
	api.GET("/tariffs", s.ListTariffs)
	api.POST("/tariffs", s.CreateTariff)
	api.GET("/tariffs/:ordinal", s.GetTariffByOrdinal)
	api.PATCH("/tariffs/:ordinal", s.UpdateTariff)

	// -------- Journal --------
	api.GET("/journal", s.ListJournal)
	api.GET("/journal/statistics", s.GetJournalStatistics)
	api.POST("/journal/purge", s.PurgeJournal)
}
