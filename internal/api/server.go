// internal/api/server.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/rtk-status/internal/status"
	"github.com/tamzrod/rtk-status/internal/survey"
)

// Options configures a Server.
type Options struct {
	Listen       string
	AllowOrigins []string

	// DeviceName is echoed in the status document.
	DeviceName string

	// FastBlinkAccuracy is the survey accuracy below which the base LED
	// blinks fast.
	FastBlinkAccuracy float64
}

// Server is the HTTP surface of the status context.
type Server struct {
	opts   Options
	dev    *status.Device
	survey *survey.Controller
	log    *slog.Logger
	now    func() time.Time

	Router *gin.Engine
}

// NewServer builds the router. ctrl may be nil on rover-only builds; the
// base routes then answer 409.
func NewServer(opts Options, dev *status.Device, ctrl *survey.Controller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsCfg := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.AllowOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsCfg))
	router.Use(gin.Recovery())

	s := &Server{
		opts:   opts,
		dev:    dev,
		survey: ctrl,
		log:    log.With("component", "api"),
		now:    time.Now,
		Router: router,
	}

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/status", s.getStatus)
		apiRoutes.POST("/mode", s.setMode)
		apiRoutes.POST("/link", s.setLink)
		apiRoutes.POST("/peripheral", s.setPeripheral)
		apiRoutes.POST("/base/fault", s.baseFault)
		apiRoutes.POST("/base/start", s.baseStart)
		apiRoutes.POST("/base/stop", s.baseStop)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// Run serves until ctx is cancelled. The display peripheral is online while
// the server is listening.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Listen,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	s.dev.SetAvailable(status.PeripheralDisplay, true)
	defer s.dev.SetAvailable(status.PeripheralDisplay, false)

	s.log.Info("listening", "addr", s.opts.Listen)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}
	return err
}
