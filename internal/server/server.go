package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dan-burt/padelbook1/internal/booking"
	"github.com/dan-burt/padelbook1/internal/config"
	"github.com/dan-burt/padelbook1/internal/court"
	"github.com/dan-burt/padelbook1/internal/player"
	"github.com/dan-burt/padelbook1/internal/slot"
)

// Handlers groups the domain handlers mounted on the router.
type Handlers struct {
	Bookings *booking.Handler
	Players  *player.Handler
	Courts   *court.Handler
}

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(cfg *config.Config, h Handlers) *Server {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
	)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	routes := router.Group("/")
	routes.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		routes.GET("/slots", slot.ListSlots)
		routes.GET("/courts", h.Courts.ListCourts)
		routes.GET("/players", h.Players.ListPlayers)

		routes.POST("/fees/quote", h.Bookings.Quote)

		routes.GET("/days/:date", h.Bookings.GetDay)
		routes.PUT("/days/:date", h.Bookings.SaveDay)
		routes.DELETE("/days/:date", h.Bookings.DeleteDay)
		routes.DELETE("/days/:date/players/:playerID", h.Bookings.RemovePlayer)
		routes.POST("/days/:date/reminders", h.Bookings.SendReminders)

		routes.GET("/calendar/:year/:month", h.Bookings.Calendar)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
