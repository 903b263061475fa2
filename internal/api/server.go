// Package api provides the HTTP REST API for the telemetry dashboard backend.
//
// It exposes account registration/login, the device and sensor directory,
// latest sensor readings, and the setpoint command log to the dashboard
// frontend.
//
// The server follows the same lifecycle pattern as the infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines. Handlers share no mutable state; the store is the only shared
// resource.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/telemetry-core/internal/account"
	"github.com/nerrad567/telemetry-core/internal/infrastructure/config"
	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
	"github.com/nerrad567/telemetry-core/internal/infrastructure/logging"
	"github.com/nerrad567/telemetry-core/internal/telemetry"
)

// shutdownTimeout is the maximum time to wait for in-flight requests to
// complete during shutdown.
const shutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	Logger    *logging.Logger
	DB        *database.DB
	Accounts  *account.Service
	Devices   telemetry.DeviceRepository
	Sensors   telemetry.SensorRepository
	Readings  telemetry.ReadingRepository
	Setpoints telemetry.SetpointLog
	Version   string
}

// Server is the HTTP API server for the telemetry backend.
type Server struct {
	cfg       config.APIConfig
	logger    *logging.Logger
	db        *database.DB
	accounts  *account.Service
	devices   telemetry.DeviceRepository
	sensors   telemetry.SensorRepository
	readings  telemetry.ReadingRepository
	setpoints telemetry.SetpointLog
	version   string
	server    *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Accounts == nil {
		return nil, fmt.Errorf("account service is required")
	}
	if deps.Devices == nil || deps.Sensors == nil || deps.Readings == nil || deps.Setpoints == nil {
		return nil, fmt.Errorf("telemetry repositories are required")
	}

	return &Server{
		cfg:       deps.Config,
		logger:    deps.Logger.With("component", "api"),
		db:        deps.DB,
		accounts:  deps.Accounts,
		devices:   deps.Devices,
		sensors:   deps.Sensors,
		readings:  deps.Readings,
		setpoints: deps.Setpoints,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       s.readTimeout(),
		ReadHeaderTimeout: s.readTimeout(),
		WriteTimeout:      s.writeTimeout(),
		IdleTimeout:       s.idleTimeout(),
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server, waiting up to ten seconds for
// in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

func (s *Server) readTimeout() time.Duration {
	return time.Duration(s.cfg.Timeouts.Read) * time.Second
}

func (s *Server) writeTimeout() time.Duration {
	return time.Duration(s.cfg.Timeouts.Write) * time.Second
}

func (s *Server) idleTimeout() time.Duration {
	return time.Duration(s.cfg.Timeouts.Idle) * time.Second
}
