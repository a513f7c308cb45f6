package internal

import (
	"context"
	"donosync/internal/controllers"
	"donosync/internal/decoder"
	"donosync/internal/providers"
	"donosync/internal/services"
	"donosync/internal/spotlight"
	"donosync/internal/stream/interfaces"
	"donosync/internal/structures"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server

	conf         *structures.Config
	logger       providers.Logger
	connection   interfaces.ConnectionInterface
	session      services.SessionServiceInterface
	cell         *spotlight.Cell
	frameDecoder *decoder.FrameDecoder
}

func NewApp(apiController *controllers.ApiController, healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, connection interfaces.ConnectionInterface, session services.SessionServiceInterface, cell *spotlight.Cell, frameDecoder *decoder.FrameDecoder) (*App, error) {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, router, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:         conf,
		logger:       logger,
		connection:   connection,
		session:      session,
		cell:         cell,
		frameDecoder: frameDecoder,
	}, nil
}

// Run serves until SIGINT or SIGTERM and then shuts everything down.
func (app *App) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	return app.serve(stop)
}

func (app *App) serve(stop <-chan os.Signal) error {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if err := app.connection.Connect(app.conf.Stream.Address, app.session.HandleFrame); err != nil {
		return fmt.Errorf("connect stream: %w", err)
	}

	streamDone := app.connection.Done()
	for {
		select {
		case <-stop:
			app.logger.Infof(providers.TypeApp, "Shutdown signal received")
			return app.shutdown()
		case err := <-serverErr:
			app.connection.Close()
			return fmt.Errorf("server error: %w", err)
		case <-streamDone:
			// the last message and celebration stay readable
			app.logger.Errorf(providers.TypeApp, "Stream closed for good: %s", app.connection.State().Err)
			streamDone = nil
		}
	}
}

func (app *App) shutdown() error {
	app.connection.Close()
	app.cell.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := app.WebServer.Shutdown(ctx)
	app.frameDecoder.Close()
	if err != nil {
		return err
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	app.logger.Close()
	return nil
}
