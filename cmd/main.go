package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/varunpaulreddy/JEDT/internal/handlers"
	"github.com/varunpaulreddy/JEDT/internal/logger"
	"github.com/varunpaulreddy/JEDT/internal/natsclient"
	"github.com/varunpaulreddy/JEDT/internal/observability"
	"github.com/varunpaulreddy/JEDT/internal/registry"
	"github.com/varunpaulreddy/JEDT/internal/repository"
	"github.com/varunpaulreddy/JEDT/internal/repository/db"
	"github.com/varunpaulreddy/JEDT/internal/server"
	"github.com/varunpaulreddy/JEDT/internal/service"
)

const (
	defaultMonitorTick = 30 * time.Second
	defaultTokenTTL    = time.Hour
	seedTimeout        = 10 * time.Second
)

func main() {
	// load config.yml before the logger so the configured level applies
	cfgErr := loadConfig()

	log := logger.Get(logLevel())
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// seed the fleet catalog on first run and build the in-memory registry
	repos := repository.NewRepository(sqlDB)
	reg, err := loadFleet(repos, log)
	if err != nil {
		log.Fatalw("failed to load fleet catalog", "err", err)
	}

	metrics := observability.New()
	metrics.FleetEngines.Set(float64(reg.Len()))

	// optional NATS alert fan-out
	var alerts service.AlertPublisher
	if url := viper.GetString("nats.url"); url != "" {
		pub, perr := natsclient.NewPublisher(url, log.Named("nats"))
		if perr != nil {
			log.Warnw("nats connect failed; fleet alerts disabled", "err", perr)
		} else {
			alerts = pub
			defer pub.Close()
		}
	}

	// wire dependencies
	services := service.NewService(reg, repos, service.Config{
		Metrics:    metrics,
		Alerts:     alerts,
		Log:        log,
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   tokenTTL(),
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start fleet monitor (via composed service)
	go services.Monitor.Run(ctx, monitorTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func logLevel() string {
	if lvl := viper.GetString("log.level"); lvl != "" {
		return lvl
	}
	return logger.InfoLevel
}

func monitorTick() time.Duration {
	if sec := viper.GetInt("monitor.tick_sec"); sec > 0 {
		return time.Duration(sec) * time.Second
	}
	return defaultMonitorTick
}

func tokenTTL() time.Duration {
	if min := viper.GetInt("auth.token_ttl_min"); min > 0 {
		return time.Duration(min) * time.Minute
	}
	return defaultTokenTTL
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "jedt.db")
		dbPath = "jedt.db"
	}
	return db.InitDB(dbPath)
}

// loadFleet seeds the engines table from the built-in catalog when empty, then
// builds the immutable in-memory registry every generator reads from.
func loadFleet(repos *repository.Repository, log *logger.Logger) (*registry.Registry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	n, err := repos.Fleet.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		catalog := registry.DefaultCatalog()
		if err := repos.Fleet.Seed(ctx, catalog); err != nil {
			return nil, err
		}
		log.Infow("seeded fleet catalog", "engines", len(catalog))
	}

	records, err := repos.Fleet.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return registry.New(records)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
