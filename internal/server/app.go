// Package server wires configuration, storage, the profile cache and both
// transports together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gameauth/internal/logging"
	"github.com/dmitrijs2005/gameauth/internal/server/api"
	"github.com/dmitrijs2005/gameauth/internal/server/cache"
	"github.com/dmitrijs2005/gameauth/internal/server/config"
	"github.com/dmitrijs2005/gameauth/internal/server/httpserver"
	"github.com/dmitrijs2005/gameauth/internal/server/models"
	"github.com/dmitrijs2005/gameauth/internal/server/passwords"
	"github.com/dmitrijs2005/gameauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gameauth/internal/server/services"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/gameauth/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	redis      *goredis.Client
	dispatcher *api.Dispatcher
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(repomanager.DriverName, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher, err := passwords.New(c.PasswordHashScheme, c.BcryptCost)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{config: c, logger: logger, db: db}

	var profiles cache.Cache[models.ProfileView] = cache.Nop[models.ProfileView]{}
	if c.RedisAddr != "" {
		app.redis = goredis.NewClient(&goredis.Options{Addr: c.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx, "redis unreachable, profile cache will miss", "address", c.RedisAddr, "error", err)
		}
		profiles = cache.NewViewCache[models.ProfileView](app.redis, c.ProfileCacheTTL, logger)
	}

	accounts := services.NewAccountService(db, rm, hasher, profiles)
	app.dispatcher = api.NewDispatcher(accounts, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	gin.SetMode(gin.ReleaseMode)
	h := httpserver.NewHandler(app.dispatcher)
	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.AllowOrigin, app.logger, h)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.dispatcher)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both transports until ctx is cancelled, a signal arrives or
// one of the servers fails, then releases the store and cache clients.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
