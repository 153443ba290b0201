// Package server initializes and runs the EasyGo application server.
// It wires configuration, logging, the database with its migrations, the
// OTP provider, the services, and the HTTP endpoint, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/easygoapi/easygo/internal/logging"
	"github.com/easygoapi/easygo/internal/server/auth"
	"github.com/easygoapi/easygo/internal/server/config"
	"github.com/easygoapi/easygo/internal/server/httpapi"
	"github.com/easygoapi/easygo/internal/server/otp"
	"github.com/easygoapi/easygo/internal/server/repositories/repomanager"
	"github.com/easygoapi/easygo/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	authService    *services.AuthService
	bookingService *services.BookingService
	issuer         *auth.Issuer
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTAudience, cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("issuer init error: %w", err)
	}

	provider := otp.NewTwilioVerify(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioServiceSID)

	as := services.NewAuthService(db, m, provider, issuer, cfg)
	bs := services.NewBookingService(db, m)

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		repomanager:    m,
		authService:    as,
		bookingService: bs,
		issuer:         issuer,
	}, nil
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

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.authService, app.bookingService, app.issuer)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	return nil
}
