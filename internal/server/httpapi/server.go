// Package httpapi exposes the EasyGo service over HTTP: JSON handlers for
// the auth flows and the bookings resource, the bearer-token middleware
// guarding protected routes, and the server lifecycle.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/easygoapi/easygo/internal/logging"
	"github.com/easygoapi/easygo/internal/server/auth"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/easygoapi/easygo/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

type authService interface {
	SendVerificationCode(ctx context.Context, mobile string) (string, error)
	VerifyCode(ctx context.Context, mobile string, code string) (*services.TokenPair, error)
	Signup(ctx context.Context, name, email, mobile string) (*models.User, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type bookingService interface {
	Create(ctx context.Context, booking *models.Booking, userID string) (*models.Booking, error)
	List(ctx context.Context, userID string, limit, offset int64) ([]*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, id string, patch *services.BookingPatch) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	address  string
	logger   logging.Logger
	auth     authService
	bookings bookingService
	issuer   *auth.Issuer
}

func NewServer(address string, l logging.Logger, as authService, bs bookingService, issuer *auth.Issuer) (*Server, error) {
	if issuer == nil {
		return nil, errors.New("httpapi: issuer is required")
	}
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		auth:     as,
		bookings: bs,
		issuer:   issuer,
	}, nil
}

// Handler builds the route table. Auth routes are open; everything under
// /bookings requires a valid bearer access token.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/auth/send-verification-code", s.handleSendVerificationCode).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-code", s.handleVerifyCode).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh-tokens", s.handleRefreshTokens).Methods(http.MethodPost)

	b := r.PathPrefix("/bookings").Subrouter()
	b.Use(s.authenticate)
	b.HandleFunc("", s.handleCreateBooking).Methods(http.MethodPost)
	b.HandleFunc("", s.handleListBookings).Methods(http.MethodGet)
	b.HandleFunc("/{id}", s.handleGetBooking).Methods(http.MethodGet)
	b.HandleFunc("/{id}", s.handleUpdateBooking).Methods(http.MethodPatch)
	b.HandleFunc("/{id}", s.handleDeleteBooking).Methods(http.MethodDelete)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
