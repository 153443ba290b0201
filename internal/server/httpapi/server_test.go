package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/easygoapi/easygo/internal/logging"
	"github.com/easygoapi/easygo/internal/server/auth"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/easygoapi/easygo/internal/server/services"
	"github.com/stretchr/testify/require"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeAuth struct {
	sendMsg string
	sendErr error

	verifyOut *services.TokenPair
	verifyErr error

	signupOut *models.User
	signupErr error

	refreshOut *services.TokenPair
	refreshErr error
}

func (f *fakeAuth) SendVerificationCode(ctx context.Context, mobile string) (string, error) {
	return f.sendMsg, f.sendErr
}
func (f *fakeAuth) VerifyCode(ctx context.Context, mobile, code string) (*services.TokenPair, error) {
	return f.verifyOut, f.verifyErr
}
func (f *fakeAuth) Signup(ctx context.Context, name, email, mobile string) (*models.User, error) {
	return f.signupOut, f.signupErr
}
func (f *fakeAuth) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.refreshOut, f.refreshErr
}

type fakeBookings struct {
	createOut *models.Booking
	createErr error
	listOut   []*models.Booking
	listErr   error
	getOut    *models.Booking
	getErr    error
	updateOut *models.Booking
	updateErr error
	delErr    error

	lastOwner             string
	lastLimit, lastOffset int64
	lastPatch             *services.BookingPatch
}

func (f *fakeBookings) Create(ctx context.Context, b *models.Booking, userID string) (*models.Booking, error) {
	f.lastOwner = userID
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	b.UserID = userID
	return b, nil
}
func (f *fakeBookings) List(ctx context.Context, userID string, limit, offset int64) ([]*models.Booking, error) {
	f.lastOwner = userID
	f.lastLimit, f.lastOffset = limit, offset
	return f.listOut, f.listErr
}
func (f *fakeBookings) Get(ctx context.Context, id string) (*models.Booking, error) {
	return f.getOut, f.getErr
}
func (f *fakeBookings) Update(ctx context.Context, id string, patch *services.BookingPatch) (*models.Booking, error) {
	f.lastPatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}
func (f *fakeBookings) Delete(ctx context.Context, id string) error { return f.delErr }

// ---- helpers ----

func testIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer("test-secret", "easygo-api", "easygo")
	require.NoError(t, err)
	return issuer
}

func newTestServer(t *testing.T, fa *fakeAuth, fb *fakeBookings) *Server {
	t.Helper()
	s, err := NewServer(":0", nopLogger{}, fa, fb, testIssuer(t))
	require.NoError(t, err)
	return s
}

func bearerFor(t *testing.T, issuer *auth.Issuer, userID string) string {
	t.Helper()
	token, err := issuer.Mint(userID, time.Minute, nil)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, h http.Handler, method, target, body, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
