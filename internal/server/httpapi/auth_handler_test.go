package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/easygoapi/easygo/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendVerificationCode_OK(t *testing.T) {
	s := newTestServer(t, &fakeAuth{sendMsg: "Verification code has been sent"}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/send-verification-code",
		`{"mobile":"+971501234567"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Verification code has been sent", body.Message)
}

func TestSendVerificationCode_BadMobileRejectedBeforeService(t *testing.T) {
	s := newTestServer(t, &fakeAuth{sendErr: common.ErrorServiceUnavailable}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/send-verification-code",
		`{"mobile":"12345"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendVerificationCode_MalformedBody(t *testing.T) {
	s := newTestServer(t, &fakeAuth{}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/send-verification-code", `{`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendVerificationCode_ProviderDown(t *testing.T) {
	s := newTestServer(t, &fakeAuth{sendErr: common.ErrorServiceUnavailable}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/send-verification-code",
		`{"mobile":"+971501234567"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Message)
}

func TestVerifyCode_ReturnsPair(t *testing.T) {
	pair := &services.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	s := newTestServer(t, &fakeAuth{verifyOut: pair}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/verify-code",
		`{"mobile":"+971501234567","code":"123456"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body tokenPairResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.AccessToken)
	require.NotNil(t, body.RefreshToken)
	assert.Equal(t, "access", *body.AccessToken)
	assert.Equal(t, "refresh", *body.RefreshToken)
}

func TestVerifyCode_UnknownMobileRendersNullTokens(t *testing.T) {
	s := newTestServer(t, &fakeAuth{verifyOut: nil}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/verify-code",
		`{"mobile":"+971501234567","code":"123456"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	v, present := body["accessToken"]
	assert.True(t, present)
	assert.Nil(t, v)
	v, present = body["refreshToken"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	s := newTestServer(t, &fakeAuth{
		verifyErr: fmt.Errorf("%w: cannot verify, check if given mobile no and code are valid", common.ErrorInvalidRequest),
	}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/verify-code",
		`{"mobile":"+971501234567","code":"000000"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cannot verify, check if given mobile no and code are valid", body.Message)
}

func TestVerifyCode_ShortCodeRejected(t *testing.T) {
	s := newTestServer(t, &fakeAuth{}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/verify-code",
		`{"mobile":"+971501234567","code":"123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_Created(t *testing.T) {
	user := &models.User{ID: "u1", Name: "Test Name", Email: "test@example.com", Mobile: "+971501234567"}
	s := newTestServer(t, &fakeAuth{signupOut: user}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/signup",
		`{"name":"Test Name","email":"test@example.com","mobile":"+971501234567"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.ID)
	assert.Equal(t, "test@example.com", body.Email)
}

func TestSignup_Conflict(t *testing.T) {
	s := newTestServer(t, &fakeAuth{
		signupErr: fmt.Errorf("%w: email or mobile no already exists", common.ErrorConflict),
	}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/signup",
		`{"name":"Test Name","email":"test@example.com","mobile":"+971501234567"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "email or mobile no already exists", body.Message)
}

func TestSignup_InvalidEmail(t *testing.T) {
	s := newTestServer(t, &fakeAuth{}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/signup",
		`{"name":"Test Name","email":"nope","mobile":"+971501234567"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshTokens_OK(t *testing.T) {
	pair := &services.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	s := newTestServer(t, &fakeAuth{refreshOut: pair}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/refresh-tokens",
		`{"refreshToken":"old"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body tokenPairResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.AccessToken)
	assert.Equal(t, "new-access", *body.AccessToken)
}

func TestRefreshTokens_Invalid(t *testing.T) {
	s := newTestServer(t, &fakeAuth{refreshErr: common.ErrorUnauthorized}, &fakeBookings{})

	rec := doJSON(t, s.Handler(), http.MethodPost, "/auth/refresh-tokens",
		`{"refreshToken":"stale"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body.Message)
}
