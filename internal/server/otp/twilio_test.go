package otp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *TwilioVerify {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewTwilioVerify("ACxxx", "token", "VAxxx")
	p.baseURL = srv.URL
	p.client = srv.Client()
	return p
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestSendCode_Success(t *testing.T) {
	var gotPath, gotTo, gotChannel string
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		gotChannel = r.PostFormValue("Channel")
		writeJSON(t, w, http.StatusCreated, map[string]string{"status": "pending"})
	})

	err := p.SendCode(context.Background(), "+971501234567")
	require.NoError(t, err)
	assert.Equal(t, "/Services/VAxxx/Verifications", gotPath)
	assert.Equal(t, "+971501234567", gotTo)
	assert.Equal(t, "sms", gotChannel)
}

func TestSendCode_InvalidNumber(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{"code": 60200, "message": "Invalid parameter `To`"})
	})

	err := p.SendCode(context.Background(), "invalid")
	assert.True(t, errors.Is(err, ErrInvalidNumber))
}

func TestSendCode_ProviderFailure(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, map[string]any{"code": 20500, "message": "internal"})
	})

	err := p.SendCode(context.Background(), "+971501234567")
	assert.True(t, errors.Is(err, ErrProvider))
}

func TestSendCode_NetworkError(t *testing.T) {
	p := NewTwilioVerify("ACxxx", "token", "VAxxx")
	p.baseURL = "http://127.0.0.1:1" // nothing listens here

	err := p.SendCode(context.Background(), "+971501234567")
	assert.True(t, errors.Is(err, ErrProvider))
}

func TestCheckCode_Approved(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/Services/VAxxx/VerificationCheck", r.URL.Path)
		assert.Equal(t, "123456", r.PostFormValue("Code"))
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "approved"})
	})

	ok, err := p.CheckCode(context.Background(), "+971501234567", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckCode_Pending_IsFalseNotError(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "pending"})
	})

	ok, err := p.CheckCode(context.Background(), "+971501234567", "000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckCode_NoPendingVerification_IsFalseNotError(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{"code": 20404, "message": "not found"})
	})

	ok, err := p.CheckCode(context.Background(), "+971501234567", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckCode_ProviderFailure(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"code": 20500, "message": "internal"})
	})

	_, err := p.CheckCode(context.Background(), "+971501234567", "123456")
	assert.True(t, errors.Is(err, ErrProvider))
}
