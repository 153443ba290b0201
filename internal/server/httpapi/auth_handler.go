package httpapi

import (
	"net/http"

	"github.com/easygoapi/easygo/internal/server/validation"
)

type sendVerificationCodeRequest struct {
	Mobile string `json:"mobile"`
}

type verifyCodeRequest struct {
	Mobile string `json:"mobile"`
	Code   string `json:"code"`
}

type signupRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type refreshTokensRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// tokenPairResponse renders both tokens as null when no account exists for
// the verified mobile number.
type tokenPairResponse struct {
	AccessToken  *string `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
}

func (s *Server) handleSendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req sendVerificationCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validation.Mobile(req.Mobile); err != nil {
		s.writeError(w, r, err)
		return
	}

	msg, err := s.auth.SendVerificationCode(r.Context(), req.Mobile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validation.Mobile(req.Mobile); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validation.Code(req.Code); err != nil {
		s.writeError(w, r, err)
		return
	}

	pair, err := s.auth.VerifyCode(r.Context(), req.Mobile, req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp tokenPairResponse
	if pair != nil {
		resp.AccessToken = &pair.AccessToken
		resp.RefreshToken = &pair.RefreshToken
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validation.Signup(req.Name, req.Email, req.Mobile); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Mobile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleRefreshTokens(w http.ResponseWriter, r *http.Request) {
	var req refreshTokensRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	pair, err := s.auth.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  &pair.AccessToken,
		RefreshToken: &pair.RefreshToken,
	})
}
