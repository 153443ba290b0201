// Package services contains server-side business logic. This file implements
// AuthService, which orchestrates OTP verification, signup, and the issuing
// and rotation of JWT token pairs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/easygoapi/easygo/internal/common"
	"github.com/easygoapi/easygo/internal/dbx"
	"github.com/easygoapi/easygo/internal/server/auth"
	"github.com/easygoapi/easygo/internal/server/config"
	"github.com/easygoapi/easygo/internal/server/models"
	"github.com/easygoapi/easygo/internal/server/otp"
	"github.com/easygoapi/easygo/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

// VerificationSentMessage is the confirmation returned by SendVerificationCode.
const VerificationSentMessage = "Verification code has been sent"

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides the authentication flows:
// - SendVerificationCode: deliver an OTP to a mobile number
// - VerifyCode: check an OTP and mint tokens for a registered user
// - Signup: create an identity record
// - RefreshTokens: rotate a refresh token and mint a new pair
//
// The service holds no per-request state; identities and refresh-token
// records live in the repositories, and the OTP state lives with the
// provider. It is the sole place that classifies low-level failures into
// the caller-facing error kinds in the common package.
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	provider                     otp.Provider
	issuer                       *auth.Issuer
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService from its collaborators and config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, p otp.Provider, issuer *auth.Issuer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		provider:                     p,
		issuer:                       issuer,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration(),
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration(),
	}
}

// SendVerificationCode asks the OTP provider to deliver a code to mobile.
// A provider rejection of the number itself is caller-fixable; any other
// provider failure is reported without upstream detail.
func (s *AuthService) SendVerificationCode(ctx context.Context, mobile string) (string, error) {
	if err := s.provider.SendCode(ctx, mobile); err != nil {
		if errors.Is(err, otp.ErrInvalidNumber) {
			return "", fmt.Errorf("%w: cannot send OTP, check if given mobile no is valid", common.ErrorInvalidRequest)
		}
		return "", common.ErrorServiceUnavailable
	}
	return VerificationSentMessage, nil
}

// VerifyCode checks the submitted code against the provider and, for a
// registered mobile, mints a token pair. For an unknown mobile it returns
// (nil, nil): a success that signals "no account yet" so the caller can
// proceed to signup.
func (s *AuthService) VerifyCode(ctx context.Context, mobile string, code string) (*TokenPair, error) {
	ok, err := s.provider.CheckCode(ctx, mobile, code)
	if err != nil {
		return nil, common.ErrorServiceUnavailable
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot verify, check if given mobile no and code are valid", common.ErrorInvalidRequest)
	}

	user, err := s.repomanager.Users(s.db).GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, common.ErrorServiceUnavailable
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, common.ErrorServiceUnavailable
	}
	return pair, nil
}

// Signup creates a new identity. It never mints tokens; the caller must
// verify a code afterwards to authenticate.
func (s *AuthService) Signup(ctx context.Context, name, email, mobile string) (*models.User, error) {
	user := &models.User{Name: name, Email: email, Mobile: mobile}
	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, fmt.Errorf("%w: email or mobile no already exists", common.ErrorConflict)
		case errors.Is(err, common.ErrorInvalidData):
			return nil, fmt.Errorf("%w: signup data rejected by store", common.ErrorInvalidRequest)
		default:
			return nil, common.ErrorServiceUnavailable
		}
	}
	return created, nil
}

// RefreshTokens validates a refresh token, cross-checks its server-side
// record, rotates the record transactionally, and mints a fresh pair.
// Every failure path reports the same generic unauthorized error so the
// response never reveals whether an account or record exists.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.issuer.Validate(refreshToken)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, common.ErrorUnauthorized
	}
	tokenID, ok := auth.StringClaim(claims, auth.ClaimRefreshTokenID)
	if !ok || tokenID == "" {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, subject)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	if _, err := s.repomanager.RefreshTokens(s.db).Find(ctx, tokenID, user.ID); err != nil {
		return nil, common.ErrorUnauthorized
	}

	// Invalidate before reissue: the old record must be gone by the time
	// the new pair exists, and both steps must land together.
	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, tokenID); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, common.ErrorUnauthorized
	}
	return pair, nil
}

// generateTokenPair upserts the user's refresh-token record and mints both
// tokens. The upsert runs first because the refresh token embeds the record
// id; the two signing operations have no ordering dependency and run
// concurrently.
func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User, db dbx.DBTX) (*TokenPair, error) {
	if user == nil {
		return nil, nil
	}

	tokenID, err := s.repomanager.RefreshTokens(db).Upsert(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	var g errgroup.Group
	g.Go(func() error {
		token, err := s.issuer.Mint(user.ID, s.accessTokenValidityDuration, map[string]any{auth.ClaimEmail: user.Email})
		if err != nil {
			return err
		}
		pair.AccessToken = token
		return nil
	})
	g.Go(func() error {
		token, err := s.issuer.Mint(user.ID, s.refreshTokenValidityDuration, map[string]any{auth.ClaimRefreshTokenID: tokenID})
		if err != nil {
			return err
		}
		pair.RefreshToken = token
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &pair, nil
}
