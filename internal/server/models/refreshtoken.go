package models

import "time"

// RefreshToken is the server-side record backing an issued refresh token.
// Its ID doubles as the refreshTokenId claim embedded in the signed token.
// At most one live record exists per user.
type RefreshToken struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}
