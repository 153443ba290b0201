// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/easygoapi/easygo/internal/dbx"
	"github.com/easygoapi/easygo/internal/server/repositories/bookings"
	"github.com/easygoapi/easygo/internal/server/repositories/refreshtokens"
	"github.com/easygoapi/easygo/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX (either *sql.DB or a
// transaction handle) and exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
