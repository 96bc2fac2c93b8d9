package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type sessionKey struct{}

// WithSession returns a context carrying the session every repository call
// made with it should use.
func WithSession(ctx context.Context, session Querier) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (Querier, bool) {
	session, ok := ctx.Value(sessionKey{}).(Querier)
	return session, ok && session != nil
}

// Session returns the request's session, or fallback when the context has none.
func Session(ctx context.Context, fallback Querier) Querier {
	if session, ok := SessionFromContext(ctx); ok {
		return session
	}
	return fallback
}

// WithCommit runs fn inside a transaction on session and commits it. The
// transaction is rolled back if fn fails.
func WithCommit(ctx context.Context, session Querier, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, session, fn)
}
