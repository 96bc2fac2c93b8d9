package middleware

import (
	"github.com/deppfellow/patient-records/internal/database"
	"github.com/deppfellow/patient-records/internal/errs"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/labstack/echo/v4"
)

// SessionMiddleware gives every API request its own pooled connection.
type SessionMiddleware struct {
	server *server.Server
}

func NewSessionMiddleware(s *server.Server) *SessionMiddleware {
	return &SessionMiddleware{server: s}
}

// Attach acquires a connection before the wrapped handler runs and returns it
// to the pool on every exit path, including errors and panics. An exhausted or
// unreachable pool answers 503.
func (sm *SessionMiddleware) Attach() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			conn, err := sm.server.DB.Pool.Acquire(ctx)
			if err != nil {
				GetLogger(c).Error().Err(err).Msg("failed to acquire database session")
				return errs.NewServiceUnavailableError("Database unavailable")
			}
			defer conn.Release()

			c.SetRequest(c.Request().WithContext(database.WithSession(ctx, conn)))

			return next(c)
		}
	}
}
