package router

import (
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithLogger sets the structured logger for per-command tracing.
// The default logger discards everything.
func WithLogger(l log.Logger) RouterOption {
	return func(r *Router) {
		r.log = l
	}
}

// WithClock overrides the time source used for the deadline check.
// Intended for tests; the default is time.Now.
func WithClock(now func() time.Time) RouterOption {
	return func(r *Router) {
		r.now = now
	}
}

// WithTransactor brackets each batch with Begin/Commit/Rollback so
// collaborator side effects are undone when the batch aborts. Without
// one, the engine still rolls back its slot store but assumes the
// caller's execution boundary makes collaborator effects all-or-nothing.
func WithTransactor(tx Transactor) RouterOption {
	return func(r *Router) {
		r.tx = tx
	}
}
