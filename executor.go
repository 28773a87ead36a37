package router

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Config fixes the identities a Router needs beyond its collaborators.
type Config struct {
	// Self is the engine's own address: the custodian of purchased NFTs
	// between settlement and handoff.
	Self common.Address

	// WrappedNative is the only address allowed to push native value
	// into the engine (see Receive).
	WrappedNative common.Address
}

func (c Config) validate() error {
	if c.Self == (common.Address{}) {
		return fmt.Errorf("%w: Self", ErrMissingAddress)
	}
	if c.WrappedNative == (common.Address{}) {
		return fmt.Errorf("%w: WrappedNative", ErrMissingAddress)
	}
	return nil
}

// batchContext carries per-batch facts handlers need.
type batchContext struct {
	caller common.Address
}

// Router executes batched command sequences against a fixed set of
// external collaborators. A Router is safe to share, but batches do not
// overlap: a second Execute while one is running fails with
// ErrReentrantExecution, including collaborator callbacks re-entering
// the same Router.
type Router struct {
	cfg      Config
	services Services
	log      log.Logger
	now      func() time.Time
	tx       Transactor
	running  atomic.Bool
}

// New creates a Router with the given options.
func New(cfg Config, services Services, opts ...RouterOption) (*Router, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := services.validate(); err != nil {
		return nil, err
	}

	r := &Router{
		cfg:      cfg,
		services: services,
		log:      log.NewLogger(log.DiscardHandler()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Execute runs one batch: commands is a packed sequence of 8-byte
// command words, slots the initial store. On success the mutated store
// is returned. On any failure the batch aborts as a unit - the store is
// restored to its initial contents, the Transactor (if any) is rolled
// back, and the error identifies the failing command by index.
//
// The deadline is checked exactly once, before the first command; there
// is no mid-batch cancellation.
func (r *Router) Execute(caller common.Address, deadline time.Time, commands []byte, slots State) (State, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrReentrantExecution
	}
	defer r.running.Store(false)

	if r.now().After(deadline) {
		return nil, ErrDeadlineExpired
	}

	cmds, err := DecodeCommands(commands)
	if err != nil {
		return nil, err
	}

	if r.tx != nil {
		if err := r.tx.Begin(); err != nil {
			return nil, err
		}
	}

	snap := slots.Snapshot()
	ctx := &batchContext{caller: caller}
	rv := resolver{slots: slots}

	for i, cmd := range cmds {
		op := operations[cmd.Tag()]
		if !op.valid {
			return nil, r.abort(slots, snap, &ExecutionError{
				CommandIndex: i,
				Command:      cmd.Tag(),
				Err:          ErrUnknownCommand,
			})
		}

		ops, err := rv.resolve(cmd, op.arity)
		if err != nil {
			return nil, r.abort(slots, snap, &ExecutionError{
				CommandIndex: i,
				Command:      cmd.Tag(),
				Err:          err,
			})
		}

		output, response, err := op.execute(r, ctx, ops)
		if err != nil {
			return nil, r.abort(slots, snap, &ExecutionError{
				CommandIndex: i,
				Command:      cmd.Tag(),
				Response:     response,
				Err:          err,
			})
		}
		if output != nil {
			rv.record(output)
		}

		r.log.Trace("command executed", "index", i, "op", op.name, "output", len(output) > 0)
	}

	if r.tx != nil {
		if err := r.tx.Commit(); err != nil {
			return nil, r.abort(slots, snap, err)
		}
	}

	r.log.Debug("batch completed", "commands", len(cmds), "slots", slots.Len())
	return slots, nil
}

// abort restores the slot store, rolls back collaborator effects, and
// passes the batch error through.
func (r *Router) abort(slots, snap State, err error) error {
	slots.Restore(snap)
	if r.tx != nil {
		if rbErr := r.tx.Rollback(); rbErr != nil {
			r.log.Error("rollback failed", "err", rbErr)
		}
	}
	r.log.Debug("batch aborted", "err", err)
	return err
}

// Receive is the engine's value-acceptance policy: incoming native
// value is rejected unless it originates from the wrapped-native
// collaborator, regardless of amount.
func (r *Router) Receive(from common.Address, amount *uint256.Int) error {
	if from != r.cfg.WrappedNative {
		return ErrUnsolicitedValue
	}
	r.log.Trace("value received", "from", from, "amount", amount)
	return nil
}
