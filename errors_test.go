package router

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutionError(t *testing.T) {
	t.Run("formats index, command, and cause", func(t *testing.T) {
		err := &ExecutionError{CommandIndex: 3, Command: Sweep, Err: ErrSlotOutOfRange}

		msg := err.Error()
		if !strings.Contains(msg, "command 3") {
			t.Errorf("Expected command index in message, got %q", msg)
		}
		if !strings.Contains(msg, "SWEEP") {
			t.Errorf("Expected command mnemonic in message, got %q", msg)
		}
	})

	t.Run("includes the raw response when present", func(t *testing.T) {
		err := &ExecutionError{
			CommandIndex: 0,
			Command:      MarketOrder,
			Response:     []byte{0xde, 0xad},
			Err:          ErrSettlementRejected,
		}

		if !strings.Contains(err.Error(), "0xdead") {
			t.Errorf("Expected hex response in message, got %q", err.Error())
		}
	})

	t.Run("unwraps to the cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := &ExecutionError{CommandIndex: 1, Command: Permit, Err: cause}

		if !errors.Is(err, cause) {
			t.Error("Expected errors.Is to reach the cause")
		}
	})
}

func TestOperandError(t *testing.T) {
	err := &OperandError{Operand: 2, Err: ErrSlotEmpty}

	if !strings.Contains(err.Error(), "operand 2") {
		t.Errorf("Expected operand position in message, got %q", err.Error())
	}
	if !errors.Is(err, ErrSlotEmpty) {
		t.Error("Expected errors.Is to reach the sentinel")
	}
}

func TestNestedUnwrap(t *testing.T) {
	// The shape Execute produces for a resolution failure.
	err := &ExecutionError{
		CommandIndex: 4,
		Command:      Transfer,
		Err:          &OperandError{Operand: 1, Err: ErrSlotOutOfRange},
	}

	if !errors.Is(err, ErrSlotOutOfRange) {
		t.Error("Expected errors.Is to reach the sentinel through both wrappers")
	}

	var opErr *OperandError
	if !errors.As(err, &opErr) || opErr.Operand != 1 {
		t.Error("Expected errors.As to recover the OperandError")
	}
}

func TestPathError(t *testing.T) {
	err := &PathError{Tokens: 3, Fees: 1}

	if !strings.Contains(err.Error(), "3 tokens") || !strings.Contains(err.Error(), "1 fees") {
		t.Errorf("Expected counts in message, got %q", err.Error())
	}
}
