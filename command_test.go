package router

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeCommands(t *testing.T) {
	t.Run("decodes exactly one command per 8 bytes", func(t *testing.T) {
		raw := make([]byte, 3*CommandSize)
		raw[0] = byte(Transfer)
		raw[8] = byte(Sweep)
		raw[16] = byte(WrapNative)

		cmds, err := DecodeCommands(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(cmds) != 3 {
			t.Fatalf("Expected 3 commands, got %d", len(cmds))
		}

		want := []CommandTag{Transfer, Sweep, WrapNative}
		for i, cmd := range cmds {
			if cmd.Tag() != want[i] {
				t.Errorf("Command %d: expected tag %s, got %s", i, want[i], cmd.Tag())
			}
		}
	})

	t.Run("extracts descriptor bytes in order", func(t *testing.T) {
		raw := []byte{byte(Transfer), 1, 2, 3, 4, 5, 6, 7}

		cmds, err := DecodeCommands(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		for i := 0; i < MaxOperands; i++ {
			if got := cmds[0].Operand(i); got != byte(i+1) {
				t.Errorf("Operand %d: expected %d, got %d", i, i+1, got)
			}
		}
	})

	t.Run("masks the tag from the low nibble only", func(t *testing.T) {
		raw := make([]byte, CommandSize)
		raw[0] = 0xa0 | byte(Transfer) // reserved high nibble set

		cmds, err := DecodeCommands(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cmds[0].Tag() != Transfer {
			t.Errorf("Expected tag %s, got %s", Transfer, cmds[0].Tag())
		}
		if cmds[0].Flags() != 0xa0|byte(Transfer) {
			t.Errorf("Expected raw flags preserved, got %#x", cmds[0].Flags())
		}
	})

	t.Run("rejects lengths that are not a positive multiple of 8", func(t *testing.T) {
		for _, n := range []int{1, 7, 9, 15, 23} {
			if _, err := DecodeCommands(make([]byte, n)); !errors.Is(err, ErrTruncatedCommands) {
				t.Errorf("Length %d: expected ErrTruncatedCommands, got %v", n, err)
			}
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		if _, err := DecodeCommands(nil); !errors.Is(err, ErrTruncatedCommands) {
			t.Errorf("Expected ErrTruncatedCommands, got %v", err)
		}
	})

	t.Run("does not validate tags", func(t *testing.T) {
		raw := make([]byte, CommandSize)
		raw[0] = 0x0f // undefined tag, rejected at dispatch instead

		cmds, err := DecodeCommands(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cmds[0].Tag() != 0x0f {
			t.Errorf("Expected tag 0x0f, got %#x", byte(cmds[0].Tag()))
		}
	})
}

func TestEncodeCommand(t *testing.T) {
	t.Run("packs tag and operands", func(t *testing.T) {
		word, err := EncodeCommand(Transfer, 0, 1, 2)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		want := [CommandSize]byte{byte(Transfer), 0, 1, 2, 0, 0, 0, 0}
		if word != want {
			t.Errorf("Expected %v, got %v", want, word)
		}
	})

	t.Run("rejects undefined tags", func(t *testing.T) {
		if _, err := EncodeCommand(CommandTag(0x0f)); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Expected ErrUnknownCommand, got %v", err)
		}
	})

	t.Run("enforces arity", func(t *testing.T) {
		if _, err := EncodeCommand(Transfer, 0, 1); !errors.Is(err, ErrOperandCount) {
			t.Errorf("Expected ErrOperandCount for too few operands, got %v", err)
		}
		if _, err := EncodeCommand(Permit, 0, 1); !errors.Is(err, ErrOperandCount) {
			t.Errorf("Expected ErrOperandCount for too many operands, got %v", err)
		}
	})
}

func TestProgram(t *testing.T) {
	t.Run("accumulates command words", func(t *testing.T) {
		var p Program
		p.MustAdd(Permit, 0).MustAdd(Transfer, 1, 2, 3)

		if p.Len() != 2 {
			t.Fatalf("Expected 2 commands, got %d", p.Len())
		}

		want := []byte{
			byte(Permit), 0, 0, 0, 0, 0, 0, 0,
			byte(Transfer), 1, 2, 3, 0, 0, 0, 0,
		}
		if !bytes.Equal(p.Bytes(), want) {
			t.Errorf("Expected %v, got %v", want, p.Bytes())
		}
	})

	t.Run("retains the first error", func(t *testing.T) {
		var p Program
		if err := p.Add(Transfer, 0); !errors.Is(err, ErrOperandCount) {
			t.Fatalf("Expected ErrOperandCount, got %v", err)
		}
		if err := p.Add(Permit, 0); !errors.Is(err, ErrOperandCount) {
			t.Errorf("Expected retained error on later Add, got %v", err)
		}
		if !errors.Is(p.Err(), ErrOperandCount) {
			t.Errorf("Expected Err to report the first error, got %v", p.Err())
		}
	})

	t.Run("MustAdd panics on error", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected MustAdd to panic")
			}
		}()
		var p Program
		p.MustAdd(Transfer, 0)
	})
}

func TestCommandTagString(t *testing.T) {
	cases := map[CommandTag]string{
		Permit:        "PERMIT",
		V2SwapExactIn: "V2_SWAP_EXACT_IN",
		ListingBuy721: "LISTING_BUY_721",
		0x0f:          "UNKNOWN(0x0f)",
		0x20:          "UNKNOWN(0x20)",
	}

	for tag, want := range cases {
		if got := tag.String(); got != want {
			t.Errorf("Tag %#x: expected %q, got %q", byte(tag), want, got)
		}
	}
}
