package router

import "fmt"

// Command encoding constants.
const (
	// CommandSize is the width of one command word in bytes.
	CommandSize = 8

	// MaxOperands is the number of descriptor bytes in a command word.
	MaxOperands = 7

	// TagMask extracts the operation tag from the flags byte.
	TagMask = 0x0f

	// OutputSlot is the descriptor byte resolving an operand from the
	// most recent command output instead of the slot store.
	OutputSlot = 0xfe

	// MaxSlotIndex is the largest direct slot index a descriptor byte
	// can carry.
	MaxSlotIndex = 0xfd
)

// CommandTag identifies the operation a command word dispatches to.
// Tags occupy the low nibble of the flags byte; the high nibble is
// reserved.
type CommandTag uint8

const (
	// Permit consumes a signed transfer authorization.
	Permit CommandTag = 0x00

	// Transfer pays a token amount to a recipient.
	Transfer CommandTag = 0x01

	// V3SwapExactIn swaps a fixed input amount on the v3 engine.
	V3SwapExactIn CommandTag = 0x02

	// V3SwapExactOut swaps for a fixed output amount on the v3 engine.
	V3SwapExactOut CommandTag = 0x03

	// V2SwapExactIn swaps a fixed input amount on the v2 engine.
	V2SwapExactIn CommandTag = 0x04

	// V2SwapExactOut swaps for a fixed output amount on the v2 engine.
	V2SwapExactOut CommandTag = 0x05

	// MarketOrder forwards value and an opaque order payload to the
	// order-settlement adapter.
	MarketOrder CommandTag = 0x06

	// WrapNative wraps native value for a recipient.
	WrapNative CommandTag = 0x07

	// UnwrapNative unwraps at least a minimum amount for a recipient.
	UnwrapNative CommandTag = 0x08

	// Sweep pays out any residual token balance above a minimum.
	Sweep CommandTag = 0x09

	// VaultBuy forwards value and an opaque payload to the vault
	// marketplace adapter.
	VaultBuy CommandTag = 0x0a

	// ListingBuy721 settles a listing and then hands the purchased NFT
	// to the recipient.
	ListingBuy721 CommandTag = 0x0b

	tagCount = 0x0c
)

// String returns the tag's mnemonic, or a hex form for undefined tags.
func (t CommandTag) String() string {
	if int(t) < len(operations) && operations[t].valid {
		return operations[t].name
	}
	return fmt.Sprintf("UNKNOWN(0x%02x)", byte(t))
}

// Command is one decoded 8-byte command word.
type Command struct {
	flags byte
	desc  [MaxOperands]byte
}

// Tag returns the operation tag from the low nibble of the flags byte.
func (c Command) Tag() CommandTag {
	return CommandTag(c.flags & TagMask)
}

// Flags returns the raw flags byte, including reserved bits.
func (c Command) Flags() byte {
	return c.flags
}

// Operand returns descriptor byte i. It panics when i is outside
// [0, MaxOperands), matching slice indexing semantics.
func (c Command) Operand(i int) byte {
	return c.desc[i]
}

// DecodeCommands splits raw bytes into command words.
//
// The length must be a positive multiple of CommandSize; a truncated
// trailing word fails the whole batch before anything executes. Tags
// are not validated here - an undefined tag is rejected at dispatch so
// the failing command index can be reported.
func DecodeCommands(raw []byte) ([]Command, error) {
	if len(raw) == 0 || len(raw)%CommandSize != 0 {
		return nil, ErrTruncatedCommands
	}

	cmds := make([]Command, 0, len(raw)/CommandSize)
	for off := 0; off < len(raw); off += CommandSize {
		var c Command
		c.flags = raw[off]
		copy(c.desc[:], raw[off+1:off+CommandSize])
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// EncodeCommand packs one command word from a tag and its descriptor
// bytes. The operand count must match the operation's arity exactly;
// unused trailing descriptor bytes are left zero.
func EncodeCommand(tag CommandTag, operands ...byte) ([CommandSize]byte, error) {
	var word [CommandSize]byte

	if tag >= tagCount {
		return word, ErrUnknownCommand
	}
	if len(operands) != operations[tag].arity {
		return word, ErrOperandCount
	}

	word[0] = byte(tag)
	copy(word[1:], operands)
	return word, nil
}

// Program accumulates command words for one batch.
// The zero value is an empty program ready for use.
type Program struct {
	buf []byte
	err error
}

// Add appends one command. The first error encountered is retained and
// returned by every later Add and by Err.
func (p *Program) Add(tag CommandTag, operands ...byte) error {
	if p.err != nil {
		return p.err
	}

	word, err := EncodeCommand(tag, operands...)
	if err != nil {
		p.err = err
		return err
	}
	p.buf = append(p.buf, word[:]...)
	return nil
}

// MustAdd is like Add but panics on error. Use only with operand
// layouts known correct at compile time.
func (p *Program) MustAdd(tag CommandTag, operands ...byte) *Program {
	if err := p.Add(tag, operands...); err != nil {
		panic(err)
	}
	return p
}

// Err returns the first encoding error, if any.
func (p *Program) Err() error {
	return p.err
}

// Len returns the number of commands added so far.
func (p *Program) Len() int {
	return len(p.buf) / CommandSize
}

// Bytes returns the packed command sequence.
func (p *Program) Bytes() []byte {
	return p.buf
}
