package router

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// WordSize is the width of a fixed operand word (address, amount, id).
const WordSize = 32

// v3FeeSize is the packed width of one pool fee in a v3 path.
const v3FeeSize = 3

// resolver assembles operand tuples for handlers from the slot store
// and the batch's running output register.
//
// Resolution is all-or-nothing: if any descriptor byte is unresolvable
// the whole command fails and the batch aborts citing its index.
type resolver struct {
	slots     State
	output    []byte
	hasOutput bool
}

// resolve builds the first n operands of cmd. Direct indices copy the
// referenced slot verbatim; the OutputSlot sentinel forwards the most
// recent command output. Handlers receive copies, so in-place mutation
// by a collaborator can never leak into the store.
func (rv *resolver) resolve(cmd Command, n int) ([][]byte, error) {
	ops := make([][]byte, n)

	for i := 0; i < n; i++ {
		d := cmd.Operand(i)
		var src []byte

		switch {
		case d == OutputSlot:
			if !rv.hasOutput {
				return nil, &OperandError{Operand: i, Err: ErrNoPendingOutput}
			}
			src = rv.output
		case d > MaxSlotIndex:
			return nil, &OperandError{Operand: i, Err: ErrSlotOutOfRange}
		default:
			blob, err := rv.slots.Get(d)
			if err != nil {
				return nil, &OperandError{Operand: i, Err: err}
			}
			src = blob
		}

		cp := make([]byte, len(src))
		copy(cp, src)
		ops[i] = cp
	}

	return ops, nil
}

// record stores a command's output for consumption by later commands.
// Commands that produce nothing leave the register untouched.
func (rv *resolver) record(output []byte) {
	rv.output = output
	rv.hasOutput = true
}

// wordAddress decodes operand i as a right-aligned 20-byte address in a
// 32-byte word.
func wordAddress(ops [][]byte, i int) (common.Address, error) {
	if len(ops[i]) != WordSize {
		return common.Address{}, &OperandError{Operand: i, Err: ErrInvalidWord}
	}
	return common.BytesToAddress(ops[i][WordSize-common.AddressLength:]), nil
}

// wordAmount decodes operand i as a big-endian 32-byte amount.
func wordAmount(ops [][]byte, i int) (*uint256.Int, error) {
	if len(ops[i]) != WordSize {
		return nil, &OperandError{Operand: i, Err: ErrInvalidWord}
	}
	return new(uint256.Int).SetBytes(ops[i]), nil
}

var addressSliceType = abi.Arguments{{Type: mustNewType("address[]")}}

func mustNewType(s string) abi.Type {
	t, err := abi.NewType(s, "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

// EncodePathV2 ABI-encodes a v2 hop list (address[]) as a path blob.
// The engine passes path blobs through verbatim; this helper exists for
// callers assembling slot stores.
func EncodePathV2(tokens ...common.Address) ([]byte, error) {
	if len(tokens) < 2 {
		return nil, &PathError{Tokens: len(tokens)}
	}
	return addressSliceType.Pack(tokens)
}

// EncodePathV3 packs a v3 path blob: token (20 bytes), fee (3 bytes),
// token, repeating. One fee is required per hop.
func EncodePathV3(tokens []common.Address, fees []uint32) ([]byte, error) {
	if len(tokens) < 2 || len(fees) != len(tokens)-1 {
		return nil, &PathError{Tokens: len(tokens), Fees: len(fees)}
	}

	path := make([]byte, 0, len(tokens)*common.AddressLength+len(fees)*v3FeeSize)
	for i, token := range tokens {
		path = append(path, token.Bytes()...)
		if i < len(fees) {
			fee := fees[i]
			path = append(path, byte(fee>>16), byte(fee>>8), byte(fee))
		}
	}
	return path, nil
}
