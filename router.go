// Package router implements a batched command-execution engine for
// chained token, swap, and marketplace operations.
//
// A batch is a sequence of fixed-width command words executed against a
// caller-supplied slot store of opaque byte blobs. Each word names one
// operation and describes, byte by byte, where its operands come from:
// either a slot index into the store or the dynamic-output sentinel that
// forwards the result of the most recent producing command. The whole
// batch either completes or is rolled back as a unit.
//
// # Basic Usage
//
// Wire the external collaborators, build a program, and execute:
//
//	r, err := router.New(router.Config{
//	    Self:          routerAddr,
//	    WrappedNative: wethAddr,
//	}, services)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	slots := router.State{
//	    router.AddressWord(tokenAddr),
//	    router.AddressWord(recipientAddr),
//	    router.AmountWord(uint256.NewInt(1e18)),
//	}
//
//	var p router.Program
//	p.MustAdd(router.Transfer, 0, 1, 2)
//
//	final, err := r.Execute(caller, deadline, p.Bytes(), slots)
//
// # Command Encoding
//
// Commands are packed 8-byte words:
//
//	Byte 0:   flags; the low nibble is the operation tag (0x00-0x0b),
//	          the high nibble is reserved and must be zero
//	Bytes 1-7: operand descriptor, one byte per operand
//
// A descriptor byte is either a direct slot index (0x00-0xfd) or
// OutputSlot (0xfe), which resolves to the output of the most recent
// command that produced one. Trailing descriptor bytes beyond the
// operation's arity are ignored. This is what lets one swap's reported
// amount feed the next swap in the same batch without the caller ever
// reading it back.
//
// # Slot Store
//
// The State passed to Execute is fixed-length for the whole batch: the
// engine never appends or removes slots. On any failure the store is
// restored to its initial contents and a structured error identifies
// the failing command by index.
//
// # Collaborators
//
// The engine owns only dispatch and operand plumbing. Payments, swap
// pricing, permit verification, marketplace settlement, and NFT custody
// are all behind the Services interfaces; see services.go.
//
// # References
//
// The command layout follows the on-chain batching routers that grew
// out of the weiroll VM lineage:
//   - https://github.com/weiroll/weiroll (Solidity VM implementation)
//   - https://github.com/branched-services/go-weiroll (Go planner)
package router
