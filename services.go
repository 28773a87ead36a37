package router

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AuthorizationService verifies and consumes signed transfer permits.
type AuthorizationService interface {
	// TransferFrom applies an opaque permit payload on behalf of owner.
	// The engine prefixes the batch caller as owner; it never inspects
	// the payload.
	TransferFrom(owner common.Address, permit []byte) error
}

// PaymentService moves token and native value on the engine's behalf.
// The engine treats amounts as opaque instructions; balance accounting
// lives entirely behind this interface.
type PaymentService interface {
	// PayToken pays amount of token to recipient.
	PayToken(token, recipient common.Address, amount *uint256.Int) error

	// SweepToken pays any residual token balance to recipient, failing
	// if the residue is below amountMin.
	SweepToken(token, recipient common.Address, amountMin *uint256.Int) error

	// WrapNative wraps amount of native value for recipient.
	WrapNative(recipient common.Address, amount *uint256.Int) error

	// UnwrapNative unwraps the held wrapped balance for recipient,
	// failing below amountMin.
	UnwrapNative(recipient common.Address, amountMin *uint256.Int) error
}

// SwapEngine prices and executes swaps against one pool generation.
// Path blobs are opaque to the engine: v2 engines receive an
// ABI-encoded hop list, v3 engines a packed token/fee path.
type SwapEngine interface {
	// ExactInput spends exactly amountIn along path and reports the
	// amount delivered to recipient, which must be at least amountOutMin.
	ExactInput(recipient common.Address, amountIn, amountOutMin *uint256.Int, path []byte) (*uint256.Int, error)

	// ExactOutput delivers exactly amountOut to recipient and reports
	// the amount spent, which must be at most amountInMax.
	ExactOutput(recipient common.Address, amountOut, amountInMax *uint256.Int, path []byte) (*uint256.Int, error)
}

// MarketplaceAdapter settles an opaque order payload at a fixed venue.
// It reports success as a flag rather than an error so the raw response
// bytes travel with both outcomes; on failure the response is the
// venue's diagnostic and is surfaced verbatim in the batch error.
type MarketplaceAdapter interface {
	Settle(value *uint256.Int, payload []byte) (ok bool, response []byte)
}

// NFTTransferer moves a specific token id between owners.
type NFTTransferer interface {
	TransferOwnership(token, from, to common.Address, id *uint256.Int) error
}

// Transactor brackets one batch so collaborator side effects can be
// undone on abort. The engine snapshots its own slot store; everything
// pushed to collaborators is rolled back through this hook. When no
// Transactor is configured the caller's surrounding execution boundary
// is assumed to provide all-or-nothing visibility.
type Transactor interface {
	Begin() error
	Commit() error
	Rollback() error
}

// Services bundles the external collaborators one Router dispatches to.
// Every field is required.
type Services struct {
	Authorizer AuthorizationService
	Payments   PaymentService
	SwapV2     SwapEngine
	SwapV3     SwapEngine

	// OrderMarket settles MarketOrder payloads, VaultMarket settles
	// VaultBuy payloads, and ListingMarket settles ListingBuy721
	// purchases before the NFT handoff.
	OrderMarket   MarketplaceAdapter
	VaultMarket   MarketplaceAdapter
	ListingMarket MarketplaceAdapter

	NFT NFTTransferer
}

func (s Services) validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", ErrMissingCollaborator, name)
	}

	switch {
	case s.Authorizer == nil:
		return missing("Authorizer")
	case s.Payments == nil:
		return missing("Payments")
	case s.SwapV2 == nil:
		return missing("SwapV2")
	case s.SwapV3 == nil:
		return missing("SwapV3")
	case s.OrderMarket == nil:
		return missing("OrderMarket")
	case s.VaultMarket == nil:
		return missing("VaultMarket")
	case s.ListingMarket == nil:
		return missing("ListingMarket")
	case s.NFT == nil:
		return missing("NFT")
	}
	return nil
}
