package router

// handlerFunc executes one resolved command against the collaborators.
// output, when non-nil, becomes the pending dynamic output for later
// commands. response carries the raw collaborator diagnostic for the
// batch error when err is non-nil.
type handlerFunc func(r *Router, ctx *batchContext, ops [][]byte) (output []byte, response []byte, err error)

// operation is one dispatch table entry.
type operation struct {
	name    string
	arity   int // descriptor bytes consumed; trailing bytes are ignored
	execute handlerFunc
	valid   bool
}

// operations is the dispatch table, indexed by the low nibble of the
// flags byte. Undefined tags stay invalid and hard-fail the batch;
// there is deliberately no default no-op.
var operations = [TagMask + 1]operation{
	Permit:         {name: "PERMIT", arity: 1, execute: opPermit, valid: true},
	Transfer:       {name: "TRANSFER", arity: 3, execute: opTransfer, valid: true},
	V3SwapExactIn:  {name: "V3_SWAP_EXACT_IN", arity: 4, execute: opV3SwapExactIn, valid: true},
	V3SwapExactOut: {name: "V3_SWAP_EXACT_OUT", arity: 4, execute: opV3SwapExactOut, valid: true},
	V2SwapExactIn:  {name: "V2_SWAP_EXACT_IN", arity: 4, execute: opV2SwapExactIn, valid: true},
	V2SwapExactOut: {name: "V2_SWAP_EXACT_OUT", arity: 4, execute: opV2SwapExactOut, valid: true},
	MarketOrder:    {name: "MARKET_ORDER", arity: 2, execute: opMarketOrder, valid: true},
	WrapNative:     {name: "WRAP_NATIVE", arity: 2, execute: opWrapNative, valid: true},
	UnwrapNative:   {name: "UNWRAP_NATIVE", arity: 2, execute: opUnwrapNative, valid: true},
	Sweep:          {name: "SWEEP", arity: 3, execute: opSweep, valid: true},
	VaultBuy:       {name: "VAULT_BUY", arity: 2, execute: opVaultBuy, valid: true},
	ListingBuy721:  {name: "LISTING_BUY_721", arity: 5, execute: opListingBuy721, valid: true},
}

func opPermit(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	if err := r.services.Authorizer.TransferFrom(ctx.caller, ops[0]); err != nil {
		return nil, nil, err
	}
	return nil, nil, nil
}

func opTransfer(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	token, err := wordAddress(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := wordAddress(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	amount, err := wordAmount(ops, 2)
	if err != nil {
		return nil, nil, err
	}
	return nil, nil, r.services.Payments.PayToken(token, recipient, amount)
}

// v3 swaps take (recipient, amount, amount limit, path); v2 swaps take
// (amount, amount limit, path, recipient). Both record the engine's
// reported counter-amount as the command output.

func opV3SwapExactIn(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	recipient, err := wordAddress(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	amountIn, err := wordAmount(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	amountOutMin, err := wordAmount(ops, 2)
	if err != nil {
		return nil, nil, err
	}

	amountOut, err := r.services.SwapV3.ExactInput(recipient, amountIn, amountOutMin, ops[3])
	if err != nil {
		return nil, nil, err
	}
	return AmountWord(amountOut), nil, nil
}

func opV3SwapExactOut(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	recipient, err := wordAddress(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	amountOut, err := wordAmount(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	amountInMax, err := wordAmount(ops, 2)
	if err != nil {
		return nil, nil, err
	}

	amountIn, err := r.services.SwapV3.ExactOutput(recipient, amountOut, amountInMax, ops[3])
	if err != nil {
		return nil, nil, err
	}
	return AmountWord(amountIn), nil, nil
}

func opV2SwapExactIn(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	amountIn, err := wordAmount(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	amountOutMin, err := wordAmount(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := wordAddress(ops, 3)
	if err != nil {
		return nil, nil, err
	}

	amountOut, err := r.services.SwapV2.ExactInput(recipient, amountIn, amountOutMin, ops[2])
	if err != nil {
		return nil, nil, err
	}
	return AmountWord(amountOut), nil, nil
}

func opV2SwapExactOut(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	amountOut, err := wordAmount(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	amountInMax, err := wordAmount(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := wordAddress(ops, 3)
	if err != nil {
		return nil, nil, err
	}

	amountIn, err := r.services.SwapV2.ExactOutput(recipient, amountOut, amountInMax, ops[2])
	if err != nil {
		return nil, nil, err
	}
	return AmountWord(amountIn), nil, nil
}

func opMarketOrder(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	return settle(r.services.OrderMarket, ops)
}

func opVaultBuy(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	return settle(r.services.VaultMarket, ops)
}

// settle forwards (value, payload) to a marketplace adapter. The raw
// response becomes the command output on success and the diagnostic
// payload on failure.
func settle(market MarketplaceAdapter, ops [][]byte) ([]byte, []byte, error) {
	value, err := wordAmount(ops, 0)
	if err != nil {
		return nil, nil, err
	}

	ok, response := market.Settle(value, ops[1])
	if !ok {
		return nil, response, ErrSettlementRejected
	}
	return response, nil, nil
}

func opWrapNative(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	recipient, err := wordAddress(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	amount, err := wordAmount(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	return nil, nil, r.services.Payments.WrapNative(recipient, amount)
}

func opUnwrapNative(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	recipient, err := wordAddress(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	amountMin, err := wordAmount(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	return nil, nil, r.services.Payments.UnwrapNative(recipient, amountMin)
}

func opSweep(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	token, err := wordAddress(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := wordAddress(ops, 1)
	if err != nil {
		return nil, nil, err
	}
	amountMin, err := wordAmount(ops, 2)
	if err != nil {
		return nil, nil, err
	}
	return nil, nil, r.services.Payments.SweepToken(token, recipient, amountMin)
}

// opListingBuy721 settles a listing purchase and then hands the token
// to the recipient. The engine custodies the NFT between the two steps,
// so the handoff transfers from the router's own address; a failed
// handoff aborts the batch like any other handler failure.
func opListingBuy721(r *Router, ctx *batchContext, ops [][]byte) ([]byte, []byte, error) {
	value, err := wordAmount(ops, 0)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := wordAddress(ops, 2)
	if err != nil {
		return nil, nil, err
	}
	token, err := wordAddress(ops, 3)
	if err != nil {
		return nil, nil, err
	}
	id, err := wordAmount(ops, 4)
	if err != nil {
		return nil, nil, err
	}

	ok, response := r.services.ListingMarket.Settle(value, ops[1])
	if !ok {
		return nil, response, ErrSettlementRejected
	}

	if err := r.services.NFT.TransferOwnership(token, r.cfg.Self, recipient, id); err != nil {
		return nil, response, err
	}
	return response, nil, nil
}
