package types

// Swapverse module event types
const (
	EventTypeGlobalStateInitialized = "global_state_initialized"
	EventTypeTestTokensMinted       = "test_tokens_minted"
	EventTypeSwapPoolCreated        = "swap_pool_created"
	EventTypeInvest                 = "invest"
	EventTypeSwapPoolActivated      = "swap_pool_activated"
	EventTypeSwap                   = "swap"
	EventTypeProfitClaimed          = "profit_claimed"
	EventTypeWithdrawalOpened       = "swap_pool_withdrawal_opened"
	EventTypeWithdraw               = "withdraw"

	AttributeKeyOwner         = "owner"
	AttributeKeyAuthority     = "signing_authority"
	AttributeKeyPoolIndex     = "pool_index"
	AttributeKeyCreator       = "creator"
	AttributeKeyInvestor      = "investor"
	AttributeKeyUser          = "user"
	AttributeKeySide          = "side"
	AttributeKeyDenom         = "denom"
	AttributeKeyTokenA        = "token_a"
	AttributeKeyTokenB        = "token_b"
	AttributeKeyAmount        = "amount"
	AttributeKeyShares        = "shares"
	AttributeKeyTokenIn       = "token_in"
	AttributeKeyTokenOut      = "token_out"
	AttributeKeyAmountIn      = "amount_in"
	AttributeKeyAmountOut     = "amount_out"
	AttributeKeyFee           = "fee"
	AttributeKeyTreasuryFee   = "treasury_fee"
	AttributeKeyProfit        = "profit"
	AttributeKeyReason        = "reason"
	AttributeKeyValuePerShare = "value_per_share"
)

// Reasons a pool opens for withdrawal
const (
	WithdrawalReasonFillDeadline = "fill_deadline"
	WithdrawalReasonEndOfLife    = "end_of_life"
	WithdrawalReasonClosed       = "closed"
)
