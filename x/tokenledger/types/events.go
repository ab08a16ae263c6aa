package types

// Token ledger event types
const (
	EventTypeMint     = "tokenledger_mint"
	EventTypeBurn     = "tokenledger_burn"
	EventTypeTransfer = "tokenledger_transfer"

	AttributeKeyDenom     = "denom"
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
	AttributeKeySigner    = "signer"
)
