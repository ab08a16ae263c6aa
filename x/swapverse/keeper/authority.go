package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/swapverse/swapverse/x/swapverse/types"
)

// signingAuthority is the engine's capability to move pool-owned funds and
// to mint or burn share tokens. It only exists inside the keeper.
type signingAuthority struct {
	addr sdk.AccAddress
}

func newSigningAuthority() signingAuthority {
	return signingAuthority{addr: types.SigningAuthorityAddress()}
}

// SigningAuthority returns the address ledger movements are signed with
func (k Keeper) SigningAuthority() sdk.AccAddress {
	return k.authority.addr
}
