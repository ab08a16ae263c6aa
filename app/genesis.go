package app

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

// GenesisState is the state of every module, keyed by module name
type GenesisState struct {
	Swapverse   *swaptypes.GenesisState   `json:"swapverse"`
	TokenLedger *ledgertypes.GenesisState `json:"tokenledger"`
}

// NewDefaultGenesisState returns the default genesis of every module
func NewDefaultGenesisState() GenesisState {
	return GenesisState{
		Swapverse:   swaptypes.DefaultGenesis(),
		TokenLedger: ledgertypes.DefaultGenesis(),
	}
}

// InitGenesis loads state into an empty application
func (app *App) InitGenesis(ctx context.Context, gs GenesisState) error {
	if gs.Swapverse == nil {
		gs.Swapverse = swaptypes.DefaultGenesis()
	}
	if gs.TokenLedger == nil {
		gs.TokenLedger = ledgertypes.DefaultGenesis()
	}

	release := app.lanes.AcquireAll()
	defer release()

	cache := app.cms.CacheMultiStore()
	sdkCtx := app.newContext(ctx, cache)
	if err := app.LedgerKeeper.InitGenesis(sdkCtx, *gs.TokenLedger); err != nil {
		return fmt.Errorf("init token ledger genesis: %w", err)
	}
	if err := app.SwapverseKeeper.InitGenesis(sdkCtx, *gs.Swapverse); err != nil {
		return fmt.Errorf("init swapverse genesis: %w", err)
	}
	cache.Write()
	return nil
}

// ExportGenesis returns the current state of every module
func (app *App) ExportGenesis(ctx context.Context) (GenesisState, error) {
	var gs GenesisState
	err := app.query(ctx, func(sdkCtx sdk.Context) error {
		swap, err := app.SwapverseKeeper.ExportGenesis(sdkCtx)
		if err != nil {
			return err
		}
		gs.Swapverse = swap
		gs.TokenLedger, err = app.LedgerKeeper.ExportGenesis(sdkCtx)
		return err
	})
	return gs, err
}

// ExportGenesisJSON returns the indented JSON of ExportGenesis
func (app *App) ExportGenesisJSON(ctx context.Context) ([]byte, error) {
	gs, err := app.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(gs, "", "  ")
}
