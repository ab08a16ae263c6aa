package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/swapverse/swapverse/x/swapverse/keeper"
	"github.com/swapverse/swapverse/x/swapverse/types"
	ledgerkeeper "github.com/swapverse/swapverse/x/tokenledger/keeper"
	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

// GenesisTime is the block time of every test context
var GenesisTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Keepers bundles the keepers of a test application
type Keepers struct {
	Swapverse keeper.Keeper
	Ledger    ledgerkeeper.Keeper
}

// SwapverseKeeper creates both keepers over an in-memory multistore
func SwapverseKeeper(t testing.TB) (Keepers, sdk.Context) {
	swapKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(ledgertypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(swapKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ledger := ledgerkeeper.NewKeeper(ledgerKey)
	k := keeper.NewKeeper(swapKey, ledger)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: GenesisTime}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return Keepers{Swapverse: k, Ledger: ledger}, ctx
}

// TokenLedgerKeeper creates a standalone ledger keeper
func TokenLedgerKeeper(t testing.TB) (ledgerkeeper.Keeper, sdk.Context) {
	ks, ctx := SwapverseKeeper(t)
	return ks.Ledger, ctx
}

// TestAddress returns a deterministic account address for name
func TestAddress(name string) sdk.AccAddress {
	return sdk.AccAddress(types.DeriveAddress([]byte("test-account"), []byte(name)))
}

// InitRegistry initializes the registry with the default test tokens, owned by owner
func InitRegistry(t testing.TB, ks Keepers, ctx sdk.Context, owner sdk.AccAddress) {
	require.NoError(t, ks.Swapverse.InitializeGlobalState(ctx, owner, types.DefaultTokenDenoms))
}

// ScenarioConfig is the reference pool: seeds 100000/100000, fee and split
// of 10 bps, minimum investment 10000, 30 fill days and 360 life days.
func ScenarioConfig() types.PoolConfig {
	return types.PoolConfig{
		TokenA:              types.DefaultTokenDenoms[0],
		TokenB:              types.DefaultTokenDenoms[1],
		InitialAmountA:      math.NewInt(100_000),
		InitialAmountB:      math.NewInt(100_000),
		SwapFeeBps:          10,
		TreasurySplitBps:    10,
		MinInvestmentAmount: math.NewInt(10_000),
		MaxDaysToFill:       30,
		SwapLifeInDays:      360,
	}
}

// CreateTestPool initializes the registry if needed and creates a pool with cfg
func CreateTestPool(t testing.TB, ks Keepers, ctx sdk.Context, owner sdk.AccAddress, cfg types.PoolConfig) uint64 {
	if !ks.Swapverse.IsInitialized(ctx) {
		InitRegistry(t, ks, ctx, owner)
	}
	index, err := ks.Swapverse.CreateSwapPool(ctx, owner, cfg)
	require.NoError(t, err)
	return index
}

// Fund mints test tokens to addr through the faucet, in chunks below the mint limit
func Fund(t testing.TB, ks Keepers, ctx sdk.Context, addr sdk.AccAddress, denom string, amount math.Int) {
	chunk := types.DefaultMaxTestTokenMint.SubRaw(1)
	for amount.IsPositive() {
		next := math.MinInt(amount, chunk)
		require.NoError(t, ks.Swapverse.MintTestTokens(ctx, addr, denom, next))
		amount = amount.Sub(next)
	}
}

// FundAndInvest funds investor with amount and invests it on side s
func FundAndInvest(t testing.TB, ks Keepers, ctx sdk.Context, index uint64, investor sdk.AccAddress, s types.Side, amount math.Int) math.Int {
	pool, err := ks.Swapverse.GetSwapPool(ctx, index)
	require.NoError(t, err)
	Fund(t, ks, ctx, investor, pool.Side(s).Denom, amount)
	shares, err := ks.Swapverse.Invest(ctx, index, investor, s, amount)
	require.NoError(t, err)
	return shares
}
