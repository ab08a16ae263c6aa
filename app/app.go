package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"

	swapkeeper "github.com/swapverse/swapverse/x/swapverse/keeper"
	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
	ledgerkeeper "github.com/swapverse/swapverse/x/tokenledger/keeper"
	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

// ChainID identifies the state machine in every block header
const ChainID = "swapverse-1"

// App wires the stores and keepers of the swapverse engine. Every state
// changing operation runs in its own cache branch of the multistore and is
// written back only when it succeeds.
type App struct {
	logger    log.Logger
	db        dbm.DB
	cms       storetypes.CommitMultiStore
	keys      map[string]*storetypes.KVStoreKey
	clock     Clock
	lanes     *Lanes
	telemetry *Telemetry
	height    atomic.Int64
	lastSweep atomic.Int64

	LedgerKeeper    ledgerkeeper.Keeper
	SwapverseKeeper swapkeeper.Keeper
	msgServer       swaptypes.MsgServer
}

// Option configures an App
type Option func(*App)

// WithClock sets the source of block time
func WithClock(c Clock) Option {
	return func(app *App) { app.clock = c }
}

// WithTelemetry sets the tracing and metrics backend
func WithTelemetry(t *Telemetry) Option {
	return func(app *App) { app.telemetry = t }
}

// New opens the application over db
func New(logger log.Logger, db dbm.DB, opts ...Option) (*App, error) {
	app := &App{
		logger: logger.With("module", "app"),
		db:     db,
		clock:  SystemClock{},
		lanes:  NewLanes(),
		keys: map[string]*storetypes.KVStoreKey{
			swaptypes.StoreKey:   storetypes.NewKVStoreKey(swaptypes.StoreKey),
			ledgertypes.StoreKey: storetypes.NewKVStoreKey(ledgertypes.StoreKey),
		},
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.telemetry == nil {
		app.telemetry = NewNopTelemetry()
	}

	app.cms = store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range app.keys {
		app.cms.MountStoreWithDB(key, storetypes.StoreTypeDB, nil)
	}
	if err := app.cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	app.LedgerKeeper = ledgerkeeper.NewKeeper(app.keys[ledgertypes.StoreKey])
	app.SwapverseKeeper = swapkeeper.NewKeeper(app.keys[swaptypes.StoreKey], app.LedgerKeeper)
	app.msgServer = swapkeeper.NewMsgServerImpl(app.SwapverseKeeper)

	return app, nil
}

// Fresh reports whether the database holds no module state yet
func (app *App) Fresh() bool {
	return !app.cms.GetKVStore(app.keys[swaptypes.StoreKey]).Has(swaptypes.ParamsKey)
}

// Logger returns the application logger
func (app *App) Logger() log.Logger {
	return app.logger
}

// Close releases the database
func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) newContext(ctx context.Context, ms storetypes.MultiStore) sdk.Context {
	header := cmtproto.Header{
		ChainID: ChainID,
		Height:  app.height.Add(1),
		Time:    app.clock.Now(),
	}
	return sdk.NewContext(ms, header, false, app.logger).WithContext(ctx)
}

// execute runs fn on a cache branch while holding lanes. The branch is
// written back only if fn succeeds; its events are returned either way.
func (app *App) execute(ctx context.Context, op string, lanes []string, fn func(sdk.Context) error) (events sdk.Events, err error) {
	ctx, end := app.telemetry.StartOperation(ctx, op, attribute.StringSlice("lanes", lanes))
	defer func() { end(err) }()

	release := app.lanes.Acquire(lanes...)
	defer release()

	cache := app.cms.CacheMultiStore()
	sdkCtx := app.newContext(ctx, cache)

	if err = fn(sdkCtx); err != nil {
		app.logger.Debug("operation rejected", "operation", op, "error", err)
		return nil, err
	}

	cache.Write()
	return sdkCtx.EventManager().Events(), nil
}

// query runs fn against a read-only branch
func (app *App) query(ctx context.Context, fn func(sdk.Context) error) error {
	return fn(app.newContext(ctx, app.cms.CacheMultiStore()))
}

// EndBlock applies due lifecycle transitions to every pool. It excludes
// all other operations while it runs.
func (app *App) EndBlock(ctx context.Context) (err error) {
	ctx, end := app.telemetry.StartOperation(ctx, "end_block")
	defer func() { end(err) }()

	release := app.lanes.AcquireAll()
	defer release()

	cache := app.cms.CacheMultiStore()
	sdkCtx := app.newContext(ctx, cache)
	if err = app.SwapverseKeeper.EndBlocker(sdkCtx); err != nil {
		return err
	}
	cache.Write()
	app.lastSweep.Store(sdkCtx.BlockTime().UnixNano())
	return nil
}

// LastEndBlock returns the block time of the last successful sweep, or the
// zero time if none ran yet.
func (app *App) LastEndBlock() time.Time {
	ns := app.lastSweep.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}

// Now returns the current block time
func (app *App) Now() time.Time {
	return app.clock.Now()
}

// CheckInvariants runs every invariant against the current state
func (app *App) CheckInvariants(ctx context.Context) (msg string, broken bool) {
	_ = app.query(ctx, func(sdkCtx sdk.Context) error {
		msg, broken = swapkeeper.AllInvariants(app.SwapverseKeeper)(sdkCtx)
		return nil
	})
	return msg, broken
}
