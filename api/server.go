package api

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	swapkeeper "github.com/swapverse/swapverse/x/swapverse/keeper"
	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

// Engine is the swapverse application as seen by the API
type Engine interface {
	InitializeGlobalState(ctx context.Context, msg swaptypes.MsgInitializeGlobalState) error
	MintTestTokens(ctx context.Context, msg swaptypes.MsgMintTestTokens) error
	CreateSwapPool(ctx context.Context, msg swaptypes.MsgCreateSwapPool) (uint64, error)
	Invest(ctx context.Context, msg swaptypes.MsgInvest) (math.Int, error)
	Swap(ctx context.Context, msg swaptypes.MsgSwap) (swaptypes.SwapQuote, error)
	ClaimProfit(ctx context.Context, msg swaptypes.MsgClaimProfit) (math.Int, error)
	Withdraw(ctx context.Context, msg swaptypes.MsgWithdraw) (swaptypes.MsgWithdrawResponse, error)
	ClosePool(ctx context.Context, msg swaptypes.MsgClosePool) error

	GlobalState(ctx context.Context) (swaptypes.GlobalState, error)
	Pool(ctx context.Context, index uint64) (swaptypes.SwapPool, error)
	Pools(ctx context.Context, offset, limit int) ([]swaptypes.SwapPool, uint64, error)
	Investor(ctx context.Context, index uint64, investor sdk.AccAddress) (swapkeeper.InvestorView, error)
	Quote(ctx context.Context, index uint64, direction swaptypes.Direction, amountIn math.Int) (swaptypes.SwapQuote, error)
	Balance(ctx context.Context, denom string, owner sdk.AccAddress) math.Int
}

// Server represents the main API server
type Server struct {
	router      *gin.Engine
	engine      Engine
	config      *Config
	logger      log.Logger
	authService *AuthService
}

// Config holds server configuration
type Config struct {
	Address         string        `mapstructure:"address"`
	JWTSecret       string        `mapstructure:"jwt-secret"`
	CORSOrigins     []string      `mapstructure:"cors-origins"`
	RateLimitRPS    int           `mapstructure:"rate-limit-rps"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	Version         string        `mapstructure:"-"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Address:         "0.0.0.0:1317",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Version:         "dev",
	}
}

// NewServer creates a new API server over engine
func NewServer(engine Engine, config *Config, logger log.Logger) (*Server, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	logger = logger.With("module", "api")

	secret := []byte(config.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		logger.Warn("api.jwt-secret is empty; using a random secret, no issued token will validate")
	}

	server := &Server{
		engine:      engine,
		config:      config,
		logger:      logger,
		authService: NewAuthService(secret),
	}
	server.setupRouter()

	return server, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Order matters: recovery first, then request id so every log line carries it
	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(MetricsMiddleware())
	if s.config.RateLimitRPS > 0 {
		s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))
	}
	if s.config.RequestTimeout > 0 {
		s.router.Use(TimeoutMiddleware(s.config.RequestTimeout))
	}

	s.router.GET("/health", s.healthCheck)
	s.registerRoutes()
}

// Handler returns the router wrapped with CORS handling
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   s.config.Version,
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.config.Address,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("API server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// AuthService returns the token service of the server
func (s *Server) AuthService() *AuthService {
	return s.authService
}
