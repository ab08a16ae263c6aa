package api

import (
	"net/http"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// handleGetRegistry returns the global registry
func (s *Server) handleGetRegistry(c *gin.Context) {
	gs, err := s.engine.GlobalState(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gs)
}

// handleGetPools returns a page of pools
func (s *Server) handleGetPools(c *gin.Context) {
	offset, err := cast.ToIntE(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		badRequest(c, "invalid offset")
		return
	}
	limit, err := cast.ToIntE(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 {
		badRequest(c, "invalid limit")
		return
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	pools, total, err := s.engine.Pools(c.Request.Context(), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if pools == nil {
		pools = []swaptypes.SwapPool{}
	}
	c.JSON(http.StatusOK, PoolsResponse{Pools: pools, Total: total, Offset: offset, Limit: limit})
}

// handleGetPool returns one pool
func (s *Server) handleGetPool(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}
	pool, err := s.engine.Pool(c.Request.Context(), index)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

// handleGetQuote prices a swap without executing it
func (s *Server) handleGetQuote(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}
	direction, err := swaptypes.ParseDirection(c.Query("direction"))
	if err != nil {
		writeError(c, err)
		return
	}
	amountIn, ok := math.NewIntFromString(c.Query("amount_in"))
	if !ok {
		badRequest(c, "amount_in must be an integer")
		return
	}

	quote, err := s.engine.Quote(c.Request.Context(), index, direction, amountIn)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// handleGetInvestor returns an investor's positions and pending profit in a pool
func (s *Server) handleGetInvestor(c *gin.Context) {
	index, ok := poolIndexParam(c)
	if !ok {
		return
	}
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	view, err := s.engine.Investor(c.Request.Context(), index, addr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, InvestorResponse(view))
}

// handleGetBalance returns a ledger balance. Share denoms contain a slash,
// so the denom is a catch-all segment.
func (s *Server) handleGetBalance(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}
	denom := strings.TrimPrefix(c.Param("denom"), "/")
	if denom == "" {
		badRequest(c, "denom is required")
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Address: addr.String(),
		Denom:   denom,
		Amount:  s.engine.Balance(c.Request.Context(), denom, addr),
	})
}

func poolIndexParam(c *gin.Context) (uint64, bool) {
	index, err := strconv.ParseUint(c.Param("pool_id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid pool id")
		return 0, false
	}
	return index, true
}

func addressParam(c *gin.Context) (sdk.AccAddress, bool) {
	addr, err := sdk.AccAddressFromBech32(c.Param("address"))
	if err != nil {
		writeError(c, swaptypes.ErrInvalidAddress.Wrap(err.Error()))
		return nil, false
	}
	return addr, true
}
