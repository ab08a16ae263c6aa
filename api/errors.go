package api

import (
	"context"
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	swaptypes "github.com/swapverse/swapverse/x/swapverse/types"
	ledgertypes "github.com/swapverse/swapverse/x/tokenledger/types"
)

const codespaceAPI = "api"

var (
	notFoundErrors = []error{
		swaptypes.ErrPoolNotFound,
		swaptypes.ErrNotInitialized,
		ledgertypes.ErrUnknownDenom,
	}
	forbiddenErrors = []error{
		swaptypes.ErrUnauthorized,
		ledgertypes.ErrUnauthorized,
	}
	conflictErrors = []error{
		swaptypes.ErrAlreadyInitialized,
		swaptypes.ErrInvestmentWindowClosed,
		swaptypes.ErrWithdrawalWindowClosed,
		swaptypes.ErrSlippageExceeded,
		swaptypes.ErrInsufficientBalance,
		swaptypes.ErrSwapPoolNotActivated,
		swaptypes.ErrPoolClosedForSwaps,
		swaptypes.ErrInsufficientLiquidity,
		swaptypes.ErrNothingToWithdraw,
		ledgertypes.ErrInsufficientBalance,
		ledgertypes.ErrFrozenDenom,
	}
	internalErrors = []error{
		swaptypes.ErrInvariantViolation,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps an engine error to its HTTP status. Registered errors not
// listed above are caller mistakes.
func statusFor(err error) int {
	switch {
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, forbiddenErrors):
		return http.StatusForbidden
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, internalErrors):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	var registered *errorsmod.Error
	if errors.As(err, &registered) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error(), Codespace: codespaceAPI}

	var registered *errorsmod.Error
	if errors.As(err, &registered) {
		resp.Code = registered.ABCICode()
		resp.Codespace = registered.Codespace()
	}

	c.JSON(statusFor(err), resp)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Codespace: codespaceAPI})
}
