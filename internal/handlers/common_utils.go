package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moonpool/internal/engine"
)

// Engine is the shared instruction engine, set once at startup.
var Engine *engine.Engine

// SetEngine wires the engine used by all handlers.
func SetEngine(e *engine.Engine) {
	Engine = e
}

// statusFor maps engine failure codes to HTTP statuses.
func statusFor(err *engine.Error) int {
	switch err.Code {
	case "AddressMismatch", "InvalidAmount", "InvalidPoolName", "InvalidSymbol", "InvalidURI":
		return http.StatusBadRequest
	case "Unauthorized":
		return http.StatusForbidden
	case "PoolNotFound", "NotInitialized":
		return http.StatusNotFound
	case "AlreadyInitialized", "DuplicatePool", "AlreadyMinted", "PoolNotReady",
		"PoolMatured", "PoolNotMatured", "PoolClosed":
		return http.StatusConflict
	case "Overflow", "InsufficientFunds", "InsufficientSupply",
		"InsufficientVaultBalance", "ExceedsMaximumSupply":
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError writes an engine or internal error as JSON.
func respondError(c *gin.Context, err error) {
	var engineErr *engine.Error
	if errors.As(err, &engineErr) {
		c.JSON(statusFor(engineErr), gin.H{"error": engineErr.Message, "code": engineErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
