package handler

import "github.com/gin-gonic/gin"

const (
	codeValidation       = "validation_error"
	codeNotFound         = "not_found"
	codeStoreUnavailable = "store_unavailable"
	codeInternal         = "internal_error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse carries a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: code})
}
