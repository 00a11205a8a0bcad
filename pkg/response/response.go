package response

import "github.com/gin-gonic/gin"

// Stable client-visible error codes. The HTTP status can be shared
// between codes (conflict vs illegal transition are both 409), so
// clients branch on the code, not the status.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidState     = "INVALID_STATE"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeInternal         = "INTERNAL"
)

type ErrorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorBody{Code: code, Error: message})
}
