package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error body. statusCode stays unexported so it never
// leaks into the payload.
type Err struct {
	statusCode int

	ErrCode int    `json:"error_code"`
	ErrMsg  string `json:"error_msg"`
}

func NewErr(statusCode, errCode int, msg string) *Err {
	return &Err{
		statusCode: statusCode,
		ErrCode:    errCode,
		ErrMsg:     msg,
	}
}

func (e *Err) Error() string {
	return e.ErrMsg
}

func (e *Err) StatusCode() int {
	return e.statusCode
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, http.StatusBadRequest, err.Error())
}

func ErrUnauthorized(msg string) *Err {
	return NewErr(http.StatusUnauthorized, http.StatusUnauthorized, msg)
}

func ErrWrongCredentials() *Err {
	return NewErr(http.StatusUnauthorized, http.StatusUnauthorized, "wrong credentials")
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, http.StatusForbidden, err.Error())
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return NewErr(http.StatusNotFound, http.StatusNotFound, fmt.Sprintf("%v not found (%v=%v)", resource, key, value))
}

func ErrConflict(msg string) *Err {
	return NewErr(http.StatusConflict, http.StatusConflict, msg)
}

func ErrServiceUnavailable(msg string) *Err {
	return NewErr(http.StatusServiceUnavailable, http.StatusServiceUnavailable, msg)
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	// The cause is logged above; the client only sees a generic message.
	return NewErr(http.StatusInternalServerError, http.StatusInternalServerError, "internal server error")
}

func RenderErr(ctx *gin.Context, err *Err) {
	zap.L().Info("request failed",
		zap.String("request_id", requestid.Get(ctx)),
		zap.String("path", ctx.FullPath()),
		zap.Int("status", err.statusCode),
		zap.String("error", err.ErrMsg),
	)

	ctx.AbortWithStatusJSON(err.statusCode, err)
}
