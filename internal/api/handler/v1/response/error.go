package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error envelope every endpoint renders.
type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"msg"`

	err error
}

func (e *Err) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	return e.Msg
}

func (e *Err) Unwrap() error {
	return e.err
}

func NewError(statusCode int, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        err.Error(),
		err:        err,
	}
}

func ErrBadRequest(err error) *Err {
	return NewError(http.StatusBadRequest, err)
}

func ErrUnauthorized(err error) *Err {
	return NewError(http.StatusUnauthorized, err)
}

func ErrNotFound(err error) *Err {
	return NewError(http.StatusNotFound, err)
}

func ErrTooManyRequests(err error) *Err {
	return NewError(http.StatusTooManyRequests, err)
}

// ErrInternalServerError hides the wrapped cause from the response body.
// The cause still reaches the logs through RenderErr.
func ErrInternalServerError(err error) *Err {
	e := NewError(http.StatusInternalServerError, err)
	e.Msg = "internal server error"

	return e
}

// RenderErr logs server-side failures with the request ID and writes the
// envelope. 4xx responses log at info since they are client mistakes.
func RenderErr(ctx *gin.Context, err *Err) {
	fields := []zap.Field{
		zap.Int("status", err.StatusCode),
		zap.String("request_id", requestid.Get(ctx)),
		zap.Error(err.err),
	}

	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed", fields...)
	} else {
		zap.L().Info("request rejected", fields...)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
