package response

import (
	"errors"
	"net/http"

	apperr "github.com/papergraph/papergraph/pkg/errors"
	"github.com/papergraph/papergraph/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// Envelope 统一响应外壳 {code, message, data}
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success 成功响应，code 固定为 0
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Code: 0, Message: message, Data: data})
}

// Error 失败响应，业务错误码 + HTTP 状态码
func Error(c *gin.Context, status, code int, message string) {
	c.JSON(status, Envelope{Code: code, Message: message})
}

// FromError 按 CodeMsg 渲染失败响应，其他错误退化为通用错误码
func FromError(c *gin.Context, status int, err error) {
	var cm *apperr.CodeMsg
	if errors.As(err, &cm) {
		c.JSON(status, Envelope{Code: cm.Code, Message: cm.Msg})
		return
	}
	c.JSON(status, Envelope{Code: xerr.SERVER_COMMON_ERROR, Message: err.Error()})
}
