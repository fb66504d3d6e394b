package handler

import (
	"errors"
	"net/http"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailWithError 按错误类别映射HTTP状态码后返回错误响应
func FailWithError(c *gin.Context, err error) {
	ErrorResponse(c, statusFromError(err), err.Error())
}

// statusFromError 错误类别到状态码：
// 找不到实体404，索引服务故障502（可整体重试），完整性校验失败500，
// 交易准备失败422，配置缺失500
func statusFromError(err error) int {
	var (
		transportErr  *model.TransportError
		integrityErr  *model.IntegrityError
		submissionErr *model.SubmissionError
	)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	case errors.As(err, &submissionErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &integrityErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
