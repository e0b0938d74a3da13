package handler

import (
	"net/http"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/logger"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/validation"
	"github.com/gin-gonic/gin"
)

// Ok 成功响应
func Ok(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// OkList 带统计与分页的列表响应
func OkList(c *gin.Context, data interface{}, stats interface{}, pagination *Pagination) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Stats:      stats,
		Pagination: pagination,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BadRequest 请求参数错误
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
	})
}

// ValidationFailed 字段校验失败
func ValidationFailed(c *gin.Context, errs []validation.FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// NotFound 资源不存在
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Success: false,
		Message: message,
	})
}

// Conflict 唯一键冲突
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Success: false,
		Message: message,
	})
}

// Internal 未预期的内部错误，release 模式下不暴露底层错误信息
func Internal(c *gin.Context, message string, err error) {
	logger.Error("%s: %v", message, err)
	if gin.Mode() != gin.ReleaseMode {
		message = message + ": " + err.Error()
	}
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: message,
	})
}
