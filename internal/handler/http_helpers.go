package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tinyblog/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrPostNotFound) ||
		errors.Is(err, service.ErrCategoryNotFound) ||
		errors.Is(err, service.ErrTagNotFound) ||
		errors.Is(err, service.ErrInvalidMonth)
}

func errorStatus(err error) int {
	if isNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return "文章不存在"
	case errors.Is(err, service.ErrCategoryNotFound):
		return "分类不存在"
	case errors.Is(err, service.ErrTagNotFound):
		return "标签不存在"
	default:
		return "归档月份无效"
	}
}

// abortWithError 将未找到类错误映射为 404，其余错误交给 gin 的默认 500 处理。
func abortWithError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatus(status)
}

// abortWithJSONError 与 abortWithError 的状态码一致，响应体为 JSON，message 用于 500。
func abortWithJSONError(c *gin.Context, err error, message string) {
	status := errorStatus(err)
	if status == http.StatusNotFound {
		message = notFoundMessage(err)
	} else {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
