package apperr

import (
	"net/http"

	"canvas_blog/pkg/logger"
	"canvas_blog/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteResponse 把服务层错误映射为 HTTP 响应
// 未归类错误统一按内部错误返回，不泄漏细节
func WriteResponse(c *gin.Context, err error) {
	code := GetCode(err)
	switch code {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, response.ErrNotFound, err.Error())
	case ErrPermissionDenied:
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
	case ErrInvalidArgument:
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	case ErrConflict:
		response.Error(c, http.StatusConflict, response.ErrConflict, err.Error())
	default:
		logger.Error("unclassified error", zap.Error(err), zap.String("path", c.FullPath()))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "internal server error")
	}
}
