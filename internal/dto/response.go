package dto

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"caiary/packages/logger"
	res "caiary/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

// ErrorResponse 按业务错误码写出对应的 HTTP 状态
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(StatusOf(err.Code), res.ErrorResponse(err.Msg))
}

// StatusOf 业务错误码到 HTTP 状态码的映射
func StatusOf(code res.ResponseCode) int {
	switch code {
	case res.ParseError, res.InvalidParameter:
		return http.StatusBadRequest
	case res.NotFound:
		return http.StatusNotFound
	case res.Forbidden:
		return http.StatusForbidden
	case res.Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// HandleError 统一处理 service 返回的错误
// 业务错误直接返回给客户端，其他错误记录日志后返回通用提示
func HandleError(c *gin.Context, err error) {
	if bizErr, ok := res.AsBusinessError(err); ok {
		if bizErr.Err != nil || bizErr.Code == res.Fail {
			logger.L().Error("请求处理失败",
				zap.String("path", c.FullPath()),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
		}
		ErrorResponse(c, bizErr)
		return
	}

	logger.L().Error("请求处理失败",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.Fail),
		res.WithErrorMessage("服务器内部错误"),
	))
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := toSnakeCase(firstErr.Field())

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("字段 '%s' 是必填项", jsonField)
		case "max":
			message = fmt.Sprintf("字段 '%s' 长度不能超过 %s", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("字段 '%s' 长度不能少于 %s", jsonField, firstErr.Param())
		default:
			message = fmt.Sprintf("字段 '%s' 验证失败: %s", jsonField, firstErr.Tag())
		}

		// data 中带上出错字段，方便前端定位表单项
		c.JSON(http.StatusBadRequest, res.CustomResponse(
			res.WithSuccess(false),
			res.WithMessage(message),
			res.WithData(gin.H{"field": jsonField}),
		))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("参数错误: "+err.Error()),
	))
}

// toSnakeCase 将PascalCase转换为snake_case，连续大写视为一个缩写(IDList -> id_list)
func toSnakeCase(s string) string {
	runes := []rune(s)
	var result strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

// CurrentUserID 读取 JWTAuth 写入上下文的用户 ID
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// AbsoluteURL 把相对路径补全为带 scheme 和 host 的绝对地址
func AbsoluteURL(c *gin.Context, u string) string {
	if u == "" || !strings.HasPrefix(u, "/") {
		return u
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + u
}
