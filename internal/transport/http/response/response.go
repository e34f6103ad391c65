package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 统一响应包络：{success, message, data?, pagination?} / 校验失败另带 errors
type Body struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Data       any          `json:"data,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Message: msg, Data: data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Body{Success: true, Message: msg, Data: data})
}

func Paged(c *gin.Context, msg string, data any, p Pagination) {
	c.JSON(http.StatusOK, Body{Success: true, Message: msg, Data: data, Pagination: &p})
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Body{Success: false, Message: msg})
}

func AbortFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Body{Success: false, Message: msg})
}

// Err 业务错误出口：分类一次映射到状态码，不再按消息文本猜
func Err(c *gin.Context, err error) {
	Fail(c, StatusOf(err), err.Error())
}

// BindErr 绑定/校验失败出口；validator 错误拆成逐字段列表
func BindErr(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: fe.Error(),
				Code:    fe.Tag(),
			})
		}
		c.JSON(http.StatusBadRequest, Body{Success: false, Message: "validation failed", Errors: fields})
		return
	}
	Fail(c, http.StatusBadRequest, err.Error())
}
