package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封，失败时 data 恒为 null
type Response struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

func write(c *gin.Context, status int, data interface{}, message string, success bool) {
	c.JSON(status, Response{
		Status:  status,
		Data:    data,
		Message: message,
		Success: success,
	})
}

func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, data, message, true)
}

func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, data, message, true)
}

func Fail(c *gin.Context, status int, message string) {
	write(c, status, nil, message, false)
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
