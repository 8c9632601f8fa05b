package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the single error envelope used by every endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

// TotalBody is returned by the /total endpoints.
type TotalBody struct {
	Total int64 `json:"total"`
}

// MessagesBody is returned by the queue read endpoint.
type MessagesBody struct {
	Success  bool     `json:"success"`
	Count    int      `json:"count"`
	Messages []string `json:"messages"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func Total(c *gin.Context, total int64) {
	c.JSON(200, TotalBody{Total: total})
}

func NoContent(c *gin.Context) {
	c.Status(204)
	c.Writer.WriteHeaderNow()
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}
