package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope successful JSON endpoints answer with. Data is
// always present, so an empty result renders as [].
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func fail(c *gin.Context, code int, errText, message string) {
	c.JSON(code, ErrorResponse{Success: false, Error: errText, Message: message})
}
