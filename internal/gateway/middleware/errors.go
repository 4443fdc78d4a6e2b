package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func abortWithError(c *gin.Context, code int, errText, message string) {
	c.AbortWithStatusJSON(code, errorBody{Error: errText, Message: message})
}

// writeJSONError is for the net/http handlers the limiter driver calls.
func writeJSONError(w http.ResponseWriter, code int, errText, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errText, Message: message})
}
