package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

// OperationLogSaver persists audit records.
type OperationLogSaver interface {
	SaveOperationLog(ctx context.Context, log *models.OperationLog) error
}

var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

var excludedPaths = map[string]bool{
	"/api/auth/validate": true,
	"/api/health":        true,
	"/api/db-status":     true,
	"/api/auth/login":    true,
}

// OperationLoggerMiddleware records every write call, with its sanitised
// request and response bodies, through saver.
func OperationLoggerMiddleware(saver OperationLogSaver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()

		blw := &bodyLogWriter{
			body:           bytes.NewBufferString(""),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		var requestBody interface{}
		if c.Request.Body != nil {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				utils.Logger.Error().Err(err).Msg("reading request body failed")
			} else {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
				requestBody = decodeBody(raw, c.Request.Header.Get("Content-Type"))
			}
		}

		c.Next()

		operatorID, operatorName := extractUserInfo(c)
		status := c.Writer.Status()

		var errorMessage string
		if len(c.Errors) > 0 {
			errorMessage = c.Errors.String()
		}

		entry := models.OperationLog{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			OperatorID:    operatorID,
			OperatorName:  operatorName,
			RequestBody:   sanitizeData(requestBody),
			ResponseData:  sanitizeData(decodeBody(blw.body.Bytes(), c.Writer.Header().Get("Content-Type"))),
			StatusCode:    status,
			Success:       status < http.StatusBadRequest,
			ErrorMessage:  errorMessage,
			OperationTime: startTime,
			ResponseTime:  time.Since(startTime).Milliseconds(),
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := saver.SaveOperationLog(ctx, &entry); err != nil {
			utils.Logger.Error().Err(err).Msg("saving operation log failed")

			minimal := entry
			minimal.RequestBody = nil
			minimal.ResponseData = nil
			minimal.ErrorMessage = fmt.Sprintf("journal détaillé non enregistré: %v", err)
			if saveErr := saver.SaveOperationLog(ctx, &minimal); saveErr != nil {
				utils.Logger.Error().Err(saveErr).Msg("saving minimal operation log failed")
			}
		}
	}
}

func shouldLogOperation(c *gin.Context) bool {
	if excludedPaths[c.Request.URL.Path] {
		return false
	}
	return loggedMethods[c.Request.Method]
}

func extractUserInfo(c *gin.Context) (string, string) {
	user, err := utils.GetUser(c)
	if err != nil {
		return "anonymous", "anonyme"
	}
	return user.ID, user.Username
}

func decodeBody(raw []byte, contentType string) interface{} {
	if len(raw) == 0 {
		return nil
	}
	if strings.Contains(contentType, "application/json") {
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err == nil {
			return decoded
		}
	}
	return string(raw)
}

// sanitizeBody masks secrets in a JSON request body before it is logged.
func sanitizeBody(raw []byte) []byte {
	var decoded interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &decoded) != nil {
		return raw
	}
	out, err := json.Marshal(sanitizeData(decoded))
	if err != nil {
		return raw
	}
	return out
}

// sanitizeData masks credential-like keys at any depth.
func sanitizeData(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		sanitized := make(map[string]interface{}, len(v))
		for k, val := range v {
			switch strings.ToLower(k) {
			case "password", "token", "authorization", "secret", "key":
				sanitized[k] = "******"
			default:
				sanitized[k] = sanitizeData(val)
			}
		}
		return sanitized
	case []interface{}:
		sanitized := make([]interface{}, len(v))
		for i, val := range v {
			sanitized[i] = sanitizeData(val)
		}
		return sanitized
	default:
		return data
	}
}
