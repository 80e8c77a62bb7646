package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Prompt string `json:"prompt" binding:"required"`
	Mode   string `json:"mode" binding:"omitempty,oneof=fast slow"`
}

func bind(body string) error {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var p payload
	return c.ShouldBindJSON(&p)
}

func TestParseError(t *testing.T) {
	v := New()

	details := v.ParseError(bind(`{}`))
	assert.Equal(t, "prompt is a required field", details["prompt"])

	details = v.ParseError(bind(`{"prompt":"x","mode":"medium"}`))
	assert.Equal(t, "must be one of [fast, slow]", details["mode"])

	details = v.ParseError(bind(`{"prompt": 42}`))
	assert.Equal(t, "must be a string", details["prompt"])

	details = v.ParseError(bind(`{not json`))
	assert.Contains(t, details, "body")
}
