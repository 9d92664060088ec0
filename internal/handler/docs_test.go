package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentation(t *testing.T) {
	c, rec := jsonCtx(http.MethodGet, "/", "")
	require.NoError(t, Documentation(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Get documentation successfully", body["message"])

	doc := body["documentation"].(map[string]any)
	assert.Len(t, doc["auth"], 7)
	assert.Len(t, doc["posts"], 5)
	assert.Len(t, doc["profile"], 1)
	assert.Len(t, doc["role"], 4)

	// Spot-check one entry end to end.
	signup := doc["auth"].([]any)[0].(map[string]any)
	assert.Equal(t, "POST", signup["method"])
	assert.Equal(t, "/api/auth/signup", signup["path"])
	assert.Equal(t, "None", signup["cookies"])
	assert.Contains(t, signup["body"], "email")
}
