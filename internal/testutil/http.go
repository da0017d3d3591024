package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// HTTPTestHelper drives a gin router in tests, carrying an optional
// bearer token across requests.
type HTTPTestHelper struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

// NewHTTPTestHelper creates a new HTTP test helper
func NewHTTPTestHelper(t *testing.T, router *gin.Engine) *HTTPTestHelper {
	gin.SetMode(gin.TestMode)
	return &HTTPTestHelper{t: t, router: router}
}

// SetToken sets the bearer token attached to subsequent requests
func (h *HTTPTestHelper) SetToken(token string) {
	h.token = token
}

// PostJSON performs a POST request with JSON payload
func (h *HTTPTestHelper) PostJSON(url string, payload interface{}) *httptest.ResponseRecorder {
	return h.doJSON(http.MethodPost, url, payload)
}

// DeleteJSON performs a DELETE request with an optional JSON payload
func (h *HTTPTestHelper) DeleteJSON(url string, payload interface{}) *httptest.ResponseRecorder {
	return h.doJSON(http.MethodDelete, url, payload)
}

// GetJSON performs a GET request expecting JSON response
func (h *HTTPTestHelper) GetJSON(url string) *httptest.ResponseRecorder {
	return h.doJSON(http.MethodGet, url, nil)
}

func (h *HTTPTestHelper) doJSON(method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(h.t, err, "Failed to marshal JSON payload")
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(h.t, err, "Failed to create HTTP request")

	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)
	return recorder
}

// DecodeJSON unmarshals a recorded JSON body into target
func (h *HTTPTestHelper) DecodeJSON(recorder *httptest.ResponseRecorder, target interface{}) {
	require.NoError(h.t, json.Unmarshal(recorder.Body.Bytes(), target), "Failed to decode JSON response")
}
