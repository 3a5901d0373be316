package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "SingleOrigin",
			input:    "https://app.example.com",
			expected: []string{"https://app.example.com"},
		},
		{
			name:     "MultipleOriginsWithWhitespace",
			input:    " https://app.example.com , https://admin.example.com ",
			expected: []string{"https://app.example.com", "https://admin.example.com"},
		},
		{
			name:     "SkipsEmptyEntries",
			input:    "https://app.example.com,,https://admin.example.com,",
			expected: []string{"https://app.example.com", "https://admin.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrigins(tt.input))
		})
	}
}

func TestCreateCORSMiddleware(t *testing.T) {
	t.Run("DisabledReturnsNil", func(t *testing.T) {
		middleware := createCORSMiddleware(false, "https://app.example.com", testLogger())
		assert.Nil(t, middleware)
	})

	t.Run("EnabledWithoutOriginsReturnsNil", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "", testLogger())
		assert.Nil(t, middleware)
	})

	t.Run("EnabledWithOriginsAppliesHeaders", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		middleware := createCORSMiddleware(true, "https://app.example.com", testLogger())
		require.NotNil(t, middleware)

		router := gin.New()
		router.Use(middleware)
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/test", nil)
		request.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "https://app.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("EnabledWithOriginsRejectsUnknownOrigin", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		middleware := createCORSMiddleware(true, "https://app.example.com", testLogger())
		require.NotNil(t, middleware)

		router := gin.New()
		router.Use(middleware)
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/test", nil)
		request.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(recorder, request)

		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})
}
