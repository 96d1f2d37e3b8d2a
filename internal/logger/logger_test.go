package logger_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4liaghaie/sait/internal/logger"
)

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "bogus"} {
		l, err := logger.New(lvl, false)
		require.NoError(t, err, lvl)
		l.Info("hello", logger.String("level", lvl))
	}
	l, err := logger.New("debug", true)
	require.NoError(t, err)
	l.With(logger.Int("n", 1)).Debug("pretty")
}

func TestMiddleware_PassesThrough(t *testing.T) {
	h := logger.Middleware(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
