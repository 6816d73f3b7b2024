package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCacheFlusher struct {
	enabled     bool
	err         error
	lastPattern string
}

func (f *fakeCacheFlusher) Enabled() bool {
	return f.enabled
}

func (f *fakeCacheFlusher) Invalidate(_ context.Context, pattern string) error {
	f.lastPattern = pattern
	return f.err
}

func TestMetricsHandlerFlushBundleCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	flusher := &fakeCacheFlusher{enabled: true}
	handler := NewMetricsHandler(nil, nil, flusher)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/system/cache", nil)

	handler.FlushBundleCache(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bundle:*", flusher.lastPattern)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Data["flushed"])
}

func TestMetricsHandlerFlushBundleCacheDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	flusher := &fakeCacheFlusher{enabled: false}
	handler := NewMetricsHandler(nil, nil, flusher)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/system/cache", nil)

	handler.FlushBundleCache(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, flusher.lastPattern)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Data["flushed"])
}

func TestMetricsHandlerFlushBundleCacheError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	flusher := &fakeCacheFlusher{enabled: true, err: errors.New("redis down")}
	handler := NewMetricsHandler(nil, nil, flusher)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/system/cache", nil)

	handler.FlushBundleCache(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
