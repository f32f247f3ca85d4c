package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("database handle not configured")

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": h.Env.ProjectName + " is running",
		"version": h.Env.Version,
		"docs":    h.Env.APIPrefix + "/routes",
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.Env.ProjectName,
		"version": h.Env.Version,
	})
}

// DatabaseHealth pings the store. The failure reason is logged only.
func (h *Handler) DatabaseHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	var err error
	if h.DB == nil {
		err = errNoDatabase
	} else {
		err = h.DB.PingContext(ctx)
	}
	if err != nil {
		h.Log.Warn("database health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"service":  h.Env.ProjectName,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"service":  h.Env.ProjectName,
	})
}

func (h *Handler) Routes(c *gin.Context) {
	h.mu.RLock()
	r := h.engine
	h.mu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "unavailable", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method": rt.Method,
			"path":   rt.Path,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

func (h *Handler) NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "not_found", "route not found", gin.H{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
}
