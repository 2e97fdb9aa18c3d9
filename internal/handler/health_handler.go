package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/dal"
)

// HealthHandler 存活探针
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Check 依赖连通性检查，任一依赖不可用返回 503
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if sqlDB, err := dal.MainDB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["main_db"] = "down"
		healthy = false
	} else {
		checks["main_db"] = "up"
	}
	if sqlDB, err := dal.LedgerDB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["ledger_db"] = "down"
		healthy = false
	} else {
		checks["ledger_db"] = "up"
	}
	if err := dal.RedisClient.Ping(ctx).Err(); err != nil {
		checks["redis"] = "down"
		healthy = false
	} else {
		checks["redis"] = "up"
	}

	if !healthy {
		c.JSON(503, gin.H{"status": "degraded", "checks": checks})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "checks": checks})
}
