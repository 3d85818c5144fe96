package controller

import (
	"cohort_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
	// CheckFFmpeg 启用录像探测时检查 ffmpeg
	CheckFFmpeg bool
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, checkFFmpeg bool) *HealthController {
	return &HealthController{DB: db, Redis: rdb, CheckFFmpeg: checkFFmpeg}
}

// @Summary 健康检查
// @Description 检查数据库、Redis 和 ffmpeg 状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up"}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			// Redis 故障不影响整体状态
			components["redis"] = "down"
		} else {
			components["redis"] = "up"
		}
	}

	if c.CheckFFmpeg {
		if version, err := util.FFmpegVersion(); err != nil {
			components["ffmpeg"] = "unavailable"
		} else {
			components["ffmpeg"] = version
		}
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
