package controller

import (
	"cohort_backend/internal/service"
	"cohort_backend/internal/util"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ScheduleController 调课接口。错误统一以 {"error": "..."} 返回
type ScheduleController struct {
	RescheduleService *service.RescheduleService
}

func NewScheduleController(rescheduleService *service.RescheduleService) *ScheduleController {
	return &ScheduleController{RescheduleService: rescheduleService}
}

// ApplyShiftResponse 全部更新成功
type ApplyShiftResponse struct {
	Success      bool                    `json:"success"`
	Message      string                  `json:"message"`
	UpdatedCount int                     `json:"updatedCount"`
	Updates      []service.SessionUpdate `json:"updates"`
}

// PartialShiftResponse 部分更新失败，HTTP 207
type PartialShiftResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	UpdatedCount int      `json:"updatedCount"`
	Errors       []string `json:"errors"`
}

type PreviewShiftResponse struct {
	Success bool `json:"success"`
	service.ShiftPreview
}

// @Summary 调整课程日期
// @Description 把一节课移到新日期，顺延其后所有课程并重排周次/课次
// @Tags 调课
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ShiftRequest true "调课参数"
// @Success 200 {object} ApplyShiftResponse
// @Success 207 {object} PartialShiftResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/reschedule [post]
func (c *ScheduleController) ApplyShift(ctx *gin.Context) {
	var req service.ShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Operator = util.OperatorID(ctx)

	result, err := c.RescheduleService.Apply(ctx.Request.Context(), req)
	if err != nil {
		util.AbortWithError(ctx, err)
		return
	}

	if !result.Batch.OK() {
		ctx.JSON(http.StatusMultiStatus, PartialShiftResponse{
			Success:      false,
			Message:      fmt.Sprintf("Rescheduled with errors: %d updated, %d failed", result.UpdatedCount(), len(result.Batch.Failed)),
			UpdatedCount: result.UpdatedCount(),
			Errors:       result.Batch.Messages(),
		})
		return
	}

	ctx.JSON(http.StatusOK, ApplyShiftResponse{
		Success:      true,
		Message:      fmt.Sprintf("Successfully rescheduled %d sessions", result.UpdatedCount()),
		UpdatedCount: result.UpdatedCount(),
		Updates:      result.Updates,
	})
}

// @Summary 预览调课结果
// @Description 计算调课后的日期与周次，不修改数据
// @Tags 调课
// @Produce json
// @Security BearerAuth
// @Param tableName query string true "班级课程表名"
// @Param sessionId query int true "课程ID"
// @Param newDate query string true "新日期 YYYY-MM-DD"
// @Success 200 {object} PreviewShiftResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/reschedule/preview [get]
func (c *ScheduleController) PreviewShift(ctx *gin.Context) {
	var req service.ShiftRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview, err := c.RescheduleService.Preview(ctx.Request.Context(), req)
	if err != nil {
		util.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, PreviewShiftResponse{Success: true, ShiftPreview: *preview})
}

// @Summary 按日期重排周次
// @Description 手工修改日期后，按当前日期整表重排周次/课次
// @Tags 调课
// @Produce json
// @Security BearerAuth
// @Param table path string true "班级课程表名"
// @Success 200 {object} util.Response
// @Router /api/cohorts/{table}/renumber [post]
func (c *ScheduleController) Renumber(ctx *gin.Context) {
	changed, batch, err := c.RescheduleService.Renumber(ctx.Request.Context(), ctx.Param("table"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if !batch.OK() {
		ctx.JSON(http.StatusMultiStatus, util.Response{
			Code:    http.StatusMultiStatus,
			Message: "renumbered with errors",
			Data:    gin.H{"renumbered": changed, "errors": batch.Messages()},
		})
		return
	}

	util.Success(ctx, gin.H{"renumbered": changed})
}

// @Summary 调课记录
// @Description 按时间倒序返回最近的调课记录
// @Tags 调课
// @Produce json
// @Security BearerAuth
// @Param table path string true "班级课程表名"
// @Param limit query int false "条数，默认 20，最多 200"
// @Success 200 {object} util.Response{data=[]model.ShiftLog}
// @Failure 404 {object} util.Response
// @Router /api/cohorts/{table}/shifts [get]
func (c *ScheduleController) ListShifts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	logs, err := c.RescheduleService.History(ctx.Request.Context(), ctx.Param("table"), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, logs)
}
