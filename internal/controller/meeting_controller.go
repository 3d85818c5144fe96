package controller

import (
	"cohort_backend/internal/service"
	"cohort_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MeetingController struct {
	MeetingService *service.MeetingService
}

func NewMeetingController(meetingService *service.MeetingService) *MeetingController {
	return &MeetingController{MeetingService: meetingService}
}

// @Summary 创建在线课堂
// @Description 通过会议服务创建预约会议，可关联到某节课
// @Tags 在线课堂
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meeting body service.CreateMeetingRequest true "会议信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/meetings [post]
func (c *MeetingController) CreateMeeting(ctx *gin.Context) {
	var req service.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.Operator = util.OperatorID(ctx)

	meeting, err := c.MeetingService.CreateMeeting(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, meeting)
}

// @Summary 在线课堂列表
// @Tags 在线课堂
// @Produce json
// @Security BearerAuth
// @Param tableName query string false "班级课程表名"
// @Success 200 {object} util.Response
// @Router /api/meetings [get]
func (c *MeetingController) ListMeetings(ctx *gin.Context) {
	meetings, err := c.MeetingService.ListMeetings(ctx.Request.Context(), ctx.Query("tableName"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, meetings)
}
