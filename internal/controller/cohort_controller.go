package controller

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/service"
	"cohort_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CohortController 班级与课程表维护
type CohortController struct {
	CohortService   *service.CohortService
	MaterialService *service.MaterialService
}

func NewCohortController(cohortService *service.CohortService, materialService *service.MaterialService) *CohortController {
	return &CohortController{
		CohortService:   cohortService,
		MaterialService: materialService,
	}
}

// @Summary 创建班级
// @Description 建立班级课程表并登记班级，可选按上课日生成初始课表
// @Tags 班级
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cohort body service.CreateCohortRequest true "班级信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/cohorts [post]
func (c *CohortController) CreateCohort(ctx *gin.Context) {
	var req service.CreateCohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.Operator = util.OperatorID(ctx)

	cohort, err := c.CohortService.CreateCohort(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, cohort)
}

// @Summary 班级列表
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/cohorts [get]
func (c *CohortController) ListCohorts(ctx *gin.Context) {
	cohorts, err := c.CohortService.ListCohorts(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, cohorts)
}

// @Summary 班级详情
// @Description 返回班级登记信息和完整课表
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Param table path string true "班级课程表名"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/cohorts/{table} [get]
func (c *CohortController) GetCohort(ctx *gin.Context) {
	detail, err := c.CohortService.GetCohort(ctx.Request.Context(), ctx.Param("table"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 课表
// @Description 按周次、课次排序
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Param table path string true "班级课程表名"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/cohorts/{table}/sessions [get]
func (c *CohortController) ListSessions(ctx *gin.Context) {
	sessions, err := c.CohortService.ListSessions(ctx.Request.Context(), ctx.Param("table"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// @Summary 追加课程
// @Description 批量追加课程，星期由日期推出，插入后整表重排周次
// @Tags 班级
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param table path string true "班级课程表名"
// @Param sessions body []model.ClassSession true "课程列表"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/cohorts/{table}/sessions [post]
func (c *CohortController) AddSessions(ctx *gin.Context) {
	var sessions []model.ClassSession
	if err := ctx.ShouldBindJSON(&sessions); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	added, err := c.CohortService.AddSessions(ctx.Request.Context(), ctx.Param("table"), sessions)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, added)
}

// @Summary 修改课程内容
// @Description 只修改科目、资料和录像等描述字段，日期请使用调课接口
// @Tags 班级
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param table path string true "班级课程表名"
// @Param id path int true "课程ID"
// @Param patch body service.SessionContentPatch true "要修改的字段"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/cohorts/{table}/sessions/{id} [patch]
func (c *CohortController) UpdateSession(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var patch service.SessionContentPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.CohortService.UpdateSessionContent(ctx.Request.Context(), ctx.Param("table"), id, patch)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary 上传课程资料
// @Description kind 为 initial（课前资料）、session（课堂资料）或 recording（录像）
// @Tags 班级
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param table path string true "班级课程表名"
// @Param id path int true "课程ID"
// @Param kind formData string true "资料类型"
// @Param file formData file true "文件"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/cohorts/{table}/sessions/{id}/materials [post]
func (c *CohortController) UploadMaterial(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "请选择要上传的文件")
		return
	}

	result, err := c.MaterialService.UploadMaterial(ctx.Request.Context(), ctx.Param("table"), id, ctx.PostForm("kind"), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
