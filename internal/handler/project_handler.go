package handler

import (
	"net/http"

	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/KamisAyaka/Crowdfunding/internal/scheduler"
	"github.com/KamisAyaka/Crowdfunding/internal/view"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	viewLogic  *logic.ViewLogic
	holder     *view.Holder
	refreshJob *scheduler.ViewRefreshJob
}

func NewProjectHandler(viewLogic *logic.ViewLogic, holder *view.Holder, refreshJob *scheduler.ViewRefreshJob) *ProjectHandler {
	return &ProjectHandler{
		viewLogic:  viewLogic,
		holder:     holder,
		refreshJob: refreshJob,
	}
}

// GetProjects 获取项目列表，读取最近一次完整刷新的快照
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	snapshot := h.holder.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"projects":     snapshot.Projects,
		"total":        len(snapshot.Projects),
		"refreshed_at": snapshot.RefreshedAt,
	})
}

// RefreshProjects 手动触发一趟完整刷新
func (h *ProjectHandler) RefreshProjects(c *gin.Context) {
	if err := h.refreshJob.Refresh(c.Request.Context()); err != nil {
		FailWithError(c, err)
		return
	}

	snapshot := h.holder.Snapshot()
	SuccessResponse(c, http.StatusOK, "刷新完成", gin.H{
		"total":        len(snapshot.Projects),
		"refreshed_at": snapshot.RefreshedAt,
	})
}

// GetProject 获取单个项目视图，每次请求都是一趟新的拉取加重放
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.viewLogic.GetProject(c.Request.Context(), projectID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// GetProjectDonations 获取项目的捐赠记录
func (h *ProjectHandler) GetProjectDonations(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.viewLogic.GetProject(c.Request.Context(), projectID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donations": project.Donations,
		"total":     len(project.Donations),
	})
}

// GetTopDonors 获取项目当前的捐赠排名（仅预览，结项时会另行同步计算）
func (h *ProjectHandler) GetTopDonors(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	records, err := h.viewLogic.GetDonationRecords(c.Request.Context(), projectID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top_donors": logic.TopDonors(records, logic.TopDonorCount),
	})
}
