package handler

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/contract"
	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CallHandler 交易调用准备接口。
// 每个接口组装一条调用描述并留档，签名和提交由前端钱包完成。
type CallHandler struct {
	viewLogic  *logic.ViewLogic
	preparer   *contract.Preparer
	callRecord *logic.CallRecordLogic
}

func NewCallHandler(db *gorm.DB, viewLogic *logic.ViewLogic, preparer *contract.Preparer) *CallHandler {
	return &CallHandler{
		viewLogic:  viewLogic,
		preparer:   preparer,
		callRecord: logic.NewCallRecordLogic(db),
	}
}

// PrepareComplete 准备结项调用。
// 排名用本次请求刚聚合出的捐赠记录同步计算，结果随调用一起冻结留档。
func (h *CallHandler) PrepareComplete(c *gin.Context) {
	projectID := c.Param("id")

	records, err := h.viewLogic.GetDonationRecords(c.Request.Context(), projectID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	call, top, err := h.preparer.PrepareCompleteProject(projectID, records)
	if err != nil {
		FailWithError(c, err)
		return
	}

	if _, err := h.callRecord.SaveCall(projectID, "", call); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "结项调用已准备", gin.H{
		"call":       call,
		"top_donors": top,
	})
}

// PrepareWithdraw 准备提款调用
func (h *CallHandler) PrepareWithdraw(c *gin.Context) {
	projectID := c.Param("id")

	var req struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的提款金额")
		return
	}

	call, err := h.preparer.PrepareWithdraw(projectID, amount)
	if err != nil {
		FailWithError(c, err)
		return
	}

	if _, err := h.callRecord.SaveCall(projectID, "", call); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "提款调用已准备", gin.H{"call": call})
}

// PrepareRefund 准备退款调用
func (h *CallHandler) PrepareRefund(c *gin.Context) {
	projectID := c.Param("id")

	call, err := h.preparer.PrepareRefund(projectID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	if _, err := h.callRecord.SaveCall(projectID, "", call); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "退款调用已准备", gin.H{"call": call})
}

// PrepareCreateProposal 准备创建提案调用，校验单个未执行提案的约束
func (h *CallHandler) PrepareCreateProposal(c *gin.Context) {
	projectID := c.Param("id")

	var req struct {
		Amount       string `json:"amount" binding:"required"`
		DurationDays int64  `json:"duration_days" binding:"required"`
		Description  string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的申请金额")
		return
	}

	proposals, err := h.viewLogic.GetProposals(c.Request.Context(), projectID, time.Now())
	if err != nil {
		FailWithError(c, err)
		return
	}

	call, err := h.preparer.PrepareCreateProposal(projectID, amount, req.DurationDays, req.Description, proposals)
	if err != nil {
		FailWithError(c, err)
		return
	}

	if _, err := h.callRecord.SaveCall(projectID, "", call); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "创建提案调用已准备", gin.H{"call": call})
}

// PrepareVote 准备投票调用
func (h *CallHandler) PrepareVote(c *gin.Context) {
	projectID := c.Param("id")
	proposalID := c.Param("proposalId")

	var req struct {
		Support *bool `json:"support" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	call, err := h.preparer.PrepareVote(projectID, proposalID, *req.Support)
	if err != nil {
		FailWithError(c, err)
		return
	}

	if _, err := h.callRecord.SaveCall(projectID, proposalID, call); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "投票调用已准备", gin.H{"call": call})
}

// PrepareExecute 准备执行提案调用
func (h *CallHandler) PrepareExecute(c *gin.Context) {
	projectID := c.Param("id")
	proposalID := c.Param("proposalId")

	call, err := h.preparer.PrepareExecuteProposal(projectID, proposalID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	if _, err := h.callRecord.SaveCall(projectID, proposalID, call); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "执行提案调用已准备", gin.H{"call": call})
}

// ListCalls 查询调用留档
func (h *CallHandler) ListCalls(c *gin.Context) {
	projectID := c.Query("project_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	records, total, err := h.callRecord.ListCalls(projectID, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calls":     records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
