package handler

import (
	"net/http"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	viewLogic *logic.ViewLogic
}

func NewProposalHandler(viewLogic *logic.ViewLogic) *ProposalHandler {
	return &ProposalHandler{viewLogic: viewLogic}
}

// GetProposals 获取项目名下的提案列表
func (h *ProposalHandler) GetProposals(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	proposals, err := h.viewLogic.GetProposals(c.Request.Context(), projectID, time.Now())
	if err != nil {
		FailWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": proposals,
		"total":     len(proposals),
	})
}

// GetProposal 获取单个提案视图
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	projectID := c.Param("id")
	proposalID := c.Param("proposalId")
	if projectID == "" || proposalID == "" {
		ErrorResponse(c, http.StatusBadRequest, "无效的提案ID")
		return
	}

	proposal, err := h.viewLogic.GetProposal(c.Request.Context(), projectID, proposalID, time.Now())
	if err != nil {
		FailWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}
