package logic

import (
	"context"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/indexer"
	"github.com/KamisAyaka/Crowdfunding/internal/logger"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// ViewLogic 读模型业务逻辑：一次触发对应一次完整的拉取加重放，
// 不在调用之间保留任何可变状态，刷新被打断也不会留下半成品。
type ViewLogic struct {
	indexer *indexer.Client
}

// NewViewLogic 创建读模型业务逻辑
func NewViewLogic(ix *indexer.Client) *ViewLogic {
	return &ViewLogic{indexer: ix}
}

// GetProject 拉取并重放一个项目的事件，返回完整项目视图
func (l *ViewLogic) GetProject(ctx context.Context, projectID string) (*model.ProjectView, error) {
	events, err := l.indexer.FetchProjectEvents(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return AssembleProject(events)
}

// GetDonationRecords 拉取并聚合一个项目的捐赠记录。
// 结项排名必须基于这里的新鲜输出，不能用刷新快照里的旧数据。
func (l *ViewLogic) GetDonationRecords(ctx context.Context, projectID string) (map[string]model.DonationRecord, error) {
	events, err := l.indexer.FetchProjectEvents(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if events.Created == nil {
		return nil, model.ErrNotFound
	}
	return AggregateDonations(events.Donations), nil
}

// GetProposal 拉取并重放单个提案
func (l *ViewLogic) GetProposal(ctx context.Context, projectID, proposalID string, now time.Time) (*model.ProposalView, error) {
	events, err := l.indexer.FetchProposalEvents(ctx, projectID, proposalID)
	if err != nil {
		return nil, err
	}
	return AssembleProposal(events, now)
}

// GetProposals 拉取并重放一个项目名下的全部提案。
// 单个提案的重放失败只跳过该提案并记日志，不拖垮整个列表。
func (l *ViewLogic) GetProposals(ctx context.Context, projectID string, now time.Time) ([]model.ProposalView, error) {
	bundles, err := l.indexer.FetchProjectProposals(ctx, projectID)
	if err != nil {
		return nil, err
	}

	views := make([]model.ProposalView, 0, len(bundles))
	for _, bundle := range bundles {
		view, err := AssembleProposal(bundle, now)
		if err != nil {
			logger.Error("Failed to assemble proposal for project %s: %v", projectID, err)
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}

// ListProjectIDs 列出全部项目ID
func (l *ViewLogic) ListProjectIDs(ctx context.Context) ([]string, error) {
	return l.indexer.FetchProjectIDs(ctx)
}
