package logic

import (
	"math/big"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// TallyProposal 由投票事件和执行事件重放出提案视图。
//
// 赞成/反对票额是对应 support 标记的事件权重之和，同一投票人的多条事件
// 各计一次，不做去重——事件日志里每条事件对应一次有效投票。
// 状态机：未执行且未到截止时间为 voting，未执行且已过截止时间为
// awaiting_execution，出现执行事件后进入 executed 终态。
// passed 只取执行事件携带的标记，未执行时恒为 false。
func TallyProposal(events *model.ProposalEvents, now time.Time) (*model.ProposalView, error) {
	if events == nil || events.Created == nil {
		return nil, model.ErrNotFound
	}
	created := events.Created

	yes := big.NewInt(0)
	no := big.NewInt(0)
	for _, v := range events.Votes {
		if v.Support {
			yes.Add(yes, v.Amount)
		} else {
			no.Add(no, v.Amount)
		}
	}

	view := &model.ProposalView{
		ProjectID:      created.ProjectID,
		ProposalID:     created.ProposalID,
		Description:    created.Description,
		Amount:         new(big.Int).Set(created.Amount),
		VoteDeadline:   created.VoteDeadline,
		YesVotesAmount: yes,
		NoVotesAmount:  no,
	}

	switch {
	case events.Executed != nil:
		view.Executed = true
		view.Passed = events.Executed.Passed
		view.State = model.ProposalStateExecuted
	case now.Unix() < created.VoteDeadline:
		view.State = model.ProposalStateVoting
	default:
		view.State = model.ProposalStateAwaitingExecution
	}

	return view, nil
}

// LatestProposal 返回项目提案列表中最新创建的一条。
// 创建新提案前要求它已执行——一个项目同一时刻至多只有一个未执行提案。
func LatestProposal(proposals []model.ProposalView) *model.ProposalView {
	if len(proposals) == 0 {
		return nil
	}
	latest := &proposals[0]
	for i := 1; i < len(proposals); i++ {
		if compareProposalID(proposals[i].ProposalID, latest.ProposalID) > 0 {
			latest = &proposals[i]
		}
	}
	return latest
}

// compareProposalID 提案ID是链上的自增数字，按数值比较，避免 "10" < "9" 的字典序陷阱
func compareProposalID(a, b string) int {
	ai, aok := new(big.Int).SetString(a, 10)
	bi, bok := new(big.Int).SetString(b, 10)
	if aok && bok {
		return ai.Cmp(bi)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
