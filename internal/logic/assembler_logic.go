package logic

import (
	"math/big"
	"sort"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// AssembleProject 把一个项目的事件批次合并成完整视图。
// 本函数只做合并与校验，不解释任何事件语义；校验不通过时返回错误，
// 绝不输出半成品视图。
// 前置条件：各事件序列已按 (区块号, 日志序号) 排好链上顺序。
func AssembleProject(events *model.ProjectEvents) (*model.ProjectView, error) {
	if events == nil || events.Created == nil {
		return nil, model.ErrNotFound
	}
	created := events.Created

	completed, isSuccessful := ClassifyCompletion(events.Completed, events.Failed)

	records := AggregateDonations(events.Donations)
	totalRaised := TotalRaised(events.Donations)

	ledger, err := ComputeLedger(
		created.ProjectID,
		totalRaised,
		SumDonorRecords(records),
		events.Withdrawals,
		events.AllowanceIncreases,
		isSuccessful,
	)
	if err != nil {
		return nil, err
	}

	view := &model.ProjectView{
		ID:             created.ProjectID,
		Creator:        created.Creator,
		Name:           created.Name,
		Description:    created.Description,
		Goal:           new(big.Int).Set(created.Goal),
		Deadline:       created.Deadline,
		TxHash:         created.TxHash,
		TotalAmount:    ledger.TotalAmount,
		CurrentAmount:  ledger.CurrentAmount,
		TotalWithdrawn: ledger.TotalWithdrawn,
		Allowance:      ledger.Allowance,
		Completed:      completed,
		IsSuccessful:   isSuccessful,
		Donations:      sortedRecords(records),
	}

	if err := validateProjectView(view); err != nil {
		return nil, err
	}
	return view, nil
}

// AssembleProposal 把一个提案的事件批次合并成提案视图
func AssembleProposal(events *model.ProposalEvents, now time.Time) (*model.ProposalView, error) {
	view, err := TallyProposal(events, now)
	if err != nil {
		return nil, err
	}
	if !view.Executed && view.Passed {
		return nil, model.NewIntegrityError(view.ProjectID,
			"提案 %s 未执行却带有通过标记", view.ProposalID)
	}
	return view, nil
}

// validateProjectView 输出前的最终一致性校验
func validateProjectView(v *model.ProjectView) error {
	check := new(big.Int).Add(v.CurrentAmount, v.TotalWithdrawn)
	if check.Cmp(v.TotalAmount) != 0 {
		return model.NewIntegrityError(v.ID,
			"当前余额 %s 加提款总额 %s 不等于总筹款额 %s",
			v.CurrentAmount.String(), v.TotalWithdrawn.String(), v.TotalAmount.String())
	}
	if v.CurrentAmount.Sign() < 0 {
		return model.NewIntegrityError(v.ID, "当前余额为负数 %s", v.CurrentAmount.String())
	}
	if !v.IsSuccessful && v.Allowance.Sign() != 0 {
		return model.NewIntegrityError(v.ID,
			"项目未成功但可提取额度为 %s", v.Allowance.String())
	}
	return nil
}

// sortedRecords 捐赠记录按地址升序输出，保证视图可复现
func sortedRecords(records map[string]model.DonationRecord) []model.DonationRecord {
	out := make([]model.DonationRecord, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Donor < out[j].Donor
	})
	return out
}
