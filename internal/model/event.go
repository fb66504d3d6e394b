package model

import (
	"math/big"
	"sort"
)

// EventMeta 链上事件的定位信息，排序键为 (BlockNum, LogIndex)
type EventMeta struct {
	TxHash   string `json:"tx_hash"`
	BlockNum uint64 `json:"block_num"`
	LogIndex uint   `json:"log_index"`
}

// Before 判断事件在链上顺序中是否早于另一事件
func (m EventMeta) Before(other EventMeta) bool {
	if m.BlockNum != other.BlockNum {
		return m.BlockNum < other.BlockNum
	}
	return m.LogIndex < other.LogIndex
}

// ProjectCreatedEvent 项目创建事件
type ProjectCreatedEvent struct {
	EventMeta
	ProjectID   string   `json:"project_id"`
	Creator     string   `json:"creator"` // 小写地址
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Goal        *big.Int `json:"goal"` // wei
	Deadline    int64    `json:"deadline"` // unix秒
}

// DonationEvent 捐赠事件
// Amount 是该捐赠人在合约中的累计捐赠额（不是增量），
// CurrentAmount 是事件发生时项目的总筹款额
type DonationEvent struct {
	EventMeta
	ProjectID     string   `json:"project_id"`
	Donor         string   `json:"donor"`
	Amount        *big.Int `json:"amount"`
	CurrentAmount *big.Int `json:"current_amount"`
}

// WithdrawalEvent 提款事件
type WithdrawalEvent struct {
	EventMeta
	ProjectID string   `json:"project_id"`
	Amount    *big.Int `json:"amount"`
}

// AllowanceIncreasedEvent 额度调整事件，Amount 是绝对值而非增量
type AllowanceIncreasedEvent struct {
	EventMeta
	ProjectID string   `json:"project_id"`
	Amount    *big.Int `json:"amount"`
}

// ProjectCompletedEvent 项目结束事件
type ProjectCompletedEvent struct {
	EventMeta
	ProjectID    string `json:"project_id"`
	IsSuccessful bool   `json:"is_successful"`
}

// ProjectFailedEvent 项目失败事件，出现即覆盖之前的成功标记
type ProjectFailedEvent struct {
	EventMeta
	ProjectID string `json:"project_id"`
}

// ProposalCreatedEvent 提案创建事件
type ProposalCreatedEvent struct {
	EventMeta
	ProjectID    string   `json:"project_id"`
	ProposalID   string   `json:"proposal_id"`
	Description  string   `json:"description"`
	Amount       *big.Int `json:"amount"`
	VoteDeadline int64    `json:"vote_deadline"`
}

// VoteEvent 投票事件，每条事件按权重计入一次，不按投票人去重
type VoteEvent struct {
	EventMeta
	ProjectID  string   `json:"project_id"`
	ProposalID string   `json:"proposal_id"`
	Voter      string   `json:"voter"`
	Support    bool     `json:"support"`
	Amount     *big.Int `json:"amount"`
}

// ProposalExecutedEvent 提案执行事件，出现后提案进入终态
type ProposalExecutedEvent struct {
	EventMeta
	ProjectID  string `json:"project_id"`
	ProposalID string `json:"proposal_id"`
	Passed     bool   `json:"passed"`
}

// ProjectEvents 一个项目的全部事件，由索引服务查询后按链上顺序排好
type ProjectEvents struct {
	Created            *ProjectCreatedEvent
	Donations          []DonationEvent
	Withdrawals        []WithdrawalEvent
	AllowanceIncreases []AllowanceIncreasedEvent
	Completed          *ProjectCompletedEvent
	Failed             *ProjectFailedEvent
}

// ProposalEvents 一个提案的全部事件
type ProposalEvents struct {
	Created  *ProposalCreatedEvent
	Votes    []VoteEvent
	Executed *ProposalExecutedEvent
}

// SortDonations 按 (区块号, 日志序号) 排序捐赠事件
func SortDonations(events []DonationEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Before(events[j].EventMeta)
	})
}

// SortWithdrawals 按 (区块号, 日志序号) 排序提款事件
func SortWithdrawals(events []WithdrawalEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Before(events[j].EventMeta)
	})
}

// SortAllowanceIncreases 按 (区块号, 日志序号) 排序额度调整事件
func SortAllowanceIncreases(events []AllowanceIncreasedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Before(events[j].EventMeta)
	})
}

// SortVotes 按 (区块号, 日志序号) 排序投票事件
func SortVotes(events []VoteEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Before(events[j].EventMeta)
	})
}
