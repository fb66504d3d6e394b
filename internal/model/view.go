package model

import "math/big"

// DonationRecord 单个捐赠人的最终捐赠记录
// CumulativeAmount 取该捐赠人按链上顺序最后一条事件携带的累计额
type DonationRecord struct {
	Donor            string   `json:"donor"`
	CumulativeAmount *big.Int `json:"cumulative_amount"`
	LastTxHash       string   `json:"last_tx_hash"`
}

// ProjectView 由事件重放得到的项目视图，每次刷新整体重建，不做原地修改
type ProjectView struct {
	ID          string   `json:"id"`
	Creator     string   `json:"creator"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Goal        *big.Int `json:"goal"`
	Deadline    int64    `json:"deadline"`
	TxHash      string   `json:"tx_hash,omitempty"`

	TotalAmount    *big.Int `json:"total_amount"`
	CurrentAmount  *big.Int `json:"current_amount"`
	TotalWithdrawn *big.Int `json:"total_withdrawn"`
	Allowance      *big.Int `json:"allowance"`
	Completed      bool     `json:"completed"`
	IsSuccessful   bool     `json:"is_successful"`

	Donations []DonationRecord `json:"donations"`
}

// ProposalState 提案生命周期状态
type ProposalState string

const (
	ProposalStateVoting            ProposalState = "voting"             // 未执行且未到投票截止时间
	ProposalStateAwaitingExecution ProposalState = "awaiting_execution" // 未执行且已过截止时间
	ProposalStateExecuted          ProposalState = "executed"           // 已执行，终态
)

// ProposalView 由事件重放得到的提案视图
type ProposalView struct {
	ProjectID    string   `json:"project_id"`
	ProposalID   string   `json:"proposal_id"`
	Description  string   `json:"description"`
	Amount       *big.Int `json:"amount"`
	VoteDeadline int64    `json:"vote_deadline"`

	YesVotesAmount *big.Int      `json:"yes_votes_amount"`
	NoVotesAmount  *big.Int      `json:"no_votes_amount"`
	Executed       bool          `json:"executed"`
	Passed         bool          `json:"passed"` // 仅在 Executed 时有意义
	State          ProposalState `json:"state"`
}

// TopDonor 排名后的捐赠人及其累计捐赠额
type TopDonor struct {
	Donor  string   `json:"donor"`
	Amount *big.Int `json:"amount"`
}

// CallRequest 交付给交易提交方的调用描述，本服务只组装参数，不签名不上链
type CallRequest struct {
	Contract string        `json:"contract"` // 合约名称 (Crowdfunding, ProposalGovernance)
	Address  string        `json:"address"`  // 合约地址
	Method   string        `json:"method"`
	Args     []interface{} `json:"args"`
	Calldata string        `json:"calldata"` // ABI编码后的十六进制数据
}
