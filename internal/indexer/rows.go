package indexer

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// connection GraphQL连接结构，索引服务把结果都包在 nodes 里
type connection[T any] struct {
	Nodes []T `json:"nodes"`
}

// rawMeta 事件定位字段
type rawMeta struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	LogIndex    uint   `json:"logIndex"`
}

func (m rawMeta) toMeta() model.EventMeta {
	return model.EventMeta{
		TxHash:   m.TxHash,
		BlockNum: m.BlockNumber,
		LogIndex: m.LogIndex,
	}
}

type rawProjectCreated struct {
	rawMeta
	ID          string `json:"id"`
	Creator     string `json:"creator"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Goal        string `json:"goal"`
	Deadline    int64  `json:"deadline"`
}

func (r rawProjectCreated) toEvent() (*model.ProjectCreatedEvent, error) {
	creator, err := normalizeAddress(r.Creator)
	if err != nil {
		return nil, fmt.Errorf("creator: %w", err)
	}
	goal, err := parseWei(r.Goal)
	if err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	return &model.ProjectCreatedEvent{
		EventMeta:   r.toMeta(),
		ProjectID:   r.ID,
		Creator:     creator,
		Name:        r.Name,
		Description: r.Description,
		Goal:        goal,
		Deadline:    r.Deadline,
	}, nil
}

type rawDonation struct {
	rawMeta
	Donor         string `json:"donor"`
	Amount        string `json:"amount"`
	CurrentAmount string `json:"currentAmount"`
}

func (r rawDonation) toEvent(projectID string) (*model.DonationEvent, error) {
	donor, err := normalizeAddress(r.Donor)
	if err != nil {
		return nil, fmt.Errorf("donor: %w", err)
	}
	amount, err := parseWei(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	currentAmount, err := parseWei(r.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("currentAmount: %w", err)
	}
	return &model.DonationEvent{
		EventMeta:     r.toMeta(),
		ProjectID:     projectID,
		Donor:         donor,
		Amount:        amount,
		CurrentAmount: currentAmount,
	}, nil
}

type rawWithdrawal struct {
	rawMeta
	Amount string `json:"amount"`
}

func (r rawWithdrawal) toEvent(projectID string) (*model.WithdrawalEvent, error) {
	amount, err := parseWei(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	return &model.WithdrawalEvent{
		EventMeta: r.toMeta(),
		ProjectID: projectID,
		Amount:    amount,
	}, nil
}

type rawAllowanceIncrease struct {
	rawMeta
	Amount string `json:"amount"`
}

func (r rawAllowanceIncrease) toEvent(projectID string) (*model.AllowanceIncreasedEvent, error) {
	amount, err := parseWei(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	return &model.AllowanceIncreasedEvent{
		EventMeta: r.toMeta(),
		ProjectID: projectID,
		Amount:    amount,
	}, nil
}

type rawProjectCompleted struct {
	rawMeta
	IsSuccessful bool `json:"isSuccessful"`
}

func (r rawProjectCompleted) toEvent(projectID string) *model.ProjectCompletedEvent {
	return &model.ProjectCompletedEvent{
		EventMeta:    r.toMeta(),
		ProjectID:    projectID,
		IsSuccessful: r.IsSuccessful,
	}
}

type rawProjectFailed struct {
	rawMeta
}

func (r rawProjectFailed) toEvent(projectID string) *model.ProjectFailedEvent {
	return &model.ProjectFailedEvent{
		EventMeta: r.toMeta(),
		ProjectID: projectID,
	}
}

type rawProposalCreated struct {
	rawMeta
	ProjectID    string `json:"projectId"`
	ProposalID   string `json:"proposalId"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	VoteDeadline int64  `json:"voteDeadline"`
}

func (r rawProposalCreated) toEvent() (*model.ProposalCreatedEvent, error) {
	amount, err := parseWei(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	return &model.ProposalCreatedEvent{
		EventMeta:    r.toMeta(),
		ProjectID:    r.ProjectID,
		ProposalID:   r.ProposalID,
		Description:  r.Description,
		Amount:       amount,
		VoteDeadline: r.VoteDeadline,
	}, nil
}

type rawVote struct {
	rawMeta
	ProjectID  string `json:"projectId"`
	ProposalID string `json:"proposalId"`
	Voter      string `json:"voter"`
	Support    bool   `json:"support"`
	Amount     string `json:"amount"`
}

func (r rawVote) toEvent() (*model.VoteEvent, error) {
	voter, err := normalizeAddress(r.Voter)
	if err != nil {
		return nil, fmt.Errorf("voter: %w", err)
	}
	amount, err := parseWei(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	return &model.VoteEvent{
		EventMeta:  r.toMeta(),
		ProjectID:  r.ProjectID,
		ProposalID: r.ProposalID,
		Voter:      voter,
		Support:    r.Support,
		Amount:     amount,
	}, nil
}

type rawProposalExecuted struct {
	rawMeta
	ProjectID  string `json:"projectId"`
	ProposalID string `json:"proposalId"`
	Passed     bool   `json:"passed"`
}

func (r rawProposalExecuted) toEvent() *model.ProposalExecutedEvent {
	return &model.ProposalExecutedEvent{
		EventMeta:  r.toMeta(),
		ProjectID:  r.ProjectID,
		ProposalID: r.ProposalID,
		Passed:     r.Passed,
	}
}

// rawProposalData 提案查询的公共结果结构
type rawProposalData struct {
	ProposalCreateds  connection[rawProposalCreated]  `json:"allProposalCreateds"`
	Voteds            connection[rawVote]             `json:"allVoteds"`
	ProposalExecuteds connection[rawProposalExecuted] `json:"allProposalExecuteds"`
}

// parseWei 解析wei金额字符串，负数和非数字一律拒绝
func parseWei(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}
	return v, nil
}

// normalizeAddress 校验并统一成小写地址
func normalizeAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("invalid address %q", addr)
	}
	return strings.ToLower(addr), nil
}
