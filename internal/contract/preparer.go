package contract

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/KamisAyaka/Crowdfunding/internal/config"
	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// 合约配置键名
const (
	ContractCrowdfunding = "Crowdfunding"
	ContractGovernance   = "ProposalGovernance"
)

// Preparer 交易调用准备器。
// 只负责把操作和参数组装成ABI编码的调用描述，签名和提交由外部协作方完成。
type Preparer struct {
	crowdfunding     abi.ABI
	governance       abi.ABI
	crowdfundingAddr string
	governanceAddr   string
}

// NewPreparer 创建调用准备器
func NewPreparer(cfg config.ChainConfig) (*Preparer, error) {
	cfABI, err := abi.JSON(strings.NewReader(crowdfundingABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse crowdfunding ABI: %w", err)
	}
	govABI, err := abi.JSON(strings.NewReader(governanceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse governance ABI: %w", err)
	}

	cfAddr := cfg.ContractAddress(ContractCrowdfunding)
	govAddr := cfg.ContractAddress(ContractGovernance)
	if !common.IsHexAddress(cfAddr) {
		return nil, fmt.Errorf("invalid %s address %q", ContractCrowdfunding, cfAddr)
	}
	if !common.IsHexAddress(govAddr) {
		return nil, fmt.Errorf("invalid %s address %q", ContractGovernance, govAddr)
	}

	return &Preparer{
		crowdfunding:     cfABI,
		governance:       govABI,
		crowdfundingAddr: strings.ToLower(cfAddr),
		governanceAddr:   strings.ToLower(govAddr),
	}, nil
}

// PrepareCompleteProject 组装结项调用。
// 在这里同步完成前五名排名，返回的排名随调用一起被提交方永久记录，
// 调用方必须传入刚刚聚合出的捐赠记录，不能使用缓存快照。
func (p *Preparer) PrepareCompleteProject(projectID string, records map[string]model.DonationRecord) (*model.CallRequest, []model.TopDonor, error) {
	const op = "complete"

	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, nil, model.NewSubmissionError(op, err)
	}

	top := logic.TopDonors(records, logic.TopDonorCount)
	donors := make([]common.Address, len(top))
	amounts := make([]*big.Int, len(top))
	donorArgs := make([]string, len(top))
	amountArgs := make([]string, len(top))
	for i, d := range top {
		donors[i] = common.HexToAddress(d.Donor)
		amounts[i] = d.Amount
		donorArgs[i] = d.Donor
		amountArgs[i] = d.Amount.String()
	}

	calldata, err := p.crowdfunding.Pack("completeProject", id, donors, amounts)
	if err != nil {
		return nil, nil, model.NewSubmissionError(op, err)
	}

	return &model.CallRequest{
		Contract: ContractCrowdfunding,
		Address:  p.crowdfundingAddr,
		Method:   "completeProject",
		Args:     []interface{}{projectID, donorArgs, amountArgs},
		Calldata: hexutil.Encode(calldata),
	}, top, nil
}

// PrepareWithdraw 组装提款调用
func (p *Preparer) PrepareWithdraw(projectID string, amount *big.Int) (*model.CallRequest, error) {
	const op = "withdraw"

	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, model.NewSubmissionError(op, errors.New("提款金额必须大于0"))
	}

	calldata, err := p.crowdfunding.Pack("withdrawFunds", id, amount)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}

	return &model.CallRequest{
		Contract: ContractCrowdfunding,
		Address:  p.crowdfundingAddr,
		Method:   "withdrawFunds",
		Args:     []interface{}{projectID, amount.String()},
		Calldata: hexutil.Encode(calldata),
	}, nil
}

// PrepareRefund 组装退款调用
func (p *Preparer) PrepareRefund(projectID string) (*model.CallRequest, error) {
	const op = "refund"

	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}

	calldata, err := p.crowdfunding.Pack("refund", id)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}

	return &model.CallRequest{
		Contract: ContractCrowdfunding,
		Address:  p.crowdfundingAddr,
		Method:   "refund",
		Args:     []interface{}{projectID},
		Calldata: hexutil.Encode(calldata),
	}, nil
}

// PrepareCreateProposal 组装创建提案调用。
// 一个项目同一时刻至多只能有一个未执行的提案，传入该项目现有提案列表，
// 最新一条未执行时直接拒绝，而不是依赖页面禁用按钮。
func (p *Preparer) PrepareCreateProposal(
	projectID string,
	amount *big.Int,
	durationDays int64,
	description string,
	existing []model.ProposalView,
) (*model.CallRequest, error) {
	const op = "createProposal"

	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, model.NewSubmissionError(op, errors.New("申请金额必须大于0"))
	}
	if durationDays <= 0 {
		return nil, model.NewSubmissionError(op, errors.New("投票时长必须大于0"))
	}
	if description == "" {
		return nil, model.NewSubmissionError(op, errors.New("提案描述不能为空"))
	}

	if latest := logic.LatestProposal(existing); latest != nil && !latest.Executed {
		return nil, model.NewSubmissionError(op,
			fmt.Errorf("提案 %s 尚未执行，不能创建新提案", latest.ProposalID))
	}

	calldata, err := p.governance.Pack("createProposal", id, amount, big.NewInt(durationDays), description)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}

	return &model.CallRequest{
		Contract: ContractGovernance,
		Address:  p.governanceAddr,
		Method:   "createProposal",
		Args:     []interface{}{projectID, amount.String(), durationDays, description},
		Calldata: hexutil.Encode(calldata),
	}, nil
}

// PrepareVote 组装投票调用
func (p *Preparer) PrepareVote(projectID, proposalID string, support bool) (*model.CallRequest, error) {
	const op = "vote"

	pid, err := parseProjectID(projectID)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}
	prid, ok := new(big.Int).SetString(proposalID, 10)
	if !ok {
		return nil, model.NewSubmissionError(op, fmt.Errorf("无效的提案ID %q", proposalID))
	}

	calldata, err := p.governance.Pack("voteOnProposal", pid, prid, support)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}

	return &model.CallRequest{
		Contract: ContractGovernance,
		Address:  p.governanceAddr,
		Method:   "voteOnProposal",
		Args:     []interface{}{projectID, proposalID, support},
		Calldata: hexutil.Encode(calldata),
	}, nil
}

// PrepareExecuteProposal 组装执行提案调用
func (p *Preparer) PrepareExecuteProposal(projectID, proposalID string) (*model.CallRequest, error) {
	const op = "execute"

	pid, err := parseProjectID(projectID)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}
	prid, ok := new(big.Int).SetString(proposalID, 10)
	if !ok {
		return nil, model.NewSubmissionError(op, fmt.Errorf("无效的提案ID %q", proposalID))
	}

	calldata, err := p.governance.Pack("executeProposal", pid, prid)
	if err != nil {
		return nil, model.NewSubmissionError(op, err)
	}

	return &model.CallRequest{
		Contract: ContractGovernance,
		Address:  p.governanceAddr,
		Method:   "executeProposal",
		Args:     []interface{}{projectID, proposalID},
		Calldata: hexutil.Encode(calldata),
	}, nil
}

// parseProjectID 项目ID是链上的uint256，按十进制解析
func parseProjectID(projectID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(projectID, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("无效的项目ID %q", projectID)
	}
	return id, nil
}
