package contract

import (
	"math/big"
	"strings"
	"testing"

	"github.com/KamisAyaka/Crowdfunding/internal/config"
	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/stretchr/testify/require"
)

const (
	testCrowdfundingAddr = "0x1000000000000000000000000000000000000001"
	testGovernanceAddr   = "0x2000000000000000000000000000000000000002"
)

func newTestPreparer(t *testing.T) *Preparer {
	t.Helper()

	p, err := NewPreparer(config.ChainConfig{
		Contracts: map[string]config.ContractConfig{
			ContractCrowdfunding: {Address: testCrowdfundingAddr},
			ContractGovernance:   {Address: testGovernanceAddr},
		},
	})
	require.NoError(t, err)
	return p
}

func TestNewPreparer(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		require.NotNil(t, newTestPreparer(t))
	})

	t.Run("missing contract address", func(t *testing.T) {
		t.Parallel()

		_, err := NewPreparer(config.ChainConfig{})
		require.Error(t, err)
	})

	t.Run("malformed address", func(t *testing.T) {
		t.Parallel()

		_, err := NewPreparer(config.ChainConfig{
			Contracts: map[string]config.ContractConfig{
				ContractCrowdfunding: {Address: "not-an-address"},
				ContractGovernance:   {Address: testGovernanceAddr},
			},
		})
		require.Error(t, err)
	})
}

func TestPrepareCompleteProject(t *testing.T) {
	t.Parallel()

	p := newTestPreparer(t)

	records := map[string]model.DonationRecord{}
	for i := 0; i < 7; i++ {
		addr := "0x" + strings.Repeat("0", 39) + string(rune('1'+i))
		records[addr] = model.DonationRecord{
			Donor:            addr,
			CumulativeAmount: big.NewInt(int64((i + 1) * 10)),
		}
	}

	call, top, err := p.PrepareCompleteProject("1", records)
	require.NoError(t, err)

	// 排名在组装时同步冻结，前五名按金额降序
	require.Len(t, top, logic.TopDonorCount)
	require.Equal(t, int64(70), top[0].Amount.Int64())
	require.Equal(t, int64(30), top[4].Amount.Int64())

	require.Equal(t, ContractCrowdfunding, call.Contract)
	require.Equal(t, testCrowdfundingAddr, call.Address)
	require.Equal(t, "completeProject", call.Method)
	require.True(t, strings.HasPrefix(call.Calldata, "0x"))
	require.Greater(t, len(call.Calldata), 10)

	t.Run("invalid project id", func(t *testing.T) {
		t.Parallel()

		_, _, err := p.PrepareCompleteProject("abc", nil)
		var submissionErr *model.SubmissionError
		require.ErrorAs(t, err, &submissionErr)
	})
}

func TestPrepareWithdraw(t *testing.T) {
	t.Parallel()

	p := newTestPreparer(t)

	call, err := p.PrepareWithdraw("1", big.NewInt(500))
	require.NoError(t, err)
	require.Equal(t, "withdrawFunds", call.Method)
	require.Equal(t, testCrowdfundingAddr, call.Address)

	_, err = p.PrepareWithdraw("1", big.NewInt(0))
	var submissionErr *model.SubmissionError
	require.ErrorAs(t, err, &submissionErr)

	_, err = p.PrepareWithdraw("1", nil)
	require.ErrorAs(t, err, &submissionErr)
}

func TestPrepareRefund(t *testing.T) {
	t.Parallel()

	p := newTestPreparer(t)

	call, err := p.PrepareRefund("3")
	require.NoError(t, err)
	require.Equal(t, "refund", call.Method)
	require.Equal(t, []interface{}{"3"}, call.Args)
}

func TestPrepareCreateProposal(t *testing.T) {
	t.Parallel()

	p := newTestPreparer(t)

	t.Run("no existing proposals", func(t *testing.T) {
		t.Parallel()

		call, err := p.PrepareCreateProposal("1", big.NewInt(100), 7, "扩大产能", nil)
		require.NoError(t, err)
		require.Equal(t, ContractGovernance, call.Contract)
		require.Equal(t, testGovernanceAddr, call.Address)
		require.Equal(t, "createProposal", call.Method)
	})

	t.Run("latest proposal executed allows new one", func(t *testing.T) {
		t.Parallel()

		existing := []model.ProposalView{
			{ProposalID: "1", Executed: true, State: model.ProposalStateExecuted},
		}
		_, err := p.PrepareCreateProposal("1", big.NewInt(100), 7, "追加预算", existing)
		require.NoError(t, err)
	})

	t.Run("pending proposal blocks creation", func(t *testing.T) {
		t.Parallel()

		// 最新一条未执行，直接拒绝组装
		existing := []model.ProposalView{
			{ProposalID: "1", Executed: true, State: model.ProposalStateExecuted},
			{ProposalID: "2", Executed: false, State: model.ProposalStateVoting},
		}
		_, err := p.PrepareCreateProposal("1", big.NewInt(100), 7, "追加预算", existing)
		var submissionErr *model.SubmissionError
		require.ErrorAs(t, err, &submissionErr)
	})

	t.Run("argument validation", func(t *testing.T) {
		t.Parallel()

		var submissionErr *model.SubmissionError

		_, err := p.PrepareCreateProposal("1", big.NewInt(0), 7, "d", nil)
		require.ErrorAs(t, err, &submissionErr)

		_, err = p.PrepareCreateProposal("1", big.NewInt(100), 0, "d", nil)
		require.ErrorAs(t, err, &submissionErr)

		_, err = p.PrepareCreateProposal("1", big.NewInt(100), 7, "", nil)
		require.ErrorAs(t, err, &submissionErr)
	})
}

func TestPrepareVote(t *testing.T) {
	t.Parallel()

	p := newTestPreparer(t)

	yes, err := p.PrepareVote("1", "2", true)
	require.NoError(t, err)
	no, err := p.PrepareVote("1", "2", false)
	require.NoError(t, err)

	require.Equal(t, "voteOnProposal", yes.Method)
	// support 标记参与ABI编码，两种调用数据必须不同
	require.NotEqual(t, yes.Calldata, no.Calldata)

	_, err = p.PrepareVote("1", "abc", true)
	var submissionErr *model.SubmissionError
	require.ErrorAs(t, err, &submissionErr)
}

func TestPrepareExecuteProposal(t *testing.T) {
	t.Parallel()

	p := newTestPreparer(t)

	call, err := p.PrepareExecuteProposal("1", "2")
	require.NoError(t, err)
	require.Equal(t, "executeProposal", call.Method)
	require.Equal(t, []interface{}{"1", "2"}, call.Args)

	_, err = p.PrepareExecuteProposal("x", "2")
	var submissionErr *model.SubmissionError
	require.ErrorAs(t, err, &submissionErr)
}
