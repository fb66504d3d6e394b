package logic

import (
	"math/big"
	"testing"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/stretchr/testify/require"
)

func vote(voter string, support bool, amount int64, block uint64) model.VoteEvent {
	return model.VoteEvent{
		EventMeta:  model.EventMeta{BlockNum: block},
		ProjectID:  "1",
		ProposalID: "1",
		Voter:      voter,
		Support:    support,
		Amount:     big.NewInt(amount),
	}
}

func proposalCreated(proposalID string, deadline int64) *model.ProposalCreatedEvent {
	return &model.ProposalCreatedEvent{
		ProjectID:    "1",
		ProposalID:   proposalID,
		Description:  "增加提款额度",
		Amount:       big.NewInt(1000),
		VoteDeadline: deadline,
	}
}

func TestTallyProposal(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	t.Run("missing creation event", func(t *testing.T) {
		t.Parallel()

		_, err := TallyProposal(nil, now)
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = TallyProposal(&model.ProposalEvents{}, now)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("vote amounts sum by support flag", func(t *testing.T) {
		t.Parallel()

		events := &model.ProposalEvents{
			Created: proposalCreated("1", now.Unix()+3600),
			Votes: []model.VoteEvent{
				vote("0xaa", true, 4, 1),
				vote("0xbb", false, 2, 2),
				// 同一投票人的第二条事件照常计入，不做去重
				vote("0xaa", true, 2, 3),
			},
		}
		view, err := TallyProposal(events, now)
		require.NoError(t, err)
		require.Equal(t, big.NewInt(6), view.YesVotesAmount)
		require.Equal(t, big.NewInt(2), view.NoVotesAmount)
	})

	t.Run("state is voting before deadline", func(t *testing.T) {
		t.Parallel()

		events := &model.ProposalEvents{Created: proposalCreated("1", now.Unix()+60)}
		view, err := TallyProposal(events, now)
		require.NoError(t, err)
		require.Equal(t, model.ProposalStateVoting, view.State)
		require.False(t, view.Executed)
		require.False(t, view.Passed)
	})

	t.Run("state is awaiting execution after deadline", func(t *testing.T) {
		t.Parallel()

		events := &model.ProposalEvents{Created: proposalCreated("1", now.Unix()-60)}
		view, err := TallyProposal(events, now)
		require.NoError(t, err)
		require.Equal(t, model.ProposalStateAwaitingExecution, view.State)
	})

	t.Run("deadline boundary counts as expired", func(t *testing.T) {
		t.Parallel()

		events := &model.ProposalEvents{Created: proposalCreated("1", now.Unix())}
		view, err := TallyProposal(events, now)
		require.NoError(t, err)
		require.Equal(t, model.ProposalStateAwaitingExecution, view.State)
	})

	t.Run("executed proposal is terminal regardless of deadline", func(t *testing.T) {
		t.Parallel()

		events := &model.ProposalEvents{
			Created: proposalCreated("1", now.Unix()+3600),
			Executed: &model.ProposalExecutedEvent{
				ProjectID:  "1",
				ProposalID: "1",
				Passed:     true,
			},
		}
		view, err := TallyProposal(events, now)
		require.NoError(t, err)
		require.Equal(t, model.ProposalStateExecuted, view.State)
		require.True(t, view.Executed)
		require.True(t, view.Passed)
	})

	t.Run("passed stays false until executed", func(t *testing.T) {
		t.Parallel()

		events := &model.ProposalEvents{
			Created: proposalCreated("1", now.Unix()-60),
			Votes:   []model.VoteEvent{vote("0xaa", true, 100, 1)},
		}
		view, err := TallyProposal(events, now)
		require.NoError(t, err)
		// 票数过半也不代表通过，passed 只来自执行事件
		require.False(t, view.Passed)
	})
}

func TestLatestProposal(t *testing.T) {
	t.Parallel()

	require.Nil(t, LatestProposal(nil))

	proposals := []model.ProposalView{
		{ProposalID: "9"},
		{ProposalID: "10"},
		{ProposalID: "2"},
	}
	// 提案ID按数值比较，"10" 大于 "9"
	require.Equal(t, "10", LatestProposal(proposals).ProposalID)
}
