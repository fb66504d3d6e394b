package logic

import (
	"math/big"
	"testing"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/stretchr/testify/require"
)

func donation(donor string, amount, currentAmount int64, block uint64, logIndex uint) model.DonationEvent {
	return model.DonationEvent{
		EventMeta: model.EventMeta{
			TxHash:   "0xtx",
			BlockNum: block,
			LogIndex: logIndex,
		},
		ProjectID:     "1",
		Donor:         donor,
		Amount:        big.NewInt(amount),
		CurrentAmount: big.NewInt(currentAmount),
	}
}

func TestAggregateDonations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []model.DonationEvent
		want   map[string]int64
	}{
		{
			name:   "empty input",
			events: nil,
			want:   map[string]int64{},
		},
		{
			name: "last event per donor wins",
			events: []model.DonationEvent{
				donation("0xaa", 1, 1, 1, 0),
				donation("0xaa", 3, 3, 2, 0),
			},
			want: map[string]int64{"0xaa": 3},
		},
		{
			name: "multiple donors keep independent records",
			events: []model.DonationEvent{
				donation("0xaa", 5, 5, 1, 0),
				donation("0xbb", 2, 7, 2, 0),
				donation("0xaa", 8, 10, 3, 0),
			},
			want: map[string]int64{"0xaa": 8, "0xbb": 2},
		},
		{
			name: "intermediate values are discarded",
			events: []model.DonationEvent{
				donation("0xaa", 10, 10, 1, 0),
				donation("0xaa", 4, 4, 2, 0),
			},
			want: map[string]int64{"0xaa": 4},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records := AggregateDonations(tt.events)
			require.Len(t, records, len(tt.want))
			for donor, amount := range tt.want {
				record, ok := records[donor]
				require.True(t, ok, "missing record for %s", donor)
				require.Equal(t, big.NewInt(amount), record.CumulativeAmount)
				require.Equal(t, donor, record.Donor)
			}
		})
	}
}

func TestTotalRaised(t *testing.T) {
	t.Parallel()

	require.Equal(t, big.NewInt(0), TotalRaised(nil))

	events := []model.DonationEvent{
		donation("0xaa", 1, 1, 1, 0),
		donation("0xbb", 2, 3, 2, 0),
		donation("0xaa", 4, 6, 3, 0),
	}
	// 总额取最后一条事件的running total，不是逐条求和
	require.Equal(t, big.NewInt(6), TotalRaised(events))
}

func TestSumDonorRecords(t *testing.T) {
	t.Parallel()

	events := []model.DonationEvent{
		donation("0xaa", 4, 4, 1, 0),
		donation("0xbb", 2, 6, 2, 0),
	}
	records := AggregateDonations(events)
	require.Equal(t, big.NewInt(6), SumDonorRecords(records))
}
