package logic

import (
	"math/big"
	"testing"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/stretchr/testify/require"
)

func record(donor string, amount int64) model.DonationRecord {
	return model.DonationRecord{
		Donor:            donor,
		CumulativeAmount: big.NewInt(amount),
	}
}

func TestTopDonors(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields empty ranking", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, TopDonors(nil, TopDonorCount))
		require.Empty(t, TopDonors(map[string]model.DonationRecord{}, TopDonorCount))
	})

	t.Run("fewer donors than limit keeps all", func(t *testing.T) {
		t.Parallel()

		records := map[string]model.DonationRecord{
			"0xbb": record("0xbb", 5),
			"0xaa": record("0xaa", 9),
		}
		ranked := TopDonors(records, TopDonorCount)
		require.Len(t, ranked, 2)
		require.Equal(t, "0xaa", ranked[0].Donor)
		require.Equal(t, "0xbb", ranked[1].Donor)
	})

	t.Run("truncates to top n by amount", func(t *testing.T) {
		t.Parallel()

		records := map[string]model.DonationRecord{
			"0xa1": record("0xa1", 10),
			"0xa2": record("0xa2", 60),
			"0xa3": record("0xa3", 30),
			"0xa4": record("0xa4", 50),
			"0xa5": record("0xa5", 20),
			"0xa6": record("0xa6", 40),
		}
		ranked := TopDonors(records, TopDonorCount)
		require.Len(t, ranked, TopDonorCount)

		amounts := make([]int64, 0, len(ranked))
		for _, r := range ranked {
			amounts = append(amounts, r.Amount.Int64())
		}
		require.Equal(t, []int64{60, 50, 40, 30, 20}, amounts)
	})

	t.Run("ties break by address ascending", func(t *testing.T) {
		t.Parallel()

		// 金额相同靠地址字典序兜底，保证排名可复现
		records := map[string]model.DonationRecord{
			"0xcc": record("0xcc", 7),
			"0xaa": record("0xaa", 7),
			"0xbb": record("0xbb", 7),
		}
		ranked := TopDonors(records, TopDonorCount)
		require.Equal(t, "0xaa", ranked[0].Donor)
		require.Equal(t, "0xbb", ranked[1].Donor)
		require.Equal(t, "0xcc", ranked[2].Donor)
	})

	t.Run("result is a copy of the input amounts", func(t *testing.T) {
		t.Parallel()

		records := map[string]model.DonationRecord{"0xaa": record("0xaa", 3)}
		ranked := TopDonors(records, TopDonorCount)
		ranked[0].Amount.SetInt64(99)
		require.Equal(t, int64(3), records["0xaa"].CumulativeAmount.Int64())
	})
}
