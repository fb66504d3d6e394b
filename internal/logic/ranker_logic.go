package logic

import (
	"math/big"
	"sort"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// TopDonorCount 结项调用携带的捐赠排名数量
const TopDonorCount = 5

// TopDonors 选出累计捐赠额最高的前 n 名。
// 按金额降序，金额相同时按地址字典序升序，保证同一份输入排名可复现。
// 排名结果会被结项交易永久记录，必须在提交前用最新聚合结果同步计算，
// 不能复用上一次刷新缓存的数据。
func TopDonors(records map[string]model.DonationRecord, n int) []model.TopDonor {
	ranked := make([]model.TopDonor, 0, len(records))
	for _, r := range records {
		ranked = append(ranked, model.TopDonor{
			Donor:  r.Donor,
			Amount: new(big.Int).Set(r.CumulativeAmount),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Amount.Cmp(ranked[j].Amount); c != 0 {
			return c > 0
		}
		return ranked[i].Donor < ranked[j].Donor
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
