package logic

import (
	"math/big"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// AggregateDonations 把同一捐赠人的多条捐赠事件折叠成一条当前记录。
// 捐赠事件携带的是合约侧的累计余额而非增量，因此同一地址后出现的事件
// 直接覆盖先前的记录，不做求和。
// 前置条件：events 已按 (区块号, 日志序号) 排好链上顺序。
func AggregateDonations(events []model.DonationEvent) map[string]model.DonationRecord {
	records := make(map[string]model.DonationRecord, len(events))
	for _, ev := range events {
		records[ev.Donor] = model.DonationRecord{
			Donor:            ev.Donor,
			CumulativeAmount: new(big.Int).Set(ev.Amount),
			LastTxHash:       ev.TxHash,
		}
	}
	return records
}

// TotalRaised 项目总筹款额。
// 每条捐赠事件都携带合约侧的项目running total，只有最后一条是权威值，
// 这里不对各捐赠人记录求和。没有捐赠事件时为 0。
func TotalRaised(events []model.DonationEvent) *big.Int {
	if len(events) == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Set(events[len(events)-1].CurrentAmount)
}

// SumDonorRecords 各捐赠人最终累计额之和，用于和 TotalRaised 相互校验
func SumDonorRecords(records map[string]model.DonationRecord) *big.Int {
	sum := big.NewInt(0)
	for _, r := range records {
		sum.Add(sum, r.CumulativeAmount)
	}
	return sum
}
