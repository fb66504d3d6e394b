package logic

import (
	"math/big"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// Ledger 资金台账
type Ledger struct {
	TotalAmount    *big.Int
	TotalWithdrawn *big.Int
	CurrentAmount  *big.Int
	Allowance      *big.Int
}

// ComputeLedger 由总筹款额、提款事件和额度调整事件计算资金台账。
//
// totalRaised 来自最后一条捐赠事件的running total，donorSum 来自各捐赠人
// 记录求和，两者不一致说明索引数据缺失或乱序，按完整性错误拒绝出视图。
// 提款总额超过筹款额同理，不做静默截断。
//
// 可提取额度：项目未成功时恒为 0；成功时基线为筹款额的 25%，
// 若存在额度调整事件则取最后一条的绝对值整体替换基线。
func ComputeLedger(
	projectID string,
	totalRaised *big.Int,
	donorSum *big.Int,
	withdrawals []model.WithdrawalEvent,
	allowanceIncreases []model.AllowanceIncreasedEvent,
	isSuccessful bool,
) (*Ledger, error) {
	if totalRaised.Cmp(donorSum) != 0 {
		return nil, model.NewIntegrityError(projectID,
			"总筹款额 %s 与捐赠记录合计 %s 不一致", totalRaised.String(), donorSum.String())
	}

	totalWithdrawn := big.NewInt(0)
	for _, w := range withdrawals {
		totalWithdrawn.Add(totalWithdrawn, w.Amount)
	}

	if totalWithdrawn.Cmp(totalRaised) > 0 {
		return nil, model.NewIntegrityError(projectID,
			"提款总额 %s 超过筹款总额 %s", totalWithdrawn.String(), totalRaised.String())
	}

	currentAmount := new(big.Int).Sub(totalRaised, totalWithdrawn)

	allowance := big.NewInt(0)
	if isSuccessful {
		// 基线为筹款额的25%
		allowance = new(big.Int).Div(new(big.Int).Mul(totalRaised, big.NewInt(25)), big.NewInt(100))
		if n := len(allowanceIncreases); n > 0 {
			// 最后一条事件的值整体替换，不是累加
			allowance = new(big.Int).Set(allowanceIncreases[n-1].Amount)
		}
	}
	if allowance.Sign() < 0 {
		return nil, model.NewIntegrityError(projectID, "可提取额度为负数 %s", allowance.String())
	}

	return &Ledger{
		TotalAmount:    totalRaised,
		TotalWithdrawn: totalWithdrawn,
		CurrentAmount:  currentAmount,
		Allowance:      allowance,
	}, nil
}
