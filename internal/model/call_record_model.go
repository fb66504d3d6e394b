package model

import (
	"time"

	"gorm.io/gorm"
)

// CallRecordModel 已准备调用的落库记录
// 结项调用中的前五名排名在提交时刻被冻结，后续事件不再修正，因此整条调用描述需要留档
type CallRecordModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID  string `json:"project_id" gorm:"not null;index"`
	ProposalID string `json:"proposal_id" gorm:"index"`
	Contract   string `json:"contract" gorm:"not null"`
	Address    string `json:"address" gorm:"not null"`
	Method     string `json:"method" gorm:"not null"`
	Args       string `json:"args" gorm:"type:text"` // JSON编码的参数列表
	Calldata   string `json:"calldata" gorm:"type:text"`
}

// TableName 指定表名
func (CallRecordModel) TableName() string {
	return "call_record"
}
