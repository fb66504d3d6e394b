package logic

import (
	"encoding/json"
	"fmt"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"gorm.io/gorm"
)

// CallRecordLogic 已准备调用的留档逻辑
type CallRecordLogic struct {
	db *gorm.DB
}

// NewCallRecordLogic 创建调用留档逻辑
func NewCallRecordLogic(db *gorm.DB) *CallRecordLogic {
	return &CallRecordLogic{db: db}
}

// SaveCall 落库一条已准备的调用描述。
// 结项调用里的排名在此刻冻结，之后到达的事件不再修正这条记录。
func (l *CallRecordLogic) SaveCall(projectID, proposalID string, call *model.CallRequest) (*model.CallRecordModel, error) {
	args, err := json.Marshal(call.Args)
	if err != nil {
		return nil, fmt.Errorf("序列化调用参数失败: %w", err)
	}

	record := &model.CallRecordModel{
		ProjectID:  projectID,
		ProposalID: proposalID,
		Contract:   call.Contract,
		Address:    call.Address,
		Method:     call.Method,
		Args:       string(args),
		Calldata:   call.Calldata,
	}
	if err := l.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("保存调用记录失败: %w", err)
	}
	return record, nil
}

// ListCalls 按项目查询调用留档，projectID 为空时返回全部
func (l *CallRecordLogic) ListCalls(projectID string, page, pageSize int) ([]model.CallRecordModel, int64, error) {
	query := l.db.Model(&model.CallRecordModel{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计调用记录失败: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var records []model.CallRecordModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询调用记录失败: %w", err)
	}

	return records, total, nil
}
