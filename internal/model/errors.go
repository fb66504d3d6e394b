package model

import (
	"errors"
	"fmt"
)

// ErrConfigMissing 索引服务地址未配置，配置阶段即返回，不进入任何计算
var ErrConfigMissing = errors.New("事件索引服务地址未配置")

// ErrNotFound 找不到对应实体的创建事件
var ErrNotFound = errors.New("记录不存在")

// TransportError 索引服务查询失败或返回了无法解析的数据，可整体重试
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("索引服务查询失败 (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError 包装一个索引服务查询错误
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// IntegrityError 派生不变量被破坏，属于数据或逻辑缺陷而非网络问题，
// 组装器遇到时拒绝输出视图，不做静默修正
type IntegrityError struct {
	ProjectID string
	Reason    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("项目 %s 数据完整性校验失败: %s", e.ProjectID, e.Reason)
}

// NewIntegrityError 创建完整性校验错误
func NewIntegrityError(projectID, format string, args ...interface{}) *IntegrityError {
	return &IntegrityError{ProjectID: projectID, Reason: fmt.Sprintf(format, args...)}
}

// SubmissionError 交易调用准备失败，携带操作类型便于前端展示，不自动重试
type SubmissionError struct {
	Op  string // withdraw, refund, vote, execute, complete, createProposal
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("交易准备失败 (%s): %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError 包装一个交易准备错误
func NewSubmissionError(op string, err error) *SubmissionError {
	return &SubmissionError{Op: op, Err: err}
}
