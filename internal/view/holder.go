package view

import (
	"sync/atomic"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
)

// Snapshot 一次完整刷新产出的不可变快照。
// Proposals 以项目ID为键。发布后不再修改，消费方不会看到半成品视图。
type Snapshot struct {
	Projects    []model.ProjectView
	Proposals   map[string][]model.ProposalView
	RefreshedAt time.Time
}

// Holder 快照持有者。两次刷新并发时后完成者整体覆盖先完成者，
// 不做跨刷新合并。
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder 创建快照持有者
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(&Snapshot{
		Proposals: make(map[string][]model.ProposalView),
	})
	return h
}

// Publish 整体替换当前快照
func (h *Holder) Publish(s *Snapshot) {
	h.current.Store(s)
}

// Snapshot 返回最近一次完整刷新的快照
func (h *Holder) Snapshot() *Snapshot {
	return h.current.Load()
}
