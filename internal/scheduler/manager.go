package scheduler

import (
	"math/big"
	"sort"

	"github.com/KamisAyaka/Crowdfunding/internal/logger"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
}

// Start 启动任务管理器并注册视图刷新任务
func Start(job *ViewRefreshJob) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	manager := &Manager{scheduler: s}
	manager.registerViewRefreshJob(job)
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// registerViewRefreshJob 注册视图刷新任务
func (m *Manager) registerViewRefreshJob(job *ViewRefreshJob) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}

// sortProjects 项目按ID数值升序，保证快照顺序可复现
func sortProjects(projects []model.ProjectView) {
	sort.Slice(projects, func(i, j int) bool {
		a, aok := new(big.Int).SetString(projects[i].ID, 10)
		b, bok := new(big.Int).SetString(projects[j].ID, 10)
		if aok && bok {
			return a.Cmp(b) < 0
		}
		return projects[i].ID < projects[j].ID
	})
}
