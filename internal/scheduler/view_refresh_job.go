package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/KamisAyaka/Crowdfunding/internal/config"
	"github.com/KamisAyaka/Crowdfunding/internal/logger"
	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/KamisAyaka/Crowdfunding/internal/view"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// ViewRefreshJob 视图刷新任务。
// 每次执行是一趟独立完整的拉取加重放，产出一份快照后整体发布；
// 核心本身不含调度，这个任务只是外部触发源之一，手动刷新接口走同一入口。
type ViewRefreshJob struct {
	viewLogic *logic.ViewLogic
	holder    *view.Holder
	config    *config.Config
}

// NewViewRefreshJob 创建视图刷新任务
func NewViewRefreshJob(viewLogic *logic.ViewLogic, holder *view.Holder, cfg *config.Config) *ViewRefreshJob {
	return &ViewRefreshJob{
		viewLogic: viewLogic,
		holder:    holder,
		config:    cfg,
	}
}

// GetName 获取任务名称
func (j *ViewRefreshJob) GetName() string {
	return "view_refresher"
}

// GetSchedule 获取调度配置
func (j *ViewRefreshJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *ViewRefreshJob) Execute() {
	if err := j.Refresh(context.Background()); err != nil {
		logger.Error("View refresh failed: %v", err)
	}
}

// Refresh 执行一趟完整刷新并发布快照。
// 单个项目的刷新失败只跳过该项目；提案子查询失败不拖垮所在项目，
// 两者独立上报，符合可选子查询各自可失败的约定。
func (j *ViewRefreshJob) Refresh(ctx context.Context) error {
	started := time.Now()

	ids, err := j.viewLogic.ListProjectIDs(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		j.holder.Publish(&view.Snapshot{
			Proposals:   make(map[string][]model.ProposalView),
			RefreshedAt: started,
		})
		return nil
	}

	poolSize := j.config.Scheduler.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	if poolSize > len(ids) {
		poolSize = len(ids)
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		projects  = make([]model.ProjectView, 0, len(ids))
		proposals = make(map[string][]model.ProposalView)
	)

	for _, id := range ids {
		projectID := id
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			project, err := j.viewLogic.GetProject(ctx, projectID)
			if err != nil {
				logger.Error("Failed to refresh project %s: %v", projectID, err)
				return
			}

			list, err := j.viewLogic.GetProposals(ctx, projectID, started)
			if err != nil {
				// 提案拉取失败不影响项目视图本身
				logger.Error("Failed to refresh proposals for project %s: %v", projectID, err)
				list = nil
			}

			mu.Lock()
			projects = append(projects, *project)
			if len(list) > 0 {
				proposals[projectID] = list
			}
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit refresh task for project %s: %v", projectID, err)
		}
	}

	wg.Wait()

	sortProjects(projects)

	// 后完成的刷新整体覆盖先完成的，不做跨趟合并
	j.holder.Publish(&view.Snapshot{
		Projects:    projects,
		Proposals:   proposals,
		RefreshedAt: started,
	})

	logger.Info("View refresh completed: %d/%d projects in %s",
		len(projects), len(ids), time.Since(started))
	return nil
}
