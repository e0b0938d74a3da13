package scheduler

import (
	"sync"
	"time"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/config"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/logger"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// ProjectStatusJob 项目状态更新任务：达成目标的项目标记为funded，
// 超过募集期限且未达成目标的标记为expired
type ProjectStatusJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewProjectStatusJob 创建项目状态更新任务
func NewProjectStatusJob(db *gorm.DB, cfg *config.Config) *ProjectStatusJob {
	return &ProjectStatusJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectStatusJob) GetName() string {
	return "project_status_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectStatusJob) Execute() {
	logger.Info("Starting project status update task")

	var projects []model.Project
	if err := j.db.Where("status = ?", model.ProjectStatusActive).Find(&projects).Error; err != nil {
		logger.Error("Failed to fetch projects: %v", err)
		return
	}

	workers := j.config.Scheduler.Workers
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		logger.Error("Failed to create worker pool: %v", err)
		return
	}
	defer pool.Release()

	now := time.Now()
	var wg sync.WaitGroup
	var mu sync.Mutex
	updatedCount := 0

	for i := range projects {
		project := projects[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if j.updateStatus(&project, now) {
				mu.Lock()
				updatedCount++
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit status check for project %d: %v", project.ID, err)
		}
	}
	wg.Wait()

	logger.Info("Project status update completed. Updated %d projects", updatedCount)
}

// updateStatus 评估并更新单个项目的状态
func (j *ProjectStatusJob) updateStatus(project *model.Project, now time.Time) bool {
	newStatus, shouldUpdate := nextStatus(project, now)
	if !shouldUpdate {
		return false
	}

	oldStatus := project.Status
	if err := j.db.Model(project).Update("status", newStatus).Error; err != nil {
		logger.Error("Failed to update project %d status: %v", project.ID, err)
		return false
	}

	logger.Info("Updated project %d status from %s to %s", project.ID, oldStatus, newStatus)
	return true
}

// nextStatus 计算项目应转换到的状态
func nextStatus(project *model.Project, now time.Time) (model.ProjectStatus, bool) {
	if project.Status != model.ProjectStatusActive {
		return "", false
	}
	if project.IsGoalReached() {
		return model.ProjectStatusFunded, true
	}
	if now.After(project.Deadline()) {
		return model.ProjectStatusExpired, true
	}
	return "", false
}
