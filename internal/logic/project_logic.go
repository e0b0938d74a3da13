package logic

import (
	"errors"
	"fmt"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// ProjectQuery 项目列表查询参数
type ProjectQuery struct {
	Status   string
	Category string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// 列表排序字段白名单
var projectSortFields = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"goal":      "goal",
	"raised":    "raised",
	"backers":   "backers",
	"daysLeft":  "days_left",
}

// CreateProject 创建项目，募集进度字段由入账逻辑维护
func (p *ProjectLogic) CreateProject(project *model.Project) error {
	project.Status = model.ProjectStatusActive
	project.Raised = decimal.Zero
	project.Backers = 0

	if err := p.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// filtered 构造带过滤条件的查询
func (p *ProjectLogic) filtered(q ProjectQuery) *gorm.DB {
	query := p.db.Model(&model.Project{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR creator ILIKE ?", like, like, like)
	}
	return query
}

// GetProjects 获取项目列表，支持过滤、搜索、排序与分页
func (p *ProjectLogic) GetProjects(q ProjectQuery) ([]model.Project, int64, error) {
	var total int64
	if err := p.filtered(q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var projects []model.Project
	offset := (q.Page - 1) * q.Limit
	if err := p.filtered(q).
		Order(orderClause(q.Sort, projectSortFields, "created_at DESC")).
		Offset(offset).
		Limit(q.Limit).
		Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch projects: %w", err)
	}

	return projects, total, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id uint) (*model.Project, error) {
	var project model.Project
	if err := p.db.
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Preload("Rewards", func(db *gorm.DB) *gorm.DB { return db.Order("amount ASC") }).
		First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	return &project, nil
}

// UpdateProject 更新项目，updates 的键为数据库列名，由 handler 层按白名单过滤
func (p *ProjectLogic) UpdateProject(id uint, updates map[string]interface{}) (*model.Project, error) {
	var project model.Project
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if len(updates) > 0 {
		if err := p.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
		// 回读，保证返回更新后的字段
		if err := p.db.First(&project, id).Error; err != nil {
			return nil, fmt.Errorf("failed to reload project: %w", err)
		}
	}

	return &project, nil
}

// PlatformOverview 平台总览统计
type PlatformOverview struct {
	TotalProjects     int64           `json:"totalProjects"`
	TotalGoal         decimal.Decimal `json:"totalGoal"`
	TotalRaised       decimal.Decimal `json:"totalRaised"`
	TotalBackers      int64           `json:"totalBackers"`
	ActiveProjects    int64           `json:"activeProjects"`
	CompletedProjects int64           `json:"completedProjects"`
}

// CategoryStat 单个分类的统计
type CategoryStat struct {
	Category    string          `json:"category"`
	Count       int64           `json:"count"`
	TotalRaised decimal.Decimal `json:"totalRaised"`
}

// PlatformStats 平台统计响应
type PlatformStats struct {
	Overview   PlatformOverview `json:"overview"`
	Categories []CategoryStat   `json:"categories"`
}

// GetPlatformStats 单次聚合获取平台统计与分类分布
func (p *ProjectLogic) GetPlatformStats() (*PlatformStats, error) {
	var overview PlatformOverview
	// completed 状态当前枚举不会产生，保留该分支以兼容旧版看板字段
	err := p.db.Raw(`
		SELECT
			COUNT(*) AS total_projects,
			COALESCE(SUM(goal), 0) AS total_goal,
			COALESCE(SUM(raised), 0) AS total_raised,
			COALESCE(SUM(backers), 0) AS total_backers,
			COUNT(*) FILTER (WHERE status = 'active') AS active_projects,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_projects
		FROM projects
		WHERE deleted_at IS NULL
	`).Scan(&overview).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch platform stats: %w", err)
	}

	var categories []CategoryStat
	err = p.db.Raw(`
		SELECT
			category,
			COUNT(*) AS count,
			COALESCE(SUM(raised), 0) AS total_raised
		FROM projects
		WHERE deleted_at IS NULL
		GROUP BY category
		ORDER BY count DESC
	`).Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category stats: %w", err)
	}

	return &PlatformStats{Overview: overview, Categories: categories}, nil
}
