package handler

import (
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/logic"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/model"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/validation"
)

// Response 通用响应结构
type Response struct {
	Success    bool                    `json:"success"`
	Message    string                  `json:"message,omitempty"`
	Data       interface{}             `json:"data,omitempty"`
	Errors     []validation.FieldError `json:"errors,omitempty"`
	Stats      interface{}             `json:"stats,omitempty"`
	Pagination *Pagination             `json:"pagination,omitempty"`
}

// Pagination 分页信息结构
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination 构造分页信息
func NewPagination(page, limit int, total int64) *Pagination {
	return &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: logic.TotalPages(total, limit),
	}
}

// ProjectDetail 项目详情响应，附带派生字段
type ProjectDetail struct {
	*model.Project
	ProgressPercentage float64 `json:"progressPercentage"`
	IsGoalReached      bool    `json:"isGoalReached"`
}

// ToProjectDetail 将项目模型转换为详情响应
func ToProjectDetail(project *model.Project) ProjectDetail {
	return ProjectDetail{
		Project:            project,
		ProgressPercentage: project.ProgressPercentage(),
		IsGoalReached:      project.IsGoalReached(),
	}
}

// ToProjectDetails 批量转换，项目列表同样携带派生字段
func ToProjectDetails(projects []model.Project) []ProjectDetail {
	details := make([]ProjectDetail, 0, len(projects))
	for i := range projects {
		details = append(details, ToProjectDetail(&projects[i]))
	}
	return details
}

// ToProject 将创建请求转换为项目模型
func ToProject(in *validation.ProjectInput) *model.Project {
	project := &model.Project{
		Title:           in.Title,
		Description:     in.Description,
		FullDescription: in.FullDescription,
		Image:           in.Image,
		Goal:            in.Goal,
		DaysLeft:        in.DaysLeft,
		Category:        in.Category,
		Creator:         in.Creator,
		WalletAddress:   in.WalletAddress,
		ContractAddress: in.ContractAddress,
	}
	for _, u := range in.Updates {
		project.Updates = append(project.Updates, model.ProjectUpdate{
			Date:    u.Date,
			Title:   u.Title,
			Content: u.Content,
		})
	}
	for _, r := range in.Rewards {
		project.Rewards = append(project.Rewards, model.ProjectReward{
			Amount:      r.Amount,
			Title:       r.Title,
			Description: r.Description,
		})
	}
	return project
}

// ToTransaction 将交易请求转换为交易模型
func ToTransaction(in *validation.TransactionInput) *model.Transaction {
	return &model.Transaction{
		ProjectID:       uint(in.ProjectID),
		InvestorAddress: in.InvestorAddress,
		Amount:          in.Amount,
		TxHash:          in.TxHash,
		BlockNumber:     in.BlockNumber,
		GasUsed:         in.GasUsed,
	}
}
