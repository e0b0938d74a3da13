package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project 众筹项目模型
type Project struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// 基本信息
	Title           string `json:"title" gorm:"not null"`
	Description     string `json:"description" gorm:"type:text;not null"`
	FullDescription string `json:"fullDescription,omitempty" gorm:"type:text"`
	Image           string `json:"image" gorm:"not null"`
	Category        string `json:"category" gorm:"not null;index"`
	Creator         string `json:"creator" gorm:"not null;index"`

	// 众筹信息，raised/backers 只由交易入账逻辑和受限更新接口修改
	Goal     decimal.Decimal `json:"goal" gorm:"type:numeric(32,18);not null"`
	Raised   decimal.Decimal `json:"raised" gorm:"type:numeric(32,18);not null;default:0"`
	Backers  int64           `json:"backers" gorm:"not null;default:0"`
	DaysLeft int             `json:"daysLeft" gorm:"not null"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'active';index"`

	// 区块链信息，只作为字符串记录
	WalletAddress   string `json:"walletAddress,omitempty"`
	ContractAddress string `json:"contractAddress,omitempty"`

	// 关联
	Updates []ProjectUpdate `json:"updates,omitempty" gorm:"foreignKey:ProjectID"`
	Rewards []ProjectReward `json:"rewards,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectUpdate 项目进展
type ProjectUpdate struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	ProjectID uint      `json:"-" gorm:"not null;index"`
	Date      time.Time `json:"date" gorm:"not null"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
}

// ProjectReward 项目回报档位
type ProjectReward struct {
	ID          uint            `json:"-" gorm:"primaryKey"`
	ProjectID   uint            `json:"-" gorm:"not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(32,18);not null"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusActive  ProjectStatus = "active"  // 进行中
	ProjectStatusFunded  ProjectStatus = "funded"  // 达成目标
	ProjectStatusExpired ProjectStatus = "expired" // 已过期
)

// ValidProjectStatus 判断是否为合法的项目状态
func ValidProjectStatus(s string) bool {
	switch ProjectStatus(s) {
	case ProjectStatusActive, ProjectStatusFunded, ProjectStatusExpired:
		return true
	}
	return false
}

// Categories 项目分类枚举
var Categories = []string{
	"Gaming", "Technology", "Art", "Music", "Film",
	"Publishing", "Fashion", "Food", "Sports",
	"Education", "Health", "Environment", "Other",
}

// ValidCategory 判断是否为合法分类
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ProgressPercentage 募集进度百分比，封顶100
func (p *Project) ProgressPercentage() float64 {
	if !p.Goal.IsPositive() {
		return 0
	}
	progress, _ := p.Raised.Div(p.Goal).Mul(decimal.NewFromInt(100)).Float64()
	if progress > 100 {
		return 100
	}
	return progress
}

// IsGoalReached 是否已达成募集目标
func (p *Project) IsGoalReached() bool {
	return p.Raised.GreaterThanOrEqual(p.Goal)
}

// Deadline 募集截止时间，从创建时间起算
func (p *Project) Deadline() time.Time {
	return p.CreatedAt.Add(time.Duration(p.DaysLeft) * 24 * time.Hour)
}
