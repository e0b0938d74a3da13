package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/logic"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/model"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = logic.NormalizePage(page, limit, 10)

	query := logic.ProjectQuery{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "-createdAt"),
		Page:     page,
		Limit:    limit,
	}

	projects, total, err := h.projectLogic.GetProjects(query)
	if err != nil {
		Internal(c, "Failed to fetch projects", err)
		return
	}

	OkList(c, ToProjectDetails(projects), nil, NewPagination(page, limit, total))
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectLogic.GetProject(uint(id))
	if err != nil {
		if errors.Is(err, logic.ErrProjectNotFound) {
			NotFound(c, "Project not found")
			return
		}
		Internal(c, "Failed to fetch project", err)
		return
	}

	Ok(c, "", ToProjectDetail(project))
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var in validation.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}

	if errs := validation.Apply(validation.ProjectRules(&in)); len(errs) > 0 {
		ValidationFailed(c, errs)
		return
	}

	project := ToProject(&in)
	if err := h.projectLogic.CreateProject(project); err != nil {
		Internal(c, "Failed to create project", err)
		return
	}

	Created(c, "Project created successfully", ToProjectDetail(project))
}

// 部分更新只接受这些字段，键为请求字段名，值为数据库列名
var allowedProjectUpdates = map[string]string{
	"status":   "status",
	"raised":   "raised",
	"backers":  "backers",
	"daysLeft": "days_left",
}

// UpdateProject 部分更新项目，白名单之外的字段直接拒绝
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		BadRequest(c, "Invalid project ID")
		return
	}

	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}

	for field := range body {
		if _, ok := allowedProjectUpdates[field]; !ok {
			BadRequest(c, fmt.Sprintf("Unknown field: %s", field))
			return
		}
	}

	updates := make(map[string]interface{})
	var rules []validation.Rule

	if raw, ok := body["status"]; ok {
		status, isString := raw.(string)
		rules = append(rules, validation.Rule{
			Field:   "status",
			Valid:   isString && model.ValidProjectStatus(status),
			Message: "Invalid project status",
		})
		updates["status"] = status
	}
	if raw, ok := body["raised"]; ok {
		raised, numErr := decodeDecimal(raw)
		rules = append(rules, validation.Rule{
			Field:   "raised",
			Valid:   numErr == nil && !raised.IsNegative(),
			Message: "Raised amount cannot be negative",
		})
		updates["raised"] = raised
	}
	if raw, ok := body["backers"]; ok {
		backers, numErr := decodeInt(raw)
		rules = append(rules, validation.Rule{
			Field:   "backers",
			Valid:   numErr == nil && backers >= 0,
			Message: "Number of backers cannot be negative",
		})
		updates["backers"] = backers
	}
	if raw, ok := body["daysLeft"]; ok {
		daysLeft, numErr := decodeInt(raw)
		rules = append(rules, validation.Rule{
			Field:   "daysLeft",
			Valid:   numErr == nil && daysLeft >= 0,
			Message: "Days left cannot be negative",
		})
		updates["days_left"] = daysLeft
	}

	if errs := validation.Apply(rules); len(errs) > 0 {
		ValidationFailed(c, errs)
		return
	}

	project, err := h.projectLogic.UpdateProject(uint(id), updates)
	if err != nil {
		if errors.Is(err, logic.ErrProjectNotFound) {
			NotFound(c, "Project not found")
			return
		}
		Internal(c, "Failed to update project", err)
		return
	}

	Ok(c, "Project updated successfully", ToProjectDetail(project))
}

// GetPlatformStats 获取平台统计信息
func (h *ProjectHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.projectLogic.GetPlatformStats()
	if err != nil {
		Internal(c, "Failed to fetch statistics", err)
		return
	}

	Ok(c, "", stats)
}

// decodeDecimal 解析JSON数字为decimal
func decodeDecimal(raw interface{}) (decimal.Decimal, error) {
	num, ok := raw.(json.Number)
	if !ok {
		return decimal.Zero, fmt.Errorf("not a number: %v", raw)
	}
	return decimal.NewFromString(num.String())
}

// decodeInt 解析JSON数字为整数
func decodeInt(raw interface{}) (int64, error) {
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("not a number: %v", raw)
	}
	return num.Int64()
}
