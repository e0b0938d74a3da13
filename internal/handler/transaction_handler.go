package handler

import (
	"errors"
	"strconv"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/config"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/logger"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/logic"
	"github.com/Shubhamjaiswal54/CrowdSeed/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct {
	transactionLogic *logic.TransactionLogic
	minInvestment    decimal.Decimal
}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler(db *gorm.DB, cfg *config.Config) *TransactionHandler {
	minInvestment, err := decimal.NewFromString(cfg.Platform.MinInvestment)
	if err != nil {
		logger.Warn("Invalid platform.min_investment %q, falling back to 0.001", cfg.Platform.MinInvestment)
		minInvestment = decimal.RequireFromString("0.001")
	}

	return &TransactionHandler{
		transactionLogic: logic.NewTransactionLogic(db),
		minInvestment:    minInvestment,
	}
}

// RecordTransaction 记录一笔投资交易
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	var in validation.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}

	if errs := validation.Apply(validation.TransactionRules(&in, h.minInvestment)); len(errs) > 0 {
		ValidationFailed(c, errs)
		return
	}

	txn, err := h.transactionLogic.RecordTransaction(ToTransaction(&in))
	if err != nil {
		switch {
		case errors.Is(err, logic.ErrProjectNotFound):
			NotFound(c, "Project not found")
		case errors.Is(err, logic.ErrDuplicateTransaction):
			Conflict(c, "Transaction already recorded")
		default:
			Internal(c, "Failed to record transaction", err)
		}
		return
	}

	Created(c, "Transaction recorded successfully", txn)
}

// GetProjectTransactions 获取项目交易记录与统计
func (h *TransactionHandler) GetProjectTransactions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		BadRequest(c, "Invalid project ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = logic.NormalizePage(page, limit, 20)

	query := logic.TransactionQuery{
		Status: c.Query("status"),
		Sort:   c.DefaultQuery("sort", "-createdAt"),
		Page:   page,
		Limit:  limit,
	}

	transactions, total, stats, err := h.transactionLogic.GetProjectTransactions(uint(id), query)
	if err != nil {
		if errors.Is(err, logic.ErrProjectNotFound) {
			NotFound(c, "Project not found")
			return
		}
		Internal(c, "Failed to fetch transactions", err)
		return
	}

	OkList(c, transactions, stats, NewPagination(page, limit, total))
}

// GetInvestorTransactions 获取投资人交易记录与统计
func (h *TransactionHandler) GetInvestorTransactions(c *gin.Context) {
	address := c.Param("address")
	if !validation.IsAddress(address) {
		BadRequest(c, "Invalid Ethereum address format")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = logic.NormalizePage(page, limit, 20)

	query := logic.TransactionQuery{
		Status: c.Query("status"),
		Sort:   c.DefaultQuery("sort", "-createdAt"),
		Page:   page,
		Limit:  limit,
	}

	transactions, total, stats, err := h.transactionLogic.GetInvestorTransactions(address, query)
	if err != nil {
		Internal(c, "Failed to fetch investor transactions", err)
		return
	}

	OkList(c, transactions, stats, NewPagination(page, limit, total))
}

// GetTransactionStats 获取全局交易统计
func (h *TransactionHandler) GetTransactionStats(c *gin.Context) {
	stats, err := h.transactionLogic.GetTransactionStats()
	if err != nil {
		Internal(c, "Failed to fetch transaction statistics", err)
		return
	}

	Ok(c, "", stats)
}
