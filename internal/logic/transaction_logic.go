package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionLogic 交易记录业务逻辑
type TransactionLogic struct {
	db *gorm.DB
}

// NewTransactionLogic 创建交易记录业务逻辑
func NewTransactionLogic(db *gorm.DB) *TransactionLogic {
	return &TransactionLogic{db: db}
}

// TransactionQuery 交易列表查询参数
type TransactionQuery struct {
	Status string
	Sort   string
	Page   int
	Limit  int
}

var transactionSortFields = map[string]string{
	"createdAt":   "created_at",
	"amount":      "amount",
	"blockNumber": "block_number",
}

// RecordTransaction 记录一笔投资交易并更新所属项目的募集进度。
// 地址与哈希统一小写后入库；tx_hash 先查重，唯一索引兜底。
func (t *TransactionLogic) RecordTransaction(txn *model.Transaction) (*model.Transaction, error) {
	txn.InvestorAddress = strings.ToLower(txn.InvestorAddress)
	txn.TxHash = strings.ToLower(txn.TxHash)
	txn.Status = model.TransactionStatusConfirmed

	err := t.db.Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.First(&project, txn.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&model.Transaction{}).
			Where("tx_hash = ?", txn.TxHash).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateTransaction
		}

		if err := tx.Create(txn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTransaction
			}
			return err
		}

		// 入账后恰好一条记录，说明是该项目的新投资人
		var count int64
		if err := tx.Model(&model.Transaction{}).
			Where("project_id = ? AND investor_address = ?", txn.ProjectID, txn.InvestorAddress).
			Count(&count).Error; err != nil {
			return err
		}

		// 字段级原子自增，并发入账不会丢更新
		updates := map[string]interface{}{
			"raised": gorm.Expr("raised + ?", txn.Amount),
		}
		if count == 1 {
			updates["backers"] = gorm.Expr("backers + 1")
		}
		return tx.Model(&model.Project{}).Where("id = ?", txn.ProjectID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ProjectTransactionStats 单个项目的交易统计
type ProjectTransactionStats struct {
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalTransactions int64           `json:"totalTransactions"`
	UniqueInvestors   int64           `json:"uniqueInvestors"`
}

// GetProjectTransactions 获取项目交易记录与统计
func (t *TransactionLogic) GetProjectTransactions(projectID uint, q TransactionQuery) ([]model.Transaction, int64, *ProjectTransactionStats, error) {
	var project model.Project
	if err := t.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil, ErrProjectNotFound
		}
		return nil, 0, nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	filtered := func() *gorm.DB {
		query := t.db.Model(&model.Transaction{}).Where("project_id = ?", projectID)
		if q.Status != "" {
			query = query.Where("status = ?", q.Status)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []model.Transaction
	offset := (q.Page - 1) * q.Limit
	if err := filtered().
		Preload("Project", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title", "creator") }).
		Order(orderClause(q.Sort, transactionSortFields, "created_at DESC")).
		Offset(offset).
		Limit(q.Limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	var stats ProjectTransactionStats
	statsQuery := `
		SELECT
			COALESCE(SUM(amount), 0) AS total_amount,
			COUNT(*) AS total_transactions,
			COUNT(DISTINCT investor_address) AS unique_investors
		FROM transactions
		WHERE project_id = ?`
	args := []interface{}{projectID}
	if q.Status != "" {
		statsQuery += " AND status = ?"
		args = append(args, q.Status)
	}
	if err := t.db.Raw(statsQuery, args...).Scan(&stats).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch transaction stats: %w", err)
	}

	return transactions, total, &stats, nil
}

// InvestorStats 单个投资人的统计
type InvestorStats struct {
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalTransactions int64           `json:"totalTransactions"`
	ProjectsSupported int64           `json:"projectsSupported"`
}

// GetInvestorTransactions 获取投资人的交易记录与统计
func (t *TransactionLogic) GetInvestorTransactions(address string, q TransactionQuery) ([]model.Transaction, int64, *InvestorStats, error) {
	address = strings.ToLower(address)

	filtered := func() *gorm.DB {
		query := t.db.Model(&model.Transaction{}).Where("investor_address = ?", address)
		if q.Status != "" {
			query = query.Where("status = ?", q.Status)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []model.Transaction
	offset := (q.Page - 1) * q.Limit
	if err := filtered().
		Preload("Project", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title", "creator", "image", "status") }).
		Order(orderClause(q.Sort, transactionSortFields, "created_at DESC")).
		Offset(offset).
		Limit(q.Limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	// 统计与列表使用同一组过滤条件
	var stats InvestorStats
	statsQuery := `
		SELECT
			COALESCE(SUM(amount), 0) AS total_invested,
			COUNT(*) AS total_transactions,
			COUNT(DISTINCT project_id) AS projects_supported
		FROM transactions
		WHERE investor_address = ?`
	args := []interface{}{address}
	if q.Status != "" {
		statsQuery += " AND status = ?"
		args = append(args, q.Status)
	}
	if err := t.db.Raw(statsQuery, args...).Scan(&stats).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch investor stats: %w", err)
	}

	return transactions, total, &stats, nil
}

// TransactionOverview 全局交易统计
type TransactionOverview struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalVolume       decimal.Decimal `json:"totalVolume"`
	UniqueInvestors   int64           `json:"uniqueInvestors"`
	AverageInvestment decimal.Decimal `json:"averageInvestment"`
}

// DailyVolume 单日交易量
type DailyVolume struct {
	Date   string          `json:"date"`
	Volume decimal.Decimal `json:"volume"`
	Count  int64           `json:"count"`
}

// TransactionStats 全局交易统计响应
type TransactionStats struct {
	Overview    TransactionOverview `json:"overview"`
	DailyVolume []DailyVolume       `json:"dailyVolume"`
}

// GetTransactionStats 获取全局交易统计与最近30天的每日交易量
func (t *TransactionLogic) GetTransactionStats() (*TransactionStats, error) {
	var overview TransactionOverview
	err := t.db.Raw(`
		SELECT
			COUNT(*) AS total_transactions,
			COALESCE(SUM(amount), 0) AS total_volume,
			COUNT(DISTINCT investor_address) AS unique_investors,
			COALESCE(ROUND(AVG(amount), 4), 0) AS average_investment
		FROM transactions
	`).Scan(&overview).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction stats: %w", err)
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	var daily []DailyVolume
	err = t.db.Raw(`
		SELECT
			to_char(created_at, 'YYYY-MM-DD') AS date,
			COALESCE(SUM(amount), 0) AS volume,
			COUNT(*) AS count
		FROM transactions
		WHERE created_at >= ?
		GROUP BY to_char(created_at, 'YYYY-MM-DD')
		ORDER BY date ASC
	`, thirtyDaysAgo).Scan(&daily).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily volume: %w", err)
	}

	return &TransactionStats{Overview: overview, DailyVolume: daily}, nil
}
