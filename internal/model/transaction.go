package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction 投资交易记录，入账后不再修改或删除
type Transaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProjectID       uint              `json:"projectId" gorm:"not null;index"`
	InvestorAddress string            `json:"investorAddress" gorm:"not null;index"` // 小写存储
	Amount          decimal.Decimal   `json:"amount" gorm:"type:numeric(32,18);not null"`
	TxHash          string            `json:"txHash" gorm:"not null;uniqueIndex"` // 小写存储，幂等键
	BlockNumber     *int64            `json:"blockNumber,omitempty"`
	GasUsed         *int64            `json:"gasUsed,omitempty"`
	Status          TransactionStatus `json:"status" gorm:"default:'pending'"`

	// 关联
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// TransactionStatus 交易状态
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"   // 待确认
	TransactionStatusConfirmed TransactionStatus = "confirmed" // 已确认
	TransactionStatusFailed    TransactionStatus = "failed"    // 失败
)

// ValidTransactionStatus 判断是否为合法的交易状态
func ValidTransactionStatus(s string) bool {
	switch TransactionStatus(s) {
	case TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusFailed:
		return true
	}
	return false
}
