package logic

import (
	"strings"
	"testing"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	addrAlice = "0x742d35Cc6634C0532925a3b844Bc9e7595f8fA8e"
	addrBob   = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

	hashOne   = "0xA1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8F90"
	hashTwo   = "0xb2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1"
	hashThree = "0xc3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2"
	hashFour  = "0xd4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3"
)

// newTestDB 内存SQLite，限制单连接保证所有操作落在同一个库上
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Project{}, &model.Transaction{}))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, goal string) *model.Project {
	t.Helper()

	project := &model.Project{
		Title:       "Solar powered mesh network",
		Description: "Community owned connectivity for remote villages.",
		Image:       "https://example.com/mesh.png",
		Category:    "Technology",
		Creator:     "Mesh Collective",
		Goal:        decimal.RequireFromString(goal),
		Raised:      decimal.Zero,
		DaysLeft:    30,
		Status:      model.ProjectStatusActive,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func reloadProject(t *testing.T, db *gorm.DB, id uint) *model.Project {
	t.Helper()

	var project model.Project
	require.NoError(t, db.First(&project, id).Error)
	return &project
}

func countTransactions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&count).Error)
	return count
}

func TestRecordTransaction(t *testing.T) {
	db := newTestDB(t)
	tl := NewTransactionLogic(db)
	project := seedProject(t, db, "10")

	t.Run("first contribution", func(t *testing.T) {
		txn, err := tl.RecordTransaction(&model.Transaction{
			ProjectID:       project.ID,
			InvestorAddress: addrAlice,
			Amount:          decimal.NewFromInt(2),
			TxHash:          hashOne,
		})
		require.NoError(t, err)
		assert.Equal(t, model.TransactionStatusConfirmed, txn.Status)
		assert.Equal(t, strings.ToLower(addrAlice), txn.InvestorAddress)
		assert.Equal(t, strings.ToLower(hashOne), txn.TxHash)

		got := reloadProject(t, db, project.ID)
		assert.True(t, got.Raised.Equal(decimal.NewFromInt(2)), got.Raised.String())
		assert.EqualValues(t, 1, got.Backers)
	})

	t.Run("repeat investor only raises the total", func(t *testing.T) {
		// 同一地址换大小写提交，仍算同一个投资人
		_, err := tl.RecordTransaction(&model.Transaction{
			ProjectID:       project.ID,
			InvestorAddress: "0x" + strings.ToUpper(addrAlice[2:]),
			Amount:          decimal.NewFromInt(3),
			TxHash:          hashTwo,
		})
		require.NoError(t, err)

		got := reloadProject(t, db, project.ID)
		assert.True(t, got.Raised.Equal(decimal.NewFromInt(5)), got.Raised.String())
		assert.EqualValues(t, 1, got.Backers)
	})

	t.Run("second investor adds a backer", func(t *testing.T) {
		_, err := tl.RecordTransaction(&model.Transaction{
			ProjectID:       project.ID,
			InvestorAddress: addrBob,
			Amount:          decimal.NewFromInt(5),
			TxHash:          hashThree,
		})
		require.NoError(t, err)

		got := reloadProject(t, db, project.ID)
		assert.True(t, got.Raised.Equal(decimal.NewFromInt(10)), got.Raised.String())
		assert.EqualValues(t, 2, got.Backers)
		assert.True(t, got.IsGoalReached())
	})

	t.Run("duplicate hash rejected regardless of hex case", func(t *testing.T) {
		_, err := tl.RecordTransaction(&model.Transaction{
			ProjectID:       project.ID,
			InvestorAddress: addrBob,
			Amount:          decimal.NewFromInt(1),
			TxHash:          "0x" + strings.ToUpper(hashOne[2:]),
		})
		require.ErrorIs(t, err, ErrDuplicateTransaction)

		// 拒绝后项目汇总与交易记录都不应有任何变化
		got := reloadProject(t, db, project.ID)
		assert.True(t, got.Raised.Equal(decimal.NewFromInt(10)), got.Raised.String())
		assert.EqualValues(t, 2, got.Backers)
		assert.EqualValues(t, 3, countTransactions(t, db))
	})
}

func TestRecordTransactionUnknownProject(t *testing.T) {
	db := newTestDB(t)
	tl := NewTransactionLogic(db)

	_, err := tl.RecordTransaction(&model.Transaction{
		ProjectID:       42,
		InvestorAddress: addrAlice,
		Amount:          decimal.NewFromInt(1),
		TxHash:          hashOne,
	})
	require.ErrorIs(t, err, ErrProjectNotFound)
	assert.Zero(t, countTransactions(t, db))
}

func TestGetInvestorTransactionsStatusFilter(t *testing.T) {
	db := newTestDB(t)
	tl := NewTransactionLogic(db)
	project := seedProject(t, db, "10")

	for i, amount := range []int64{2, 3} {
		hash := []string{hashOne, hashTwo}[i]
		_, err := tl.RecordTransaction(&model.Transaction{
			ProjectID:       project.ID,
			InvestorAddress: addrAlice,
			Amount:          decimal.NewFromInt(amount),
			TxHash:          hash,
		})
		require.NoError(t, err)
	}

	// 一条尚未确认的记录，过滤 confirmed 时列表和统计都要排除它
	require.NoError(t, db.Create(&model.Transaction{
		ProjectID:       project.ID,
		InvestorAddress: strings.ToLower(addrAlice),
		Amount:          decimal.NewFromInt(7),
		TxHash:          hashFour,
		Status:          model.TransactionStatusPending,
	}).Error)

	q := TransactionQuery{Status: "confirmed", Sort: "-createdAt", Page: 1, Limit: 10}
	txns, total, stats, err := tl.GetInvestorTransactions(addrAlice, q)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
	assert.EqualValues(t, 2, total)
	assert.EqualValues(t, 2, stats.TotalTransactions)
	assert.True(t, stats.TotalInvested.Equal(decimal.NewFromInt(5)), stats.TotalInvested.String())
	assert.EqualValues(t, 1, stats.ProjectsSupported)

	q.Status = ""
	txns, total, stats, err = tl.GetInvestorTransactions(addrAlice, q)
	require.NoError(t, err)
	assert.Len(t, txns, 3)
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 3, stats.TotalTransactions)
	assert.True(t, stats.TotalInvested.Equal(decimal.NewFromInt(12)), stats.TotalInvested.String())
}
