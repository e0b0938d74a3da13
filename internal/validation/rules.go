package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Shubhamjaiswal54/CrowdSeed/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// 地址与交易哈希的格式要求，长度来自以太坊定义
var (
	addressPattern = regexp.MustCompile(fmt.Sprintf(`^0x[a-fA-F0-9]{%d}$`, common.AddressLength*2))
	txHashPattern  = regexp.MustCompile(fmt.Sprintf(`^0x[a-fA-F0-9]{%d}$`, common.HashLength*2))
)

// MinGoal 项目最低募集目标（ETH）
var MinGoal = decimal.RequireFromString("0.1")

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule 声明式校验规则：字段 -> 断言 + 错误信息
type Rule struct {
	Field   string
	Valid   bool
	Message string
}

// Apply 依次执行规则表，返回所有未通过的字段错误
func Apply(rules []Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		if !r.Valid {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	return errs
}

// IsAddress 判断是否为0x前缀的40位十六进制地址
func IsAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// IsTxHash 判断是否为0x前缀的64位十六进制交易哈希
func IsTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// TransactionInput 记录投资交易的请求体
type TransactionInput struct {
	ProjectID       int64           `json:"projectId"`
	InvestorAddress string          `json:"investorAddress"`
	Amount          decimal.Decimal `json:"amount"`
	TxHash          string          `json:"txHash"`
	BlockNumber     *int64          `json:"blockNumber"`
	GasUsed         *int64          `json:"gasUsed"`
}

// TransactionRules 交易请求的校验规则表
func TransactionRules(in *TransactionInput, minInvestment decimal.Decimal) []Rule {
	return []Rule{
		{"projectId", in.ProjectID > 0, "Invalid project ID"},
		{"investorAddress", IsAddress(in.InvestorAddress), "Invalid Ethereum address format"},
		{"amount", in.Amount.GreaterThanOrEqual(minInvestment), fmt.Sprintf("Minimum investment is %s ETH", minInvestment)},
		{"txHash", IsTxHash(in.TxHash), "Invalid transaction hash format"},
		{"blockNumber", in.BlockNumber == nil || *in.BlockNumber >= 0, "Block number must be a positive integer"},
		{"gasUsed", in.GasUsed == nil || *in.GasUsed >= 0, "Gas used must be a positive integer"},
	}
}

// ProjectUpdateInput 项目进展条目
type ProjectUpdateInput struct {
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// ProjectRewardInput 项目回报档位
type ProjectRewardInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
}

// ProjectInput 创建项目的请求体
type ProjectInput struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	FullDescription string               `json:"fullDescription"`
	Image           string               `json:"image"`
	Goal            decimal.Decimal      `json:"goal"`
	DaysLeft        int                  `json:"daysLeft"`
	Category        string               `json:"category"`
	Creator         string               `json:"creator"`
	WalletAddress   string               `json:"walletAddress"`
	ContractAddress string               `json:"contractAddress"`
	Updates         []ProjectUpdateInput `json:"updates"`
	Rewards         []ProjectRewardInput `json:"rewards"`
}

// ProjectRules 创建项目请求的校验规则表
func ProjectRules(in *ProjectInput) []Rule {
	return []Rule{
		{"title", len(in.Title) >= 5 && len(in.Title) <= 100, "Title must be between 5 and 100 characters"},
		{"description", len(in.Description) >= 20 && len(in.Description) <= 1000, "Description must be between 20 and 1000 characters"},
		{"fullDescription", len(in.FullDescription) <= 5000, "Full description cannot exceed 5000 characters"},
		{"image", in.Image != "", "Image URL is required"},
		{"goal", in.Goal.GreaterThanOrEqual(MinGoal), "Goal must be at least 0.1 ETH"},
		{"daysLeft", in.DaysLeft >= 1, "Campaign must run for at least 1 day"},
		{"category", model.ValidCategory(in.Category), "Invalid category"},
		{"creator", len(in.Creator) >= 2 && len(in.Creator) <= 50, "Creator name must be between 2 and 50 characters"},
		{"walletAddress", in.WalletAddress == "" || IsAddress(in.WalletAddress), "Invalid Ethereum address format"},
		{"contractAddress", in.ContractAddress == "" || IsAddress(in.ContractAddress), "Invalid contract address format"},
	}
}
