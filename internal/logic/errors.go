package logic

import "errors"

// 业务错误，handler 层映射为对应的HTTP状态码
var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)
