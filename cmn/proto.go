package cmn

import (
	"encoding/json"

	"github.com/jmoiron/sqlx/types"
)

// ReqProto 统一请求协议
type ReqProto struct {
	// Action 操作名，由各模块 handler 自行分发
	Action string `json:"action,omitempty"`

	// Sets 更新类操作允许写入的字段名列表，字段值放在 Data 中
	Sets []string `json:"sets,omitempty"`

	//***页码从第零页开始***
	Page     int64 `json:"page,omitempty"`
	PageSize int64 `json:"pageSize,omitempty"`

	Data   json.RawMessage `json:"data,omitempty"`
	Filter json.RawMessage `json:"filter,omitempty"`
}

// ReplyProto 统一响应协议
type ReplyProto struct {
	// Status, 0: success, 1: business fault, -1: internal fault
	Status int `json:"status"`

	// Msg 处理结果的文字描述，直接面向用户展示
	Msg string `json:"msg,omitempty"`

	// Data, operand
	Data types.JSONText `json:"data,omitempty"`

	// RowCount 列表类操作的总行数
	RowCount int64 `json:"rowCount,omitempty"`
}
