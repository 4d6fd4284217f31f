package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 提交状态
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// StringList 以 JSON 存储的字符串列表
type StringList []string

// Value 实现 driver.Valuer 接口
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source %T", value)
	}
	return json.Unmarshal(b, (*[]string)(s))
}

// ToolSubmission 待审核的工具提交
// 审核通过之前不会进入目录
type ToolSubmission struct {
	ID              string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name            string     `json:"name" gorm:"type:varchar(255);not null"`
	Description     string     `json:"description" gorm:"type:text"`
	LongDescription string     `json:"long_description" gorm:"type:text"`
	Category        StringList `json:"category" gorm:"type:text"`
	Industries      StringList `json:"industries" gorm:"type:text"`
	Website         string     `json:"website" gorm:"type:varchar(512)"`
	PriceType       PriceType  `json:"price_type" gorm:"type:varchar(20)"`
	StartingAt      string     `json:"starting_at,omitempty" gorm:"type:varchar(64)"`
	Integrations    StringList `json:"integrations" gorm:"type:text"`
	Logo            string     `json:"logo" gorm:"type:varchar(512)"`
	VisitorID       string     `json:"visitor_id,omitempty" gorm:"type:varchar(36);index"`
	Status          string     `json:"status" gorm:"type:varchar(20);index;default:'pending'"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (s *ToolSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (ToolSubmission) TableName() string {
	return "tool_submissions"
}
