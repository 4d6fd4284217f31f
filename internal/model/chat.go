package model

import "time"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession 聊天会话
type ChatSession struct {
	ID        string    `json:"id"`
	VisitorID string    `json:"visitor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage 聊天消息
type ChatMessage struct {
	ID              string    `json:"id"`
	Role            string    `json:"role"` // user, assistant
	Content         string    `json:"content"`
	Timestamp       time.Time `json:"timestamp"`
	Recommendations []Tool    `json:"recommendations,omitempty"`
}
