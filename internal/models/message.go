package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message 代表聊天室中的一則訊息，同時滿足 WebSocket 傳輸和資料庫儲存需求
type Message struct {
	ID        string      `json:"id" gorm:"primaryKey;type:uuid"`
	Seq       int64       `json:"-" gorm:"autoIncrement;uniqueIndex"` // 插入順序，僅用於時間戳相同時排序
	Text      string      `json:"text" gorm:"type:text;not null"`
	Sender    string      `json:"sender" gorm:"type:varchar(64);not null"`
	Timestamp time.Time   `json:"timestamp" gorm:"index;not null"`
	Reactions ReactionSet `json:"reactions" gorm:"type:jsonb;not null;default:'{}'"`
}

// NewMessage 建立一則新訊息，分配新的 id 與空的 reactions
func NewMessage(text, sender string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
		Reactions: ReactionSet{},
	}
}

// ReactionSet 是訊息的 emoji -> 使用者名稱列表映射。
// 不變式：不儲存空列表（某個 emoji 的最後一位使用者移除後，該 key 即刪除）；
// 同一 emoji 下同一使用者至多出現一次。
type ReactionSet map[string][]string

// Value 將 reactions 序列化為 jsonb 欄位
func (r ReactionSet) Value() (driver.Value, error) {
	if r == nil {
		r = ReactionSet{}
	}
	return json.Marshal(map[string][]string(r))
}

// Scan 從資料庫讀回 jsonb 欄位
func (r *ReactionSet) Scan(value interface{}) error {
	if value == nil {
		*r = ReactionSet{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported reactions column type %T", value)
	}

	if len(raw) == 0 {
		*r = ReactionSet{}
		return nil
	}
	return json.Unmarshal(raw, (*map[string][]string)(r))
}

// MarshalJSON 保證空集合輸出 {} 而非 null
func (r ReactionSet) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string][]string(r))
}

// Check 檢查 ReactionSet 的不變式
func (r ReactionSet) Check() error {
	for emoji, users := range r {
		if len(users) == 0 {
			return fmt.Errorf("emoji %q has an empty user list", emoji)
		}
		seen := make(map[string]struct{}, len(users))
		for _, user := range users {
			if _, ok := seen[user]; ok {
				return fmt.Errorf("emoji %q lists user %q twice", emoji, user)
			}
			seen[user] = struct{}{}
		}
	}
	return nil
}
