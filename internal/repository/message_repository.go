package repository

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"chat_web/internal/models"
	"chat_web/internal/storage"
)

// ErrMessageNotFound 表示指定 id 的訊息不存在
var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindRecent(ctx context.Context, limit int) ([]models.Message, error)
	FindByID(ctx context.Context, id string) (*models.Message, error)
	UpdateReactions(ctx context.Context, id string, reactions models.ReactionSet) error
}

type messageRepository struct {
	db *storage.PostgresDB
}

func NewMessageRepository(db *storage.PostgresDB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindRecent 取最新的 limit 則訊息，回傳時按時間由舊到新排序。
// 時間戳相同時以插入順序（seq）決定先後。
func (r *messageRepository) FindRecent(ctx context.Context, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, seq DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return lo.Reverse(messages), nil
}

func (r *messageRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// UpdateReactions 以單一欄位更新覆寫 reactions，不動 text/sender/timestamp
func (r *messageRepository) UpdateReactions(ctx context.Context, id string, reactions models.ReactionSet) error {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("reactions", reactions)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
