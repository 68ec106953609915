package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agency-hub/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id string) (*model.Message, error)
	// ListByProject oldest first, with authors
	ListByProject(ctx context.Context, projectID string) ([]*model.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error; err != nil {
		return dbError(err, "create message failed")
	}
	return nil
}

func (r *messageRepository) FindByID(ctx context.Context, id string) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Preload("User", userBrief).
		Preload("Project", projectBrief).
		Where("id = ?", id).
		First(&message).Error
	if err != nil {
		return nil, dbError(err, "query message failed")
	}
	return &message, nil
}

func (r *messageRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.WithContext(ctx).
		Preload("User", userBrief).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, dbError(err, "query messages failed")
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.Message{}, id, "delete message failed")
}
