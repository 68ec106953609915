package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agency-hub/internal/model"
)

type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	FindByID(ctx context.Context, id string) (*model.File, error)
	// ListByProject newest first, with uploaders
	ListByProject(ctx context.Context, projectID string) ([]*model.File, error)
	UpdateURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(file).Error; err != nil {
		return dbError(err, "create file failed")
	}
	return nil
}

func (r *fileRepository) FindByID(ctx context.Context, id string) (*model.File, error) {
	var file model.File
	err := r.db.WithContext(ctx).
		Preload("UploadedBy", userBrief).
		Preload("Project", projectBrief).
		Where("id = ?", id).
		First(&file).Error
	if err != nil {
		return nil, dbError(err, "query file failed")
	}
	return &file, nil
}

func (r *fileRepository) ListByProject(ctx context.Context, projectID string) ([]*model.File, error) {
	var files []*model.File
	err := r.db.WithContext(ctx).
		Preload("UploadedBy", userBrief).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, dbError(err, "query files failed")
	}
	return files, nil
}

func (r *fileRepository) UpdateURL(ctx context.Context, id, url string) error {
	err := r.db.WithContext(ctx).Model(&model.File{}).Where("id = ?", id).Update("url", url).Error
	if err != nil {
		return dbError(err, "update file url failed")
	}
	return nil
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.File{}, id, "delete file failed")
}
