package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	// FindByID loads the task with its assignee and project
	FindByID(ctx context.Context, id string) (*model.Task, error)
	// ListByProject board order: status, then order
	ListByProject(ctx context.Context, projectID string) ([]*model.Task, error)
	List(ctx context.Context, q dto.TaskListQuery) ([]*model.Task, int64, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return dbError(err, "create task failed")
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("AssignedTo", userBrief).
		Preload("Project", projectBrief).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, dbError(err, "query task failed")
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.WithContext(ctx).
		Preload("AssignedTo", userBrief).
		Where("project_id = ?", projectID).
		Order(taskBoardOrder).
		Find(&tasks).Error
	if err != nil {
		return nil, dbError(err, "query tasks failed")
	}
	return tasks, nil
}

func (r *taskRepository) List(ctx context.Context, q dto.TaskListQuery) ([]*model.Task, int64, error) {
	var (
		tasks []*model.Task
		total int64
	)

	query := r.db.WithContext(ctx).Model(&model.Task{})
	if q.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+q.Keyword+"%")
	}
	if q.ProjectID != "" {
		query = query.Where("project_id = ?", q.ProjectID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.AssignedToID != "" {
		query = query.Where("assigned_to_id = ?", q.AssignedToID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "count tasks failed")
	}
	err := applyOptions(query,
		Paginate(q.PageQuery),
		WithPreload("AssignedTo", userBrief),
		WithPreload("Project", projectBrief),
	).Order(taskBoardOrder).Find(&tasks).Error
	if err != nil {
		return nil, 0, dbError(err, "query tasks failed")
	}
	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return updateAll(r.db.WithContext(ctx), task, "update task failed")
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.Task{}, id, "delete task failed")
}
