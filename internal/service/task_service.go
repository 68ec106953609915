package service

import (
	"context"

	"go.uber.org/zap"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/internal/repository"
	"agency-hub/pkg/constants"
	pkgErrors "agency-hub/pkg/errors"
)

type TaskService interface {
	Create(ctx context.Context, projectID string, req *dto.CreateTaskRequest) (*model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	// ListByProject board order: status, then order
	ListByProject(ctx context.Context, projectID string) ([]*model.Task, error)
	List(ctx context.Context, q *dto.TaskListQuery) (*dto.PageResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	repo        repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

func NewTaskService(
	repo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) TaskService {
	return &taskService{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *taskService) Create(ctx context.Context, projectID string, req *dto.CreateTaskRequest) (*model.Task, error) {
	if err := s.checkProject(ctx, projectID); err != nil {
		return nil, err
	}
	if req.AssignedToID != nil {
		if err := userExists(ctx, s.userRepo, *req.AssignedToID); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       constants.TaskStatusTodo,
		Priority:     req.Priority,
		ProjectID:    projectID,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate.Ptr(),
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Order != nil {
		task.Order = *req.Order
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.recalculate(ctx, projectID)
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "task")
	}
	return task, nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*model.Task, error) {
	if err := s.checkProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *taskService) List(ctx context.Context, q *dto.TaskListQuery) (*dto.PageResponse, error) {
	tasks, total, err := s.repo.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageResponse(tasks, total, q.GetPage(), q.GetPageSize()), nil
}

func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "task")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = req.Priority
	}
	if req.AssignedToID != nil {
		if err := userExists(ctx, s.userRepo, *req.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = req.AssignedToID
		task.AssignedTo = nil
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate.Ptr()
	}
	if req.Order != nil {
		task.Order = *req.Order
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.recalculate(ctx, task.ProjectID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundAs(err, "task")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "task")
	}

	s.recalculate(ctx, task.ProjectID)
	return nil
}

// recalculate refreshes project progress; the task write already succeeded, so failures are only logged
func (s *taskService) recalculate(ctx context.Context, projectID string) {
	if err := s.projectRepo.RecalculateProgress(ctx, projectID); err != nil {
		s.logger.Error("recalculate project progress failed",
			zap.String("project_id", projectID),
			zap.Error(err))
	}
}

func (s *taskService) checkProject(ctx context.Context, projectID string) error {
	ok, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return pkgErrors.NotFound("project")
	}
	return nil
}
