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

type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error)
	// GetByID returns the project with its client, tasks and relation counts
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, q *dto.ProjectListQuery) (*dto.PageResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	repo       repository.ProjectRepository
	clientRepo repository.ClientRepository
	logger     *zap.Logger
}

func NewProjectService(repo repository.ProjectRepository, clientRepo repository.ClientRepository, logger *zap.Logger) ProjectService {
	return &projectService{
		repo:       repo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error) {
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      constants.ProjectStatusNew,
		ClientID:    req.ClientID,
		StartDate:   req.StartDate.Ptr(),
		DueDate:     req.DueDate.Ptr(),
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "project")
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, q *dto.ProjectListQuery) (*dto.PageResponse, error) {
	projects, total, err := s.repo.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageResponse(projects, total, q.GetPage(), q.GetPageSize()), nil
}

func (s *projectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "project")
	}

	// once tasks exist, progress belongs to the recalculator
	if req.Progress != nil {
		taskCount, err := s.repo.CountTasks(ctx, id)
		if err != nil {
			return nil, err
		}
		if taskCount > 0 {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "progress is derived from tasks and cannot be set directly")
		}
	}

	if !req.UnlinksClient() {
		if err := s.checkClient(ctx, req.ClientID); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	switch {
	case req.UnlinksClient():
		project.ClientID = nil
		project.Client = nil
	case req.ClientID != nil:
		project.ClientID = req.ClientID
		project.Client = nil
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate.Ptr()
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate.Ptr()
	}
	if project.StartDate != nil && project.DueDate != nil && project.DueDate.Before(*project.StartDate) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "dueDate must not be before startDate")
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	if req.Progress != nil {
		if err := s.repo.SetProgress(ctx, id, *req.Progress); err != nil {
			return nil, err
		}
		project.Progress = *req.Progress
	}

	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "project")
	}
	s.logger.Info("project deleted", zap.String("project_id", id))
	return nil
}

func (s *projectService) checkClient(ctx context.Context, clientID *string) error {
	if clientID == nil {
		return nil
	}
	ok, err := s.clientRepo.Exists(ctx, *clientID)
	if err != nil {
		return err
	}
	if !ok {
		return pkgErrors.NotFound("client")
	}
	return nil
}
