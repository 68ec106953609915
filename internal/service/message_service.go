package service

import (
	"context"

	"go.uber.org/zap"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/internal/repository"
	pkgErrors "agency-hub/pkg/errors"
)

type MessageService interface {
	// Create posts a message to the project as authorID
	Create(ctx context.Context, projectID, authorID string, req *dto.CreateMessageRequest) (*model.Message, error)
	GetByID(ctx context.Context, id string) (*model.Message, error)
	// ListByProject oldest first
	ListByProject(ctx context.Context, projectID string) ([]*model.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageService struct {
	repo        repository.MessageRepository
	projectRepo repository.ProjectRepository
	logger      *zap.Logger
}

func NewMessageService(repo repository.MessageRepository, projectRepo repository.ProjectRepository, logger *zap.Logger) MessageService {
	return &messageService{
		repo:        repo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (s *messageService) Create(ctx context.Context, projectID, authorID string, req *dto.CreateMessageRequest) (*model.Message, error) {
	if err := s.checkProject(ctx, projectID); err != nil {
		return nil, err
	}

	message := &model.Message{
		ProjectID: projectID,
		UserID:    authorID,
		Content:   req.Content,
		FileIDs:   req.FileIDs,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, message.ID)
}

func (s *messageService) GetByID(ctx context.Context, id string) (*model.Message, error) {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "message")
	}
	return message, nil
}

func (s *messageService) ListByProject(ctx context.Context, projectID string) ([]*model.Message, error) {
	if err := s.checkProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *messageService) Delete(ctx context.Context, id string) error {
	return notFoundAs(s.repo.Delete(ctx, id), "message")
}

func (s *messageService) checkProject(ctx context.Context, projectID string) error {
	ok, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return pkgErrors.NotFound("project")
	}
	return nil
}
