package service

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"agency-hub/internal/model"
	"agency-hub/internal/repository"
	pkgErrors "agency-hub/pkg/errors"
)

// PortalService read-only views for client users. Every read is scoped to the caller's
// linked client and every miss, out of scope or nonexistent, is ErrAccessDenied.
type PortalService interface {
	ListProjects(ctx context.Context, userID string) ([]*model.Project, error)
	// GetProject returns the project with its tasks, messages and files
	GetProject(ctx context.Context, userID, projectID string) (*model.Project, error)
	ListInvoices(ctx context.Context, userID string) ([]*model.Invoice, error)
	GetInvoice(ctx context.Context, userID, invoiceID string) (*model.Invoice, error)
}

type portalService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	messageRepo repository.MessageRepository
	fileRepo    repository.FileRepository
	invoiceRepo repository.InvoiceRepository
	logger      *zap.Logger
}

func NewPortalService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	messageRepo repository.MessageRepository,
	fileRepo repository.FileRepository,
	invoiceRepo repository.InvoiceRepository,
	logger *zap.Logger,
) PortalService {
	return &portalService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		messageRepo: messageRepo,
		fileRepo:    fileRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// resolveClient returns the client linked to the user
func (s *portalService) resolveClient(ctx context.Context, userID string) (*model.Client, error) {
	user, err := s.userRepo.FindWithClient(ctx, userID)
	if err != nil {
		return nil, denyMissing(err)
	}
	if user.ClientID == nil || user.Client == nil {
		return nil, pkgErrors.ErrAccessDenied
	}
	return user.Client, nil
}

func (s *portalService) ListProjects(ctx context.Context, userID string) ([]*model.Project, error) {
	client, err := s.resolveClient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.projectRepo.ListByClient(ctx, client.ID)
}

func (s *portalService) GetProject(ctx context.Context, userID, projectID string) (*model.Project, error) {
	client, err := s.resolveClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByIDAndClient(ctx, projectID, client.ID)
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			s.logger.Debug("portal project out of scope",
				zap.String("user_id", userID),
				zap.String("project_id", projectID))
		}
		return nil, denyMissing(err)
	}

	// nested reads only run against the verified project id
	tasks, err := s.taskRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	project.Tasks = lo.FromSlicePtr(tasks)
	project.Messages = lo.FromSlicePtr(messages)
	project.Files = lo.FromSlicePtr(files)
	return project, nil
}

func (s *portalService) ListInvoices(ctx context.Context, userID string) ([]*model.Invoice, error) {
	client, err := s.resolveClient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListByClient(ctx, client.ID)
}

func (s *portalService) GetInvoice(ctx context.Context, userID, invoiceID string) (*model.Invoice, error) {
	client, err := s.resolveClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByIDAndClient(ctx, invoiceID, client.ID)
	if err != nil {
		return nil, denyMissing(err)
	}
	return invoice, nil
}

// denyMissing hides whether a record exists behind ErrAccessDenied
func denyMissing(err error) error {
	if pkgErrors.IsNotFound(err) {
		return pkgErrors.ErrAccessDenied
	}
	return err
}
