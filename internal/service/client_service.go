package service

import (
	"context"

	"go.uber.org/zap"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/internal/repository"
	pkgErrors "agency-hub/pkg/errors"
)

type ClientService interface {
	Create(ctx context.Context, req *dto.CreateClientRequest) (*model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context, q *dto.ClientListQuery) (*dto.PageResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	repo   repository.ClientRepository
	logger *zap.Logger
}

func NewClientService(repo repository.ClientRepository, logger *zap.Logger) ClientService {
	return &clientService{
		repo:   repo,
		logger: logger,
	}
}

func (s *clientService) Create(ctx context.Context, req *dto.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "client")
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, q *dto.ClientListQuery) (*dto.PageResponse, error) {
	clients, total, err := s.repo.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageResponse(clients, total, q.GetPage(), q.GetPageSize()), nil
}

func (s *clientService) Update(ctx context.Context, id string, req *dto.UpdateClientRequest) (*model.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "client")
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Company != nil {
		client.Company = req.Company
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "client")
	}
	s.logger.Info("client deleted", zap.String("client_id", id))
	return nil
}

// notFoundAs names the missing entity in 404 errors and passes everything else through
func notFoundAs(err error, entity string) error {
	if pkgErrors.IsNotFound(err) {
		return pkgErrors.NotFound(entity)
	}
	return err
}
