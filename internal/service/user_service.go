package service

import (
	"context"

	"go.uber.org/zap"

	"agency-hub/internal/dto"
	"agency-hub/internal/pkg/auth"
	"agency-hub/internal/repository"
	"agency-hub/pkg/constants"
	pkgErrors "agency-hub/pkg/errors"
)

type UserService interface {
	List(ctx context.Context, q *dto.UserListQuery) (*dto.PageResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserInfo, error)
	// Update lets an admin rename a user, change its role or link it to a client
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserInfo, error)
	ListRoles() []string
}

type userService struct {
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	logger     *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, clientRepo repository.ClientRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

func (s *userService) List(ctx context.Context, q *dto.UserListQuery) (*dto.PageResponse, error) {
	users, total, err := s.userRepo.List(ctx, *q)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserInfo, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserInfo(u))
	}

	return dto.NewPageResponse(items, total, q.GetPage(), q.GetPageSize()), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user")
	}
	return dto.NewUserInfo(user), nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.ClientID != nil {
		ok, err := s.clientRepo.Exists(ctx, *req.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, pkgErrors.NotFound("client")
		}
		user.ClientID = req.ClientID
	}

	if user.Role == constants.RoleClient && user.ClientID == nil {
		s.logger.Warn("client user has no linked client, portal access will be denied", zap.String("user_id", user.ID))
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return dto.NewUserInfo(user), nil
}

func (s *userService) ListRoles() []string {
	return []string{
		string(auth.RoleAdmin),
		string(auth.RoleMember),
		string(auth.RoleClient),
	}
}

// userExists returns a 404 naming the user when id is unknown
func userExists(ctx context.Context, repo repository.UserRepository, id string) error {
	_, err := repo.FindByID(ctx, id)
	return notFoundAs(err, "user")
}

