package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/internal/pkg/config"
	"agency-hub/internal/pkg/crypto"
	"agency-hub/internal/pkg/jwt"
	"agency-hub/internal/repository"
	"agency-hub/pkg/constants"
	pkgErrors "agency-hub/pkg/errors"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	// Refresh rotates a refresh token into a new pair built from the user's current record
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID string) (*dto.UserInfo, error)
}

type authService struct {
	cfg         *config.AuthConfig
	issuer      *jwt.Issuer
	userRepo    repository.UserRepository
	ldapService LDAPService
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	cfg *config.AuthConfig,
	issuer *jwt.Issuer,
	userRepo repository.UserRepository,
	ldapService LDAPService,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:         cfg,
		issuer:      issuer,
		userRepo:    userRepo,
		ldapService: ldapService,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var (
		user *model.User
		err  error
	)

	switch req.AuthType {
	case constants.AuthTypeLDAP:
		if !s.cfg.LDAP.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "ldap authentication is disabled")
		}
		user, err = s.authenticateLDAP(ctx, req.Email, req.Password)
	case constants.AuthTypeLocal, "":
		if !s.cfg.Local.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "local authentication is disabled")
		}
		user, err = s.authenticateLocal(ctx, req.Email, req.Password)
	default:
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "unsupported auth type")
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("update last login failed", zap.String("user_id", user.ID), zap.Error(err))
	}

	return s.issue(user)
}

func (s *authService) authenticateLocal(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return user, nil
}

// authenticateLDAP binds against the directory and upserts a local member with the same email
func (s *authService) authenticateLDAP(ctx context.Context, email, password string) (*model.User, error) {
	identity, err := s.ldapService.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, identity.Email)
	if err == nil {
		if user.Name != identity.Name {
			user.Name = identity.Name
			if err := s.userRepo.Update(ctx, user); err != nil {
				s.logger.Warn("sync ldap user failed", zap.String("email", identity.Email), zap.Error(err))
			}
		}
		return user, nil
	}
	if !pkgErrors.IsNotFound(err) {
		return nil, err
	}

	// directory users never log in locally; the stored hash is of a random secret
	hash, err := crypto.HashPassword(uuid.NewString())
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "hash password failed", err)
	}

	user = &model.User{
		Email:    identity.Email,
		Password: hash,
		Name:     identity.Name,
		Role:     constants.RoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("ldap user provisioned", zap.String("email", user.Email))
	return user, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "email already registered")
	}

	hash, err := crypto.HashPassword(req.Password)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "password must be at most 72 bytes")
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "hash password failed", err)
	}

	user := &model.User{
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Role:     constants.RoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, pkgErrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		if !pkgErrors.IsNotFound(err) {
			s.logger.Error("load user for refresh failed", zap.String("user_id", claims.Subject), zap.Error(err))
		}
		return nil, pkgErrors.ErrInvalidToken
	}

	return s.issue(user)
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return nil, pkgErrors.ErrUnauthorized
		}
		return nil, err
	}
	return dto.NewUserInfo(user), nil
}

func (s *authService) issue(user *model.User) (*dto.LoginResponse, error) {
	pair, err := s.issuer.IssuePair(jwt.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "issue token failed", err)
	}

	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         dto.NewUserInfo(user),
	}, nil
}
