package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindWithClient loads the user together with the linked client, if any
	FindWithClient(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, q dto.UserListQuery) ([]*model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return dbError(err, "create user failed")
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, dbError(err, "query user failed")
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, dbError(err, "query user failed")
	}
	return &user, nil
}

func (r *userRepository) FindWithClient(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, dbError(err, "query user failed")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, q dto.UserListQuery) ([]*model.User, int64, error) {
	var (
		users []*model.User
		total int64
	)

	query := r.db.WithContext(ctx).Model(&model.User{})
	if q.Keyword != "" {
		like := "%" + q.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if q.Role != "" {
		query = query.Where("role = ?", q.Role)
	}
	if q.ClientID != "" {
		query = query.Where("client_id = ?", q.ClientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "count users failed")
	}
	if err := applyOptions(query, Paginate(q.PageQuery)).Order("name ASC").Find(&users).Error; err != nil {
		return nil, 0, dbError(err, "query users failed")
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return updateAll(r.db.WithContext(ctx), user, "update user failed")
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("last_login_at", at).Error
	if err != nil {
		return dbError(err, "update last login failed")
	}
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, &model.User{}, "email = ?", email)
}
