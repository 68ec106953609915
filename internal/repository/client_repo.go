package repository

import (
	"context"

	"gorm.io/gorm"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id string) (*model.Client, error)
	// FindDetail loads the client with brief projects and invoices
	FindDetail(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context, q dto.ClientListQuery) ([]*model.Client, int64, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return dbError(err, "create client failed")
	}
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, dbError(err, "query client failed")
	}
	return &client, nil
}

func (r *clientRepository) FindDetail(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "status", "client_id").Order("created_at DESC")
		}).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "number", "status", "total", "client_id").Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		return nil, dbError(err, "query client failed")
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, q dto.ClientListQuery) ([]*model.Client, int64, error) {
	var (
		clients []*model.Client
		total   int64
	)

	query := r.db.WithContext(ctx).Model(&model.Client{})
	if q.Keyword != "" {
		like := "%" + q.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR company LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "count clients failed")
	}
	if err := applyOptions(query, Paginate(q.PageQuery)).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, 0, dbError(err, "query clients failed")
	}

	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	projects, err := countBy(ctx, r.db, model.ProjectTableName, "client_id", ids)
	if err != nil {
		return nil, 0, err
	}
	invoices, err := countBy(ctx, r.db, model.InvoiceTableName, "client_id", ids)
	if err != nil {
		return nil, 0, err
	}
	for _, c := range clients {
		c.Count = model.Counts{"projects": projects[c.ID], "invoices": invoices[c.ID]}
	}

	return clients, total, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return updateAll(r.db.WithContext(ctx), client, "update client failed")
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.Client{}, id, "delete client failed")
}

func (r *clientRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &model.Client{}, "id = ?", id)
}
