package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agency-hub/internal/core/progress"
	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/internal/pkg/logger"
	"agency-hub/pkg/constants"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	// FindDetail loads client, board-ordered tasks with assignees and relation counts
	FindDetail(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, q dto.ProjectListQuery) ([]*model.Project, int64, error)
	// Update writes every column except progress
	Update(ctx context.Context, project *model.Project) error
	SetProgress(ctx context.Context, id string, value int) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	CountTasks(ctx context.Context, id string) (int64, error)
	// RecalculateProgress derives progress from the task statuses. The project row is
	// locked for the duration so concurrent recalculations serialize. Projects without
	// tasks and missing projects are left untouched.
	RecalculateProgress(ctx context.Context, id string) error

	// ListByClient portal listing: brief client and relation counts
	ListByClient(ctx context.Context, clientID string) ([]*model.Project, error)
	// FindByIDAndClient returns ErrRecordNotFound for projects of other clients
	FindByIDAndClient(ctx context.Context, id, clientID string) (*model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error; err != nil {
		return dbError(err, "create project failed")
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, dbError(err, "query project failed")
	}
	return &project, nil
}

func (r *projectRepository) FindDetail(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order(taskBoardOrder)
		}).
		Preload("Tasks.AssignedTo", userBrief).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, dbError(err, "query project failed")
	}

	counts, err := r.relationCounts(ctx, []string{project.ID}, model.MessageTableName, model.FileTableName, model.InvoiceTableName)
	if err != nil {
		return nil, err
	}
	project.Count = counts[project.ID]

	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, q dto.ProjectListQuery) ([]*model.Project, int64, error) {
	var (
		projects []*model.Project
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&model.Project{})
	if q.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+q.Keyword+"%")
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.ClientID != "" {
		query = query.Where("client_id = ?", q.ClientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "count projects failed")
	}
	err := applyOptions(query, Paginate(q.PageQuery), WithPreload("Client")).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, 0, dbError(err, "query projects failed")
	}

	if err := r.attachCounts(ctx, projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return updateAll(r.db.WithContext(ctx), project, "update project failed", "progress")
}

func (r *projectRepository) SetProgress(ctx context.Context, id string, value int) error {
	result := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Update("progress", value)
	if result.Error != nil {
		return dbError(result.Error, "update project progress failed")
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &model.Project{}, id, "delete project failed")
}

func (r *projectRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &model.Project{}, "id = ?", id)
}

func (r *projectRepository) CountTasks(ctx context.Context, id string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return 0, dbError(err, "count tasks failed")
	}
	return count, nil
}

func (r *projectRepository) RecalculateProgress(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "progress").
			Where("id = ?", id).
			Take(&project).Error
		if err == gorm.ErrRecordNotFound {
			logger.Debug("skip progress recalculation, project is gone", zap.String("project_id", id))
			return nil
		}
		if err != nil {
			return dbError(err, "lock project failed")
		}

		var total, done int64
		if err := tx.Model(&model.Task{}).Where("project_id = ?", id).Count(&total).Error; err != nil {
			return dbError(err, "count tasks failed")
		}
		if err := tx.Model(&model.Task{}).
			Where("project_id = ? AND status = ?", id, constants.TaskStatusTerminal).
			Count(&done).Error; err != nil {
			return dbError(err, "count done tasks failed")
		}

		value, ok := progress.Calculate(done, total)
		if !ok || value == project.Progress {
			return nil
		}

		if err := tx.Model(&model.Project{}).Where("id = ?", id).Update("progress", value).Error; err != nil {
			return dbError(err, "update project progress failed")
		}
		return nil
	})
}

func (r *projectRepository) ListByClient(ctx context.Context, clientID string) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.WithContext(ctx).
		Preload("Client", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "company")
		}).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, dbError(err, "query projects failed")
	}

	if err := r.attachCounts(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) FindByIDAndClient(ctx context.Context, id, clientID string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Client", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "company")
		}).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&project).Error
	if err != nil {
		return nil, dbError(err, "query project failed")
	}
	return &project, nil
}

// attachCounts sets tasks, messages and files counts
func (r *projectRepository) attachCounts(ctx context.Context, projects []*model.Project) error {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	counts, err := r.relationCounts(ctx, ids, model.TaskTableName, model.MessageTableName, model.FileTableName)
	if err != nil {
		return err
	}
	for _, p := range projects {
		p.Count = counts[p.ID]
	}
	return nil
}

// relationCounts counts rows per project in each table, keyed by project id then table name
func (r *projectRepository) relationCounts(ctx context.Context, ids []string, tables ...string) (map[string]model.Counts, error) {
	out := make(map[string]model.Counts, len(ids))
	for _, id := range ids {
		out[id] = model.Counts{}
	}
	for _, table := range tables {
		counts, err := countBy(ctx, r.db, table, "project_id", ids)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			out[id][table] = counts[id]
		}
	}
	return out, nil
}
