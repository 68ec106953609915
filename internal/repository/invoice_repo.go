package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/pkg/constants"
	pkgErrors "agency-hub/pkg/errors"
)

type InvoiceRepository interface {
	// Create inserts the invoice and its items in one transaction
	Create(ctx context.Context, invoice *model.Invoice) error
	// FindByID loads items, brief client and brief project
	FindByID(ctx context.Context, id string) (*model.Invoice, error)
	FindByNumber(ctx context.Context, number string) (*model.Invoice, error)
	List(ctx context.Context, q dto.InvoiceListQuery) ([]*model.Invoice, int64, error)
	// Update writes the invoice columns, items are left alone
	Update(ctx context.Context, invoice *model.Invoice) error
	// ReplaceItems deletes the stored items, inserts items and writes the invoice
	// columns in one transaction. On error nothing is changed.
	ReplaceItems(ctx context.Context, invoice *model.Invoice, items []model.InvoiceItem) error
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	// MarkOverdue flips pending invoices due before now to overdue and returns them
	MarkOverdue(ctx context.Context, now time.Time) ([]*model.Invoice, error)
	Delete(ctx context.Context, id string) error

	// ListByClient portal listing with items and brief project
	ListByClient(ctx context.Context, clientID string) ([]*model.Invoice, error)
	// FindByIDAndClient returns ErrRecordNotFound for invoices of other clients
	FindByIDAndClient(ctx context.Context, id, clientID string) (*model.Invoice, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(invoice).Error; err != nil {
			return err
		}
		if len(invoice.Items) == 0 {
			return nil
		}
		for i := range invoice.Items {
			invoice.Items[i].InvoiceID = invoice.ID
		}
		return tx.Create(&invoice.Items).Error
	})
	if err != nil {
		return dbError(err, "create invoice failed")
	}
	return nil
}

func (r *invoiceRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Client", clientBrief).
		Preload("Project", projectBrief)
}

func (r *invoiceRepository) FindByID(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, dbError(err, "query invoice failed")
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&invoice).Error; err != nil {
		return nil, dbError(err, "query invoice failed")
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, q dto.InvoiceListQuery) ([]*model.Invoice, int64, error) {
	var (
		invoices []*model.Invoice
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&model.Invoice{})
	if q.Keyword != "" {
		query = query.Where("number LIKE ?", "%"+q.Keyword+"%")
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.ClientID != "" {
		query = query.Where("client_id = ?", q.ClientID)
	}
	if q.ProjectID != "" {
		query = query.Where("project_id = ?", q.ProjectID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "count invoices failed")
	}
	err := applyOptions(query,
		Paginate(q.PageQuery),
		WithPreload("Client", clientBrief),
		WithPreload("Project", projectBrief),
	).Order("created_at DESC").Find(&invoices).Error
	if err != nil {
		return nil, 0, dbError(err, "query invoices failed")
	}

	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	items, err := countBy(ctx, r.db, model.InvoiceItemTableName, "invoice_id", ids)
	if err != nil {
		return nil, 0, err
	}
	for _, inv := range invoices {
		inv.Count = model.Counts{"items": items[inv.ID]}
	}

	return invoices, total, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return updateAll(r.db.WithContext(ctx), invoice, "update invoice failed")
}

func (r *invoiceRepository) ReplaceItems(ctx context.Context, invoice *model.Invoice, items []model.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateAll(tx, invoice, "update invoice failed"); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&model.InvoiceItem{}).Error; err != nil {
			return dbError(err, "delete invoice items failed")
		}
		if len(items) > 0 {
			for i := range items {
				items[i].InvoiceID = invoice.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return dbError(err, "create invoice items failed")
			}
		}
		invoice.Items = items
		return nil
	})
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    constants.InvoiceStatusPaid,
			"paid_date": paidAt,
		})
	if result.Error != nil {
		return dbError(result.Error, "mark invoice paid failed")
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *invoiceRepository) MarkOverdue(ctx context.Context, now time.Time) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND due_date < ?", constants.InvoiceStatusPending, now).
			Find(&invoices).Error; err != nil {
			return err
		}
		if len(invoices) == 0 {
			return nil
		}

		ids := make([]string, 0, len(invoices))
		for _, inv := range invoices {
			ids = append(ids, inv.ID)
			inv.Status = constants.InvoiceStatusOverdue
		}
		return tx.Model(&model.Invoice{}).
			Where("id IN ?", ids).
			Update("status", constants.InvoiceStatusOverdue).Error
	})
	if err != nil {
		return nil, dbError(err, "mark invoices overdue failed")
	}
	return invoices, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&model.InvoiceItem{}).Error; err != nil {
			return dbError(err, "delete invoice items failed")
		}
		return deleteByID(tx, &model.Invoice{}, id, "delete invoice failed")
	})
}

func (r *invoiceRepository) ListByClient(ctx context.Context, clientID string) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Project", projectBrief).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, dbError(err, "query invoices failed")
	}
	return invoices, nil
}

func (r *invoiceRepository) FindByIDAndClient(ctx context.Context, id, clientID string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Project", projectBrief).
		Where("id = ? AND client_id = ?", id, clientID).
		First(&invoice).Error
	if err != nil {
		return nil, dbError(err, "query invoice failed")
	}
	return &invoice, nil
}
