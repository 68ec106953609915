package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"agency-hub/internal/adapter/notification"
	"agency-hub/internal/core/billing"
	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/internal/repository"
	"agency-hub/pkg/constants"
	pkgErrors "agency-hub/pkg/errors"
)

type InvoiceService interface {
	// Create stores the invoice and its items with totals derived from the items and tax
	Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*model.Invoice, error)
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	List(ctx context.Context, q *dto.InvoiceListQuery) (*dto.PageResponse, error)
	// Update applies a partial update. Items, when present, replace the stored ones atomically.
	Update(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*model.Invoice, error)
	// MarkPaid sets status paid and stamps paidDate with the current time, on every call
	MarkPaid(ctx context.Context, id string) (*model.Invoice, error)
	Delete(ctx context.Context, id string) error
	// SweepOverdue flips pending invoices past their due date to overdue
	SweepOverdue(ctx context.Context) (int, error)
}

type invoiceService struct {
	repo        repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	notifier    notification.Notifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) InvoiceService {
	return &invoiceService{
		repo:        repo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *invoiceService) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*model.Invoice, error) {
	if err := s.checkNumber(ctx, req.Number, ""); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, &req.ClientID, req.ProjectID); err != nil {
		return nil, err
	}

	totals := s.totals(req.Number, req.Items, req.Tax)

	invoice := &model.Invoice{
		Number:    req.Number,
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Status:    lo.FromPtrOr(req.Status, constants.InvoiceStatusDraft),
		IssueDate: req.IssueDate.Time,
		DueDate:   req.DueDate.Time,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Notes:     req.Notes,
		Items:     toInvoiceItems(req.Items),
	}
	if invoice.Status == constants.InvoiceStatusPaid {
		invoice.PaidDate = lo.ToPtr(s.now())
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, invoice.ID)
}

func (s *invoiceService) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "invoice")
	}
	return invoice, nil
}

func (s *invoiceService) List(ctx context.Context, q *dto.InvoiceListQuery) (*dto.PageResponse, error) {
	invoices, total, err := s.repo.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageResponse(invoices, total, q.GetPage(), q.GetPageSize()), nil
}

func (s *invoiceService) Update(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*model.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "invoice")
	}
	wasPaid := invoice.Status == constants.InvoiceStatusPaid

	if req.Number != nil && *req.Number != invoice.Number {
		if err := s.checkNumber(ctx, *req.Number, invoice.ID); err != nil {
			return nil, err
		}
		invoice.Number = *req.Number
	}
	if err := s.checkRefs(ctx, req.ClientID, req.ProjectID); err != nil {
		return nil, err
	}
	if req.ClientID != nil {
		invoice.ClientID = *req.ClientID
	}
	if req.ProjectID != nil {
		invoice.ProjectID = req.ProjectID
	}
	if req.IssueDate != nil {
		invoice.IssueDate = req.IssueDate.Time
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate.Time
	}
	if invoice.DueDate.Before(invoice.IssueDate) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "dueDate must not be before issueDate")
	}
	if req.Notes != nil {
		invoice.Notes = req.Notes
	}
	if req.Status != nil {
		invoice.Status = *req.Status
		if invoice.Status == constants.InvoiceStatusPaid && req.PaidDate == nil {
			invoice.PaidDate = lo.ToPtr(s.now())
		}
	}
	if req.PaidDate != nil {
		invoice.PaidDate = req.PaidDate.Ptr()
	}

	// subtotal follows the items, total always equals subtotal plus tax
	tax := invoice.Tax
	if req.Tax != nil {
		tax = *req.Tax
	}
	if req.HasItems() {
		totals := s.totals(invoice.Number, req.Items, &tax)
		invoice.Subtotal, invoice.Tax, invoice.Total = totals.Subtotal, totals.Tax, totals.Total
		err = s.repo.ReplaceItems(ctx, invoice, toInvoiceItems(req.Items))
	} else {
		totals := billing.WithTax(invoice.Subtotal, &tax)
		invoice.Subtotal, invoice.Tax, invoice.Total = totals.Subtotal, totals.Tax, totals.Total
		err = s.repo.Update(ctx, invoice)
	}
	if err != nil {
		return nil, notFoundAs(err, "invoice")
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !wasPaid && updated.Status == constants.InvoiceStatusPaid {
		s.notify(ctx, updated, notification.NotifyInvoicePaid)
	}
	return updated, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, id string) (*model.Invoice, error) {
	if err := s.repo.MarkPaid(ctx, id, s.now()); err != nil {
		return nil, notFoundAs(err, "invoice")
	}

	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, invoice, notification.NotifyInvoicePaid)
	return invoice, nil
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "invoice")
	}
	s.logger.Info("invoice deleted", zap.String("invoice_id", id))
	return nil
}

func (s *invoiceService) SweepOverdue(ctx context.Context) (int, error) {
	invoices, err := s.repo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}

	for _, invoice := range invoices {
		s.notify(ctx, invoice, notification.NotifyInvoiceOverdue)
	}
	return len(invoices), nil
}

// totals derives subtotal and total and flags items whose amount disagrees with quantity x rate
func (s *invoiceService) totals(number string, items []dto.InvoiceItemRequest, tax *decimal.Decimal) billing.Totals {
	lines := lo.Map(items, func(item dto.InvoiceItemRequest, _ int) billing.Line {
		return item.Line()
	})

	if mismatched := billing.Mismatched(lines); len(mismatched) > 0 {
		s.logger.Warn("invoice item amount differs from quantity x rate",
			zap.String("number", number),
			zap.Ints("items", mismatched))
	}

	return billing.ComputeTotals(lines, tax)
}

func (s *invoiceService) checkNumber(ctx context.Context, number, selfID string) error {
	existing, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return pkgErrors.New(pkgErrors.CodeConflict, "invoice number already exists")
	}
	return nil
}

func (s *invoiceService) checkRefs(ctx context.Context, clientID, projectID *string) error {
	if clientID != nil {
		ok, err := s.clientRepo.Exists(ctx, *clientID)
		if err != nil {
			return err
		}
		if !ok {
			return pkgErrors.NotFound("client")
		}
	}
	if projectID != nil {
		ok, err := s.projectRepo.Exists(ctx, *projectID)
		if err != nil {
			return err
		}
		if !ok {
			return pkgErrors.NotFound("project")
		}
	}
	return nil
}

func (s *invoiceService) notify(ctx context.Context, invoice *model.Invoice, notifyType notification.NotificationType) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendInvoiceNotification(ctx, invoice, notifyType); err != nil {
		s.logger.Warn("send invoice notification failed",
			zap.String("invoice_id", invoice.ID),
			zap.String("type", string(notifyType)),
			zap.Error(err))
	}
}

func toInvoiceItems(items []dto.InvoiceItemRequest) []model.InvoiceItem {
	return lo.Map(items, func(item dto.InvoiceItemRequest, _ int) model.InvoiceItem {
		line := item.Line()
		return model.InvoiceItem{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    line.Quantity,
			Rate:        line.Rate,
			Amount:      line.Amount,
		}
	})
}
