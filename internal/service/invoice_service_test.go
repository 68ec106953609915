package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agency-hub/internal/adapter/notification"
	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	pkgErrors "agency-hub/pkg/errors"
)

func newTestInvoiceService(t *testing.T) (*invoiceService, *testRepos, *notification.MockNotifier) {
	t.Helper()
	repos := newTestRepos(t)
	notifier := &notification.MockNotifier{}
	svc := NewInvoiceService(repos.invoices, repos.clients, repos.projects, notifier, nopLogger()).(*invoiceService)
	return svc, repos, notifier
}

func item(name, quantity, rate, amount string) dto.InvoiceItemRequest {
	return dto.InvoiceItemRequest{Name: name, Quantity: decPtr(quantity), Rate: decPtr(rate), Amount: decPtr(amount)}
}

func createRequest(clientID, number string) *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		Number:    number,
		ClientID:  clientID,
		IssueDate: dto.Date{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		DueDate:   dto.Date{Time: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		Items: []dto.InvoiceItemRequest{
			item("Design", "1", "10.10", "10.10"),
			item("Hosting", "1", "5.05", "5.05"),
		},
		Tax: decPtr("2.00"),
	}
}

func TestInvoiceService_CreateComputesTotals(t *testing.T) {
	svc, repos, _ := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")

	invoice, err := svc.Create(context.Background(), createRequest(client.ID, "INV-001"))
	require.NoError(t, err)

	assert.Equal(t, "draft", invoice.Status)
	assert.Equal(t, "15.15", invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", invoice.Tax.StringFixed(2))
	assert.Equal(t, "17.15", invoice.Total.StringFixed(2))
	assert.Len(t, invoice.Items, 2)
	assert.Nil(t, invoice.PaidDate)
}

func TestInvoiceService_SubtotalEqualsSumOfStoredItems(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")

	req := createRequest(client.ID, "INV-001")
	req.Items = []dto.InvoiceItemRequest{
		item("a", "1", "0.004", "0.004"),
		item("b", "1", "0.004", "0.004"),
		item("c", "1", "0.004", "0.004"),
	}
	req.Tax = nil

	invoice, err := svc.Create(ctx, req)
	require.NoError(t, err)

	sum := dec("0")
	for _, it := range invoice.Items {
		sum = sum.Add(it.Amount)
	}
	assert.True(t, invoice.Subtotal.Equal(sum), "subtotal %s, items %s", invoice.Subtotal, sum)
	assert.True(t, invoice.Total.Equal(invoice.Subtotal.Add(invoice.Tax)))

	updated, err := svc.Update(ctx, invoice.ID, &dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{item("a", "1", "1.005", "1.005"), item("b", "1", "2.005", "2.005")},
	})
	require.NoError(t, err)

	sum = dec("0")
	for _, it := range updated.Items {
		sum = sum.Add(it.Amount)
	}
	assert.True(t, updated.Subtotal.Equal(sum), "subtotal %s, items %s", updated.Subtotal, sum)
}

func TestInvoiceService_CreateConflictsAndMissingRefs(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")

	_, err := svc.Create(ctx, createRequest(client.ID, "INV-001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest(client.ID, "INV-001"))
	assert.Equal(t, pkgErrors.CodeConflict, pkgErrors.CodeOf(err))

	_, err = svc.Create(ctx, createRequest("4b0a8a9e-0000-4000-8000-000000000000", "INV-002"))
	assert.Equal(t, pkgErrors.CodeNotFound, pkgErrors.CodeOf(err))

	req := createRequest(client.ID, "INV-003")
	req.ProjectID = strPtr("4b0a8a9e-0000-4000-8000-000000000001")
	_, err = svc.Create(ctx, req)
	assert.Equal(t, pkgErrors.CodeNotFound, pkgErrors.CodeOf(err))
}

func TestInvoiceService_UpdateTaxOnlyKeepsSubtotal(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")
	created, err := svc.Create(ctx, createRequest(client.ID, "INV-001"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateInvoiceRequest{Tax: decPtr("5")})
	require.NoError(t, err)

	assert.Equal(t, "15.15", updated.Subtotal.StringFixed(2))
	assert.Equal(t, "5.00", updated.Tax.StringFixed(2))
	assert.Equal(t, "20.15", updated.Total.StringFixed(2))
	assert.Len(t, updated.Items, 2)
}

func TestInvoiceService_UpdateItemsKeepsTax(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")
	created, err := svc.Create(ctx, createRequest(client.ID, "INV-001"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{item("Retainer", "3", "100", "300")},
	})
	require.NoError(t, err)

	assert.Equal(t, "300.00", updated.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", updated.Tax.StringFixed(2))
	assert.Equal(t, "302.00", updated.Total.StringFixed(2))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Retainer", updated.Items[0].Name)
}

func TestInvoiceService_UpdateStatusPaidStampsPaidDate(t *testing.T) {
	ctx := context.Background()
	svc, repos, notifier := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")
	created, err := svc.Create(ctx, createRequest(client.ID, "INV-001"))
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	notifier.On("SendInvoiceNotification", mock.Anything, mock.AnythingOfType("*model.Invoice"), notification.NotifyInvoicePaid).Return(nil).Once()

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateInvoiceRequest{Status: strPtr("paid")})
	require.NoError(t, err)

	assert.Equal(t, "paid", updated.Status)
	require.NotNil(t, updated.PaidDate)
	assert.True(t, now.Equal(*updated.PaidDate))
	notifier.AssertExpectations(t)
}

func TestInvoiceService_MarkPaidIsIdempotentAndRefreshesPaidDate(t *testing.T) {
	ctx := context.Background()
	svc, repos, notifier := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")
	created, err := svc.Create(ctx, createRequest(client.ID, "INV-001"))
	require.NoError(t, err)

	notifier.On("SendInvoiceNotification", mock.Anything, mock.Anything, notification.NotifyInvoicePaid).Return(nil)

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	paid, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.True(t, first.Equal(*paid.PaidDate))

	second := first.Add(48 * time.Hour)
	svc.now = func() time.Time { return second }
	again, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", again.Status)
	assert.True(t, second.Equal(*again.PaidDate))

	// totals untouched
	assert.Equal(t, created.Total.StringFixed(2), again.Total.StringFixed(2))
	notifier.AssertNumberOfCalls(t, "SendInvoiceNotification", 2)
}

func TestInvoiceService_MarkPaidUnknownInvoice(t *testing.T) {
	svc, _, _ := newTestInvoiceService(t)

	_, err := svc.MarkPaid(context.Background(), "4b0a8a9e-0000-4000-8000-000000000000")
	assert.True(t, pkgErrors.IsNotFound(err))
}

func TestInvoiceService_SweepOverdue(t *testing.T) {
	ctx := context.Background()
	svc, repos, notifier := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")

	pending := createRequest(client.ID, "INV-001")
	pending.Status = strPtr("pending")
	created, err := svc.Create(ctx, pending)
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest(client.ID, "INV-002"))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	notifier.On("SendInvoiceNotification", mock.Anything, mock.MatchedBy(func(inv *model.Invoice) bool {
		return inv.ID == created.ID
	}), notification.NotifyInvoiceOverdue).Return(nil).Once()

	count, err := svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "overdue", got.Status)
	notifier.AssertExpectations(t)
}

func TestInvoiceService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newTestInvoiceService(t)
	client := repos.seedClient(t, "acme")
	created, err := svc.Create(ctx, createRequest(client.ID, "INV-001"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, pkgErrors.IsNotFound(err))
}
