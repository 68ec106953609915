package notification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"agency-hub/internal/model"
)

// MockNotifier testify mock of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockNotifier) SendInvoiceNotification(ctx context.Context, invoice *model.Invoice, notifyType NotificationType) error {
	args := m.Called(ctx, invoice, notifyType)
	return args.Error(0)
}
