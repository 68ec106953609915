package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"agency-hub/internal/model"
	"agency-hub/internal/pkg/config"
)

// NotificationType invoice event being announced
type NotificationType string

const (
	NotifyInvoicePaid    NotificationType = "invoice_paid"
	NotifyInvoiceOverdue NotificationType = "invoice_overdue"
)

// NotificationMessage provider-neutral payload
type NotificationMessage struct {
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Color     string            `json:"color"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// Notifier delivers invoice events. Delivery failures never roll back the invoice change.
type Notifier interface {
	Send(ctx context.Context, msg *NotificationMessage) error
	SendInvoiceNotification(ctx context.Context, invoice *model.Invoice, notifyType NotificationType) error
}

// New builds the notifier selected by config. Events are always logged.
func New(cfg config.NotificationConfig, logger *zap.Logger) Notifier {
	logNotifier := NewLogNotifier(logger)
	if !cfg.Enabled || cfg.Provider != "lark" {
		return logNotifier
	}
	return NewMultiNotifier(logger, logNotifier, NewLarkNotifier(cfg.WebhookURL, logger))
}

// InvoiceMessage renders an invoice event; client and project are included when preloaded
func InvoiceMessage(invoice *model.Invoice, notifyType NotificationType) *NotificationMessage {
	msg := &NotificationMessage{
		Type:      notifyType,
		Timestamp: time.Now(),
		Fields: map[string]string{
			"invoice_id": invoice.ID,
			"number":     invoice.Number,
			"client_id":  invoice.ClientID,
			"status":     invoice.Status,
		},
	}

	switch notifyType {
	case NotifyInvoicePaid:
		msg.Title, msg.Color = "Invoice paid", "green"
	case NotifyInvoiceOverdue:
		msg.Title, msg.Color = "Invoice overdue", "red"
	default:
		msg.Title, msg.Color = "Invoice updated", "grey"
	}

	lines := []string{
		fmt.Sprintf("**Invoice**: %s", invoice.Number),
		fmt.Sprintf("**Total**: %s", invoice.Total.StringFixed(2)),
		fmt.Sprintf("**Due**: %s", invoice.DueDate.Format("2006-01-02")),
	}
	if invoice.Client != nil {
		lines = append(lines, fmt.Sprintf("**Client**: %s", invoice.Client.Name))
	}
	if invoice.Project != nil {
		lines = append(lines, fmt.Sprintf("**Project**: %s", invoice.Project.Name))
	}
	if invoice.PaidDate != nil {
		lines = append(lines, fmt.Sprintf("**Paid**: %s", invoice.PaidDate.Format("2006-01-02")))
	}
	msg.Content = strings.Join(lines, "\n")

	return msg
}

// ============= Lark webhook =============

type larkText struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

type larkElement struct {
	Tag  string   `json:"tag"`
	Text larkText `json:"text"`
}

type larkCard struct {
	Header struct {
		Title    larkText `json:"title"`
		Template string   `json:"template"`
	} `json:"header"`
	Elements []larkElement `json:"elements"`
}

type larkPayload struct {
	MsgType string   `json:"msg_type"`
	Card    larkCard `json:"card"`
}

// LarkNotifier posts interactive cards to a Lark bot webhook
type LarkNotifier struct {
	webhookURL string
	logger     *zap.Logger
	client     *http.Client
}

func NewLarkNotifier(webhookURL string, logger *zap.Logger) *LarkNotifier {
	return &LarkNotifier{
		webhookURL: webhookURL,
		logger:     logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *LarkNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	if n.webhookURL == "" {
		n.logger.Warn("lark webhook url not configured")
		return nil
	}

	body, err := json.Marshal(buildLarkPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal lark card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post lark webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lark webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debug("lark notification sent", zap.String("type", string(msg.Type)))
	return nil
}

func (n *LarkNotifier) SendInvoiceNotification(ctx context.Context, invoice *model.Invoice, notifyType NotificationType) error {
	return n.Send(ctx, InvoiceMessage(invoice, notifyType))
}

func buildLarkPayload(msg *NotificationMessage) larkPayload {
	color := msg.Color
	if color == "" {
		color = "grey"
	}

	p := larkPayload{MsgType: "interactive"}
	p.Card.Header.Title = larkText{Tag: "plain_text", Content: msg.Title}
	p.Card.Header.Template = color
	p.Card.Elements = []larkElement{
		{Tag: "div", Text: larkText{Tag: "lark_md", Content: msg.Content}},
		{Tag: "div", Text: larkText{Tag: "plain_text", Content: "Time: " + msg.Timestamp.UTC().Format("2006-01-02 15:04:05") + " UTC"}},
	}
	return p
}

// ============= fan-out =============

// MultiNotifier sends to every notifier and keeps going on failures; the last error wins
type MultiNotifier struct {
	notifiers []Notifier
	logger    *zap.Logger
}

func NewMultiNotifier(logger *zap.Logger, notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		notifiers: notifiers,
		logger:    logger,
	}
}

func (m *MultiNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, msg); err != nil {
			m.logger.Error("send notification failed", zap.String("type", string(msg.Type)), zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}

func (m *MultiNotifier) SendInvoiceNotification(ctx context.Context, invoice *model.Invoice, notifyType NotificationType) error {
	return m.Send(ctx, InvoiceMessage(invoice, notifyType))
}

// ============= log only =============

// LogNotifier writes events to the log
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	fields := make([]zap.Field, 0, len(msg.Fields)+2)
	fields = append(fields, zap.String("type", string(msg.Type)), zap.String("title", msg.Title))
	for k, v := range msg.Fields {
		fields = append(fields, zap.String(k, v))
	}
	n.logger.Info("notification", fields...)
	return nil
}

func (n *LogNotifier) SendInvoiceNotification(ctx context.Context, invoice *model.Invoice, notifyType NotificationType) error {
	return n.Send(ctx, InvoiceMessage(invoice, notifyType))
}
