package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	pkgErrors "agency-hub/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func seedClient(t *testing.T, db *gorm.DB, name string) *model.Client {
	t.Helper()
	client := &model.Client{Name: name, Email: name + "@example.com"}
	require.NoError(t, NewClientRepository(db).Create(context.Background(), client))
	return client
}

func seedProject(t *testing.T, db *gorm.DB, clientID *string) *model.Project {
	t.Helper()
	project := &model.Project{Name: "Website", Status: "new", ClientID: clientID}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), project))
	return project
}

func seedTask(t *testing.T, db *gorm.DB, projectID, status string, order int) *model.Task {
	t.Helper()
	task := &model.Task{Title: status + " task", Status: status, ProjectID: projectID, Order: order}
	require.NoError(t, NewTaskRepository(db).Create(context.Background(), task))
	return task
}

func seedInvoice(t *testing.T, db *gorm.DB, clientID, number string) *model.Invoice {
	t.Helper()
	invoice := &model.Invoice{
		Number:    number,
		ClientID:  clientID,
		Status:    "draft",
		IssueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:  dec("15.15"),
		Tax:       dec("0"),
		Total:     dec("15.15"),
		Items: []model.InvoiceItem{
			{Name: "Design", Quantity: dec("1"), Rate: dec("10.10"), Amount: dec("10.10")},
			{Name: "Hosting", Quantity: dec("1"), Rate: dec("5.05"), Amount: dec("5.05")},
		},
	}
	require.NoError(t, NewInvoiceRepository(db).Create(context.Background(), invoice))
	return invoice
}

func TestProjectRepository_RecalculateProgress(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	tasks := NewTaskRepository(db)

	project := seedProject(t, db, nil)

	// no tasks: progress keeps whatever it had
	require.NoError(t, repo.SetProgress(ctx, project.ID, 42))
	require.NoError(t, repo.RecalculateProgress(ctx, project.ID))
	got, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Progress)

	done := seedTask(t, db, project.ID, "done", 0)
	seedTask(t, db, project.ID, "todo", 1)
	seedTask(t, db, project.ID, "in_progress", 2)

	require.NoError(t, repo.RecalculateProgress(ctx, project.ID))
	got, err = repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, got.Progress)

	require.NoError(t, tasks.Delete(ctx, done.ID))
	require.NoError(t, repo.RecalculateProgress(ctx, project.ID))
	got, err = repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
}

func TestProjectRepository_RecalculateProgress_MissingProject(t *testing.T) {
	repo := NewProjectRepository(newTestDB(t))
	assert.NoError(t, repo.RecalculateProgress(context.Background(), "4b0a8a9e-0000-4000-8000-000000000000"))
}

func TestProjectRepository_UpdateKeepsProgress(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	project := seedProject(t, db, nil)
	require.NoError(t, repo.SetProgress(ctx, project.ID, 60))

	project.Name = "Renamed"
	project.Progress = 0
	require.NoError(t, repo.Update(ctx, project))

	got, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 60, got.Progress)
}

func TestProjectRepository_FindDetailAndCounts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	client := seedClient(t, db, "acme")
	project := seedProject(t, db, &client.ID)
	seedTask(t, db, project.ID, "done", 0)
	seedTask(t, db, project.ID, "backlog", 5)
	seedTask(t, db, project.ID, "todo", 1)
	seedTask(t, db, project.ID, "backlog", 2)

	detail, err := repo.FindDetail(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, detail.Tasks, 4)
	assert.Equal(t, "acme", detail.Client.Name)

	var order []string
	for _, task := range detail.Tasks {
		order = append(order, task.Status)
	}
	assert.Equal(t, []string{"backlog", "backlog", "todo", "done"}, order)
	assert.Equal(t, 2, detail.Tasks[0].Order)

	list, total, err := repo.List(ctx, dto.ProjectListQuery{ClientID: client.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].Count["tasks"])
	assert.Equal(t, int64(0), list[0].Count["files"])
}

func TestProjectRepository_ScopedLookup(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	mine := seedClient(t, db, "mine")
	other := seedClient(t, db, "other")
	project := seedProject(t, db, &other.ID)

	_, err := repo.FindByIDAndClient(ctx, project.ID, mine.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)

	got, err := repo.FindByIDAndClient(ctx, project.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	list, err := repo.ListByClient(ctx, mine.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)

	client := seedClient(t, db, "acme")
	invoice := seedInvoice(t, db, client.ID, "INV-001")

	got, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.True(t, got.Subtotal.Equal(dec("15.15")))
	assert.Equal(t, "acme", got.Client.Name)

	_, err = repo.FindByNumber(ctx, "INV-404")
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)

	duplicate := &model.Invoice{Number: "INV-001", ClientID: client.ID, IssueDate: time.Now(), DueDate: time.Now()}
	err = repo.Create(ctx, duplicate)
	assert.Equal(t, pkgErrors.CodeConflict, pkgErrors.CodeOf(err))
}

func TestInvoiceRepository_ReplaceItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)

	client := seedClient(t, db, "acme")
	invoice := seedInvoice(t, db, client.ID, "INV-001")

	invoice.Subtotal = dec("100")
	invoice.Total = dec("100")
	err := repo.ReplaceItems(ctx, invoice, []model.InvoiceItem{
		{Name: "Retainer", Quantity: dec("1"), Rate: dec("100"), Amount: dec("100")},
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Retainer", got.Items[0].Name)
	assert.True(t, got.Total.Equal(dec("100")))
}

func TestInvoiceRepository_ReplaceItemsRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)

	client := seedClient(t, db, "acme")
	invoice := seedInvoice(t, db, client.ID, "INV-001")

	// two items sharing a primary key make the insert fail after the delete ran
	clash := "7d3f0f6e-1111-4111-8111-111111111111"
	invoice.Subtotal = dec("999")
	invoice.Total = dec("999")
	err := repo.ReplaceItems(ctx, invoice, []model.InvoiceItem{
		{BaseModel: model.BaseModel{ID: clash}, Name: "A", Quantity: dec("1"), Rate: dec("1"), Amount: dec("1")},
		{BaseModel: model.BaseModel{ID: clash}, Name: "B", Quantity: dec("1"), Rate: dec("1"), Amount: dec("1")},
	})
	require.Error(t, err)

	got, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	names := []string{got.Items[0].Name, got.Items[1].Name}
	assert.ElementsMatch(t, []string{"Design", "Hosting"}, names)
	assert.True(t, got.Subtotal.Equal(dec("15.15")))
	assert.True(t, got.Total.Equal(dec("15.15")))
}

func TestInvoiceRepository_MarkPaidAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)

	client := seedClient(t, db, "acme")
	invoice := seedInvoice(t, db, client.ID, "INV-001")

	paidAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkPaid(ctx, invoice.ID, paidAt))
	got, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
	require.NotNil(t, got.PaidDate)
	assert.True(t, got.PaidDate.Equal(paidAt))

	assert.ErrorIs(t, repo.MarkPaid(ctx, "missing", paidAt), pkgErrors.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, invoice.ID))
	var items int64
	require.NoError(t, db.Model(&model.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&items).Error)
	assert.Zero(t, items)

	assert.ErrorIs(t, repo.Delete(ctx, invoice.ID), pkgErrors.ErrRecordNotFound)
}

func TestInvoiceRepository_MarkOverdue(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)

	client := seedClient(t, db, "acme")
	late := seedInvoice(t, db, client.ID, "INV-001")
	draft := seedInvoice(t, db, client.ID, "INV-002")
	require.NoError(t, db.Model(&model.Invoice{}).Where("id = ?", late.ID).Update("status", "pending").Error)

	marked, err := repo.MarkOverdue(ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, marked, 1)
	assert.Equal(t, late.ID, marked[0].ID)

	got, err := repo.FindByID(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, "overdue", got.Status)

	got, err = repo.FindByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Status)
}

func TestMessageRepository_ListOldestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	author := &model.User{Email: "pm@example.com", Password: "x", Name: "PM", Role: "member"}
	require.NoError(t, NewUserRepository(db).Create(ctx, author))
	project := seedProject(t, db, nil)

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	second := &model.Message{ProjectID: project.ID, UserID: author.ID, Content: "second"}
	second.CreatedAt = base.Add(time.Minute)
	first := &model.Message{ProjectID: project.ID, UserID: author.ID, Content: "first", FileIDs: []string{"f-1"}}
	first.CreatedAt = base
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	messages, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, []string{"f-1"}, []string(messages[0].FileIDs))
	require.NotNil(t, messages[0].User)
	assert.Equal(t, "PM", messages[0].User.Name)
}

func TestClientRepository_ListCountsAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewClientRepository(db)

	client := seedClient(t, db, "acme")
	seedClient(t, db, "globex")
	seedProject(t, db, &client.ID)
	seedInvoice(t, db, client.ID, "INV-001")

	list, total, err := repo.List(ctx, dto.ClientListQuery{PageQuery: dto.PageQuery{Keyword: "acme"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].Count["projects"])
	assert.Equal(t, int64(1), list[0].Count["invoices"])

	detail, err := repo.FindDetail(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Projects, 1)
	assert.Len(t, detail.Invoices, 1)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), pkgErrors.ErrRecordNotFound)
}

func TestUserRepository_FindWithClient(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	client := seedClient(t, db, "acme")
	user := &model.User{Email: "c@acme.com", Password: "x", Name: "Carol", Role: "client", ClientID: strPtr(client.ID)}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.FindWithClient(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Client)
	assert.Equal(t, client.ID, got.Client.ID)

	ok, err := repo.ExistsByEmail(ctx, "c@acme.com")
	require.NoError(t, err)
	assert.True(t, ok)

	dup := &model.User{Email: "c@acme.com", Password: "x", Name: "Dup", Role: "member"}
	assert.Equal(t, pkgErrors.CodeConflict, pkgErrors.CodeOf(repo.Create(ctx, dup)))
}
