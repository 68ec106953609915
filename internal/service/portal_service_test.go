package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-hub/internal/model"
	pkgErrors "agency-hub/pkg/errors"
)

func newTestPortalService(t *testing.T) (PortalService, *testRepos) {
	t.Helper()
	repos := newTestRepos(t)
	svc := NewPortalService(repos.users, repos.projects, repos.tasks, repos.messages, repos.files, repos.invoices, nopLogger())
	return svc, repos
}

func TestPortalService_UserWithoutClientIsDenied(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestPortalService(t)
	user := repos.seedUser(t, "client@example.com", "client", nil)

	_, err := svc.ListProjects(ctx, user.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrAccessDenied)

	_, err = svc.ListInvoices(ctx, user.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrAccessDenied)

	_, err = svc.ListProjects(ctx, "4b0a8a9e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, pkgErrors.ErrAccessDenied)
}

func TestPortalService_ScopesProjectsToLinkedClient(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestPortalService(t)

	mine := repos.seedClient(t, "mine")
	other := repos.seedClient(t, "other")
	user := repos.seedUser(t, "client@example.com", "client", &mine.ID)

	own := repos.seedProject(t, "Own site", &mine.ID)
	foreign := repos.seedProject(t, "Foreign site", &other.ID)

	projects, err := svc.ListProjects(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, own.ID, projects[0].ID)

	_, errForeign := svc.GetProject(ctx, user.ID, foreign.ID)
	_, errMissing := svc.GetProject(ctx, user.ID, "4b0a8a9e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, errForeign, pkgErrors.ErrAccessDenied)
	assert.Equal(t, errMissing, errForeign)
}

func TestPortalService_GetProjectLoadsNestedData(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestPortalService(t)

	client := repos.seedClient(t, "mine")
	user := repos.seedUser(t, "client@example.com", "client", &client.ID)
	staff := repos.seedUser(t, "staff@example.com", "member", nil)
	project := repos.seedProject(t, "Own site", &client.ID)

	require.NoError(t, repos.tasks.Create(ctx, &model.Task{Title: "ship", Status: "done", ProjectID: project.ID}))
	require.NoError(t, repos.tasks.Create(ctx, &model.Task{Title: "plan", Status: "backlog", ProjectID: project.ID}))
	require.NoError(t, repos.messages.Create(ctx, &model.Message{ProjectID: project.ID, UserID: staff.ID, Content: "hello"}))
	require.NoError(t, repos.files.Create(ctx, &model.File{Name: "a.pdf", Size: 1, MimeType: "application/pdf", Key: project.ID + "/1-a.pdf", ProjectID: &project.ID, UploadedByID: staff.ID}))

	got, err := svc.GetProject(ctx, user.ID, project.ID)
	require.NoError(t, err)

	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "backlog", got.Tasks[0].Status)
	assert.Equal(t, "done", got.Tasks[1].Status)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
	require.NotNil(t, got.Messages[0].User)
	require.Len(t, got.Files, 1)
}

func TestPortalService_ScopesInvoicesToLinkedClient(t *testing.T) {
	ctx := context.Background()
	svc, repos := newTestPortalService(t)
	invoices := NewInvoiceService(repos.invoices, repos.clients, repos.projects, nil, nopLogger())

	mine := repos.seedClient(t, "mine")
	other := repos.seedClient(t, "other")
	user := repos.seedUser(t, "client@example.com", "client", &mine.ID)

	own, err := invoices.Create(ctx, createRequest(mine.ID, "INV-001"))
	require.NoError(t, err)
	foreign, err := invoices.Create(ctx, createRequest(other.ID, "INV-002"))
	require.NoError(t, err)

	list, err := svc.ListInvoices(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, own.ID, list[0].ID)

	got, err := svc.GetInvoice(ctx, user.ID, own.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	_, err = svc.GetInvoice(ctx, user.ID, foreign.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrAccessDenied)
}
