package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-hub/internal/dto"
	pkgErrors "agency-hub/pkg/errors"
)

func TestTaskService_ProgressFollowsTaskChanges(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	svc := NewTaskService(repos.tasks, repos.projects, repos.users, nopLogger())
	project := repos.seedProject(t, "Website", nil)

	progress := func() int {
		p, err := repos.projects.FindByID(ctx, project.ID)
		require.NoError(t, err)
		return p.Progress
	}

	first, err := svc.Create(ctx, project.ID, &dto.CreateTaskRequest{Title: "design", Status: strPtr("done")})
	require.NoError(t, err)
	assert.Equal(t, 100, progress())

	second, err := svc.Create(ctx, project.ID, &dto.CreateTaskRequest{Title: "build"})
	require.NoError(t, err)
	assert.Equal(t, "todo", second.Status)
	assert.Equal(t, 50, progress())

	_, err = svc.Create(ctx, project.ID, &dto.CreateTaskRequest{Title: "launch"})
	require.NoError(t, err)
	assert.Equal(t, 33, progress())

	_, err = svc.Update(ctx, second.ID, &dto.UpdateTaskRequest{Status: strPtr("done")})
	require.NoError(t, err)
	assert.Equal(t, 67, progress())

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.Equal(t, 50, progress())
}

func TestTaskService_CreateRequiresProjectAndAssignee(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	svc := NewTaskService(repos.tasks, repos.projects, repos.users, nopLogger())

	_, err := svc.Create(ctx, "4b0a8a9e-0000-4000-8000-000000000000", &dto.CreateTaskRequest{Title: "x"})
	assert.Equal(t, pkgErrors.NotFound("project"), err)

	project := repos.seedProject(t, "Website", nil)
	_, err = svc.Create(ctx, project.ID, &dto.CreateTaskRequest{Title: "x", AssignedToID: strPtr("4b0a8a9e-0000-4000-8000-000000000001")})
	assert.Equal(t, pkgErrors.NotFound("user"), err)
}

func TestProjectService_ProgressLockedOnceTasksExist(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	projects := NewProjectService(repos.projects, repos.clients, nopLogger())
	tasks := NewTaskService(repos.tasks, repos.projects, repos.users, nopLogger())

	project, err := projects.Create(ctx, &dto.CreateProjectRequest{Name: "Website"})
	require.NoError(t, err)
	assert.Equal(t, "new", project.Status)

	manual := 40
	updated, err := projects.Update(ctx, project.ID, &dto.UpdateProjectRequest{Progress: &manual})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)

	_, err = tasks.Create(ctx, project.ID, &dto.CreateTaskRequest{Title: "build"})
	require.NoError(t, err)

	_, err = projects.Update(ctx, project.ID, &dto.UpdateProjectRequest{Progress: &manual})
	assert.Equal(t, pkgErrors.CodeBadRequest, pkgErrors.CodeOf(err))

	got, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
}

func TestProjectService_UnknownClient(t *testing.T) {
	repos := newTestRepos(t)
	projects := NewProjectService(repos.projects, repos.clients, nopLogger())

	_, err := projects.Create(context.Background(), &dto.CreateProjectRequest{Name: "Website", ClientID: strPtr("4b0a8a9e-0000-4000-8000-000000000000")})
	assert.Equal(t, pkgErrors.NotFound("client"), err)
}

func TestProjectService_UpdateUnlinksClient(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	projects := NewProjectService(repos.projects, repos.clients, nopLogger())
	client := repos.seedClient(t, "acme")
	project := repos.seedProject(t, "Website", &client.ID)

	updated, err := projects.Update(ctx, project.ID, &dto.UpdateProjectRequest{Name: strPtr("Website v2")})
	require.NoError(t, err)
	require.NotNil(t, updated.ClientID)
	assert.Equal(t, client.ID, *updated.ClientID)

	_, err = projects.Update(ctx, project.ID, &dto.UpdateProjectRequest{ClientID: strPtr("")})
	require.NoError(t, err)

	stored, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClientID)
	assert.Nil(t, stored.Client)
	assert.Equal(t, "Website v2", stored.Name)
}
