package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agency-hub/internal/model"
	"agency-hub/internal/pkg/config"
	"agency-hub/internal/pkg/crypto"
	"agency-hub/internal/pkg/jwt"
	"agency-hub/internal/repository"
)

type testRepos struct {
	db       *gorm.DB
	users    repository.UserRepository
	clients  repository.ClientRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	invoices repository.InvoiceRepository
	messages repository.MessageRepository
	files    repository.FileRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))

	return &testRepos{
		db:       db,
		users:    repository.NewUserRepository(db),
		clients:  repository.NewClientRepository(db),
		projects: repository.NewProjectRepository(db),
		tasks:    repository.NewTaskRepository(db),
		invoices: repository.NewInvoiceRepository(db),
		messages: repository.NewMessageRepository(db),
		files:    repository.NewFileRepository(db),
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:       "access-secret",
		RefreshSecret:      "refresh-secret",
		AccessTokenExpire:  900,
		RefreshTokenExpire: 3600,
		Issuer:             "agency-hub-test",
	}
}

func newTestIssuer() *jwt.Issuer {
	return jwt.NewIssuer(testJWTConfig())
}

func (r *testRepos) seedClient(t *testing.T, name string) *model.Client {
	t.Helper()
	client := &model.Client{Name: name, Email: name + "@example.com"}
	require.NoError(t, r.clients.Create(context.Background(), client))
	return client
}

func (r *testRepos) seedUser(t *testing.T, email, role string, clientID *string) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword("secret123")
	require.NoError(t, err)
	user := &model.User{Email: email, Password: hash, Name: "Test User", Role: role, ClientID: clientID}
	require.NoError(t, r.users.Create(context.Background(), user))
	return user
}

func (r *testRepos) seedProject(t *testing.T, name string, clientID *string) *model.Project {
	t.Helper()
	project := &model.Project{Name: name, Status: "new", ClientID: clientID}
	require.NoError(t, r.projects.Create(context.Background(), project))
	return project
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
