package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"agency-hub/internal/adapter/storage"
	"agency-hub/internal/dto"
	"agency-hub/internal/model"
	"agency-hub/internal/repository"
	pkgErrors "agency-hub/pkg/errors"
)

// FileUpload an incoming multipart file
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

type FileService interface {
	// Upload stores the object under {projectId}/{unixMillis}-{name} and records its metadata
	Upload(ctx context.Context, projectID, uploaderID string, upload *FileUpload) (*model.File, error)
	GetByID(ctx context.Context, id string) (*model.File, error)
	// ListByProject newest first
	ListByProject(ctx context.Context, projectID string) ([]*model.File, error)
	// Download issues a fresh presigned link and stores it on the record
	Download(ctx context.Context, id string) (*dto.FileDownloadResponse, error)
	Delete(ctx context.Context, id string) error
}

type fileService struct {
	repo        repository.FileRepository
	projectRepo repository.ProjectRepository
	store       storage.ObjectStore
	presignTTL  time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewFileService(
	repo repository.FileRepository,
	projectRepo repository.ProjectRepository,
	store storage.ObjectStore,
	presignTTL time.Duration,
	logger *zap.Logger,
) FileService {
	return &fileService{
		repo:        repo,
		projectRepo: projectRepo,
		store:       store,
		presignTTL:  presignTTL,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *fileService) Upload(ctx context.Context, projectID, uploaderID string, upload *FileUpload) (*model.File, error) {
	ok, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgErrors.NotFound("project")
	}

	name := cleanFileName(upload.Name)
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := objectKey(projectID, s.now(), name)

	if err := s.store.Put(ctx, key, upload.Body, upload.Size, contentType); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadGateway, pkgErrors.ErrStorageError.Message, err)
	}

	url, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		s.removeObject(ctx, key)
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadGateway, pkgErrors.ErrStorageError.Message, err)
	}

	file := &model.File{
		Name:         name,
		Size:         upload.Size,
		MimeType:     contentType,
		Key:          key,
		URL:          url,
		ProjectID:    &projectID,
		UploadedByID: uploaderID,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}

	s.logger.Info("file uploaded",
		zap.String("file_id", file.ID),
		zap.String("key", key),
		zap.Int64("size", upload.Size))
	return file, nil
}

func (s *fileService) GetByID(ctx context.Context, id string) (*model.File, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "file")
	}
	return file, nil
}

func (s *fileService) ListByProject(ctx context.Context, projectID string) ([]*model.File, error) {
	ok, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgErrors.NotFound("project")
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *fileService) Download(ctx context.Context, id string) (*dto.FileDownloadResponse, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "file")
	}

	url, err := s.store.PresignGet(ctx, file.Key, s.presignTTL)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadGateway, pkgErrors.ErrStorageError.Message, err)
	}

	if err := s.repo.UpdateURL(ctx, file.ID, url); err != nil {
		s.logger.Warn("store refreshed file url failed", zap.String("file_id", file.ID), zap.Error(err))
	}

	return &dto.FileDownloadResponse{
		URL:       url,
		ExpiresIn: int64(s.presignTTL / time.Second),
	}, nil
}

// Delete removes the record first; a leftover object is only logged
func (s *fileService) Delete(ctx context.Context, id string) error {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundAs(err, "file")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "file")
	}

	s.removeObject(ctx, file.Key)
	return nil
}

func (s *fileService) removeObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("delete object failed", zap.String("key", key), zap.Error(err))
	}
}

func objectKey(projectID string, at time.Time, name string) string {
	return fmt.Sprintf("%s/%d-%s", projectID, at.UnixMilli(), name)
}

// cleanFileName drops any client supplied directories
func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
