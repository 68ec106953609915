package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agency-hub/internal/service"
	pkgErrors "agency-hub/pkg/errors"
	"agency-hub/pkg/utils"
)

type FileHandler struct {
	fileService   service.FileService
	maxUploadSize int64
}

func NewFileHandler(fileService service.FileService, maxUploadSize int64) *FileHandler {
	return &FileHandler{
		fileService:   fileService,
		maxUploadSize: maxUploadSize,
	}
}

// Upload
// @Summary Upload a file to a project
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Param file formData file true "file"
// @Success 201 {object} model.File
// @Router /api/v1/projects/{id}/files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.ValidationError(c, []utils.FieldError{{Field: "file", Message: "is required"}})
		return
	}

	body, err := header.Open()
	if err != nil {
		utils.Error(c, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "cannot read uploaded file", err))
		return
	}
	defer body.Close()

	resp, err := h.fileService.Upload(c.Request.Context(), c.Param("id"), userID, &service.FileUpload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, resp)
}

// ListByProject
// @Summary List project files, newest first
// @Tags files
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Success 200 {array} model.File
// @Router /api/v1/projects/{id}/files [get]
func (h *FileHandler) ListByProject(c *gin.Context) {
	resp, err := h.fileService.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Get
// @Summary Get file metadata
// @Tags files
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "file id"
// @Success 200 {object} model.File
// @Router /api/v1/files/{id} [get]
func (h *FileHandler) Get(c *gin.Context) {
	resp, err := h.fileService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Download
// @Summary Fresh presigned download link
// @Tags files
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "file id"
// @Success 200 {object} dto.FileDownloadResponse
// @Router /api/v1/files/{id}/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	resp, err := h.fileService.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Delete
// @Summary Delete a file and its object
// @Tags files
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "file id"
// @Success 200 {object} utils.Response
// @Router /api/v1/files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.fileService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
