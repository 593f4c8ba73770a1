package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
	"github.com/Catacombb/f9-sub000/internal/services"
)

type FilesHandler struct {
	files *services.FileService
	dir   Directory
	log   *zap.SugaredLogger
}

func NewFilesHandler(files *services.FileService, dir Directory, log *zap.SugaredLogger) *FilesHandler {
	return &FilesHandler{files: files, dir: dir, log: log}
}

// Upload accepts multipart uploads under the "files" field, categorized by
// the "category" form value. Each file is stored first, then its metadata
// row is written.
func (h *FilesHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}
	project, ok := accessProject(c, h.dir, projectID, userID)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = models.FileCategoryDocuments
	}
	if !models.ValidFileCategory(category) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file category"})
		return
	}

	form := c.Request.MultipartForm
	if form == nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files provided"})
		return
	}

	var uploaded []models.FileResponse
	var uploadErrors []string
	for _, header := range form.File["files"] {
		src, err := header.Open()
		if err != nil {
			uploadErrors = append(uploadErrors, header.Filename+": "+err.Error())
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			uploadErrors = append(uploadErrors, header.Filename+": "+err.Error())
			continue
		}

		file, err := h.files.Upload(project.UserID, projectID, category,
			header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			h.log.Errorw("file upload failed",
				"project_id", projectID, "name", header.Filename, "error", err)
			uploadErrors = append(uploadErrors, header.Filename+": "+err.Error())
			continue
		}
		uploaded = append(uploaded, models.FileResponse{
			ID:          file.ID.String(),
			Name:        file.Name,
			Category:    file.Category,
			ContentType: file.ContentType,
			Size:        file.Size,
			StorageURL:  file.StorageURL,
			CreatedAt:   file.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		ProjectID: projectID.String(),
		Files:     uploaded,
		Errors:    uploadErrors,
	})
}

func (h *FilesHandler) ListFiles(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}
	if _, ok := accessProject(c, h.dir, projectID, userID); !ok {
		return
	}

	files, err := h.dir.ListProjectFiles(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list files",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.FilesResponse{Files: fileResponses(files)})
}

// DeleteFile removes the storage object, then the metadata row. The file id
// is resolved within the project from the URL, so a foreign file id comes
// back as a 404.
func (h *FilesHandler) DeleteFile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}
	if _, ok := accessProject(c, h.dir, projectID, userID); !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file id"})
		return
	}

	if err := h.files.Delete(projectID, fileID); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete file",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted successfully"})
}

// Cleanup is the explicit orphan sweep, admin only. With a project_id in the
// body it sweeps one project, otherwise every project.
func (h *FilesHandler) Cleanup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if !isAdmin(h.dir, userID) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "admin access required"})
		return
	}

	var req struct {
		ProjectID string `json:"project_id,omitempty"`
	}
	_ = c.ShouldBindJSON(&req)

	var removed []string
	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
			return
		}
		removed, err = h.files.RemoveOrphans(projectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "cleanup failed",
				Message: err.Error(),
			})
			return
		}
	} else {
		ids, err := h.dir.ListProjectIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "cleanup failed",
				Message: err.Error(),
			})
			return
		}
		for _, id := range ids {
			found, err := h.files.RemoveOrphans(id)
			if err != nil {
				h.log.Errorw("cleanup failed for project", "project_id", id, "error", err)
				continue
			}
			removed = append(removed, found...)
		}
	}

	c.JSON(http.StatusOK, models.CleanupResponse{Removed: removed})
}
