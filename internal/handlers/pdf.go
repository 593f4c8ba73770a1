package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/mailer"
	"github.com/Catacombb/f9-sub000/internal/models"
	"github.com/Catacombb/f9-sub000/internal/pdf"
	"github.com/Catacombb/f9-sub000/internal/services"
)

type PDFHandler struct {
	briefs *services.BriefService
	mail   *mailer.Mailer
	dir    Directory
	log    *zap.SugaredLogger
}

// NewPDFHandler accepts a nil mailer; the send endpoint then reports that
// email delivery is disabled.
func NewPDFHandler(briefs *services.BriefService, mail *mailer.Mailer, dir Directory, log *zap.SugaredLogger) *PDFHandler {
	return &PDFHandler{briefs: briefs, mail: mail, dir: dir, log: log}
}

// ExportSummary renders the brief to PDF and streams it as a download.
func (h *PDFHandler) ExportSummary(c *gin.Context) {
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

	data, _, err := h.renderSummary(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate pdf",
			Message: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="design-brief-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// SendSummary renders the brief and emails it. Best effort: a failed send
// surfaces as an error but nothing is queued for retry.
func (h *PDFHandler) SendSummary(c *gin.Context) {
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

	if h.mail == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: "email delivery is not configured",
		})
		return
	}

	var req models.SendSummaryRequest
	_ = c.ShouldBindJSON(&req)

	data, project, err := h.renderSummary(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate pdf",
			Message: err.Error(),
		})
		return
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = project.ContactEmail
	}
	if recipient == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "no recipient: project has no contact email",
		})
		return
	}

	if err := h.mail.SendSummary(recipient, project.ClientName, data); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to send summary",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": fmt.Sprintf("summary sent to %s", recipient),
	})
}

func (h *PDFHandler) renderSummary(projectID uuid.UUID) ([]byte, *models.Project, error) {
	brief, project, err := h.briefs.LoadBrief(projectID)
	if err != nil {
		return nil, nil, err
	}

	doc := pdf.NewSummary(project, brief, time.Now())
	data, err := doc.Render()
	if err != nil {
		return nil, nil, err
	}
	h.log.Debugw("rendered summary pdf",
		"project_id", projectID, "pages", doc.PageCount(), "bytes", len(data))
	return data, project, nil
}
