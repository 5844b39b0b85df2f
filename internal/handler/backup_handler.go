package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusys-app/edusys-api/internal/service"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
	"github.com/edusys-app/edusys-api/pkg/response"
)

// maxBackupSize caps uploaded backup documents at 10 MiB.
const maxBackupSize = 10 << 20

// BackupHandler exposes export, import and reset endpoints.
type BackupHandler struct {
	backup *service.BackupService
}

// NewBackupHandler constructs BackupHandler.
func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

// Export godoc
// @Summary Download all data as a JSON backup
// @Tags Backup
// @Produce json
// @Success 200 {object} models.Backup
// @Router /backup/export [get]
func (h *BackupHandler) Export(c *gin.Context) {
	backup, filename := h.backup.Export(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, backup)
}

// Import godoc
// @Summary Restore data from a JSON backup
// @Tags Backup
// @Accept json
// @Success 204
// @Router /backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read backup body"))
		return
	}
	if err := h.backup.Import(c.Request.Context(), raw); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reset godoc
// @Summary Clear all collections, keeping preferences
// @Tags Backup
// @Success 204
// @Router /backup/reset [post]
func (h *BackupHandler) Reset(c *gin.Context) {
	h.backup.Reset(c.Request.Context())
	response.NoContent(c)
}
