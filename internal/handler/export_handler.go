package handler

import (
	"github.com/gin-gonic/gin"

	"vexport/internal/config"
	"vexport/internal/service"
)

// ExportHandler handles convert-and-upload endpoints.
type ExportHandler struct {
	exportService service.ExportService
	defaults      config.DefaultsConfig
	maxSpecBytes  int64
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService, cfg *config.Config) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		defaults:      cfg.Defaults,
		maxSpecBytes:  cfg.Server.MaxSpecKB * 1024,
	}
}

// Export handles POST /api/v1/exports/:grammar/:format. The spec is
// converted, the artifact uploaded to the object store, and the response
// carries the artifact metadata with a presigned download URL.
func (h *ExportHandler) Export(c *gin.Context) {
	input, ok := bindConvertInput(c, h.defaults, h.maxSpecBytes)
	if !ok {
		return
	}

	out, err := h.exportService.Export(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, out)
}
