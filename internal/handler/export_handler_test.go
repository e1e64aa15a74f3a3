package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vexport/internal/domain"
	"vexport/internal/handler"
	"vexport/internal/service"
	"vexport/mocks"
)

func exportRouter(svc service.ExportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewExportHandler(svc, testConfig())
	r.POST("/api/v1/exports/:grammar/:format", h.Export)
	return r
}

func TestExport_Created(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("Export", mock.Anything, mock.MatchedBy(func(in service.ConvertInput) bool {
		return in.Grammar == domain.GrammarVegaLite && in.Format == domain.FormatPNG
	})).Return(&service.ExportOutput{
		Key:         "exports/vega-lite/abc.png",
		URL:         "https://presigned.example.com/abc.png",
		ContentType: "image/png",
		Size:        4,
	}, nil)

	w := doRequest(exportRouter(svc), "/api/v1/exports/vega-lite/png", vlSpec)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "presigned.example.com")
	svc.AssertExpectations(t)
}

func TestExport_StorageDisabled(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("Export", mock.Anything, mock.Anything).Return(nil, domain.ErrStorageDisabled)

	w := doRequest(exportRouter(svc), "/api/v1/exports/vega/svg", vlSpec)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "STORAGE_DISABLED", resp.Error.Code)
}

func TestExport_ConversionFailed(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("Export", mock.Anything, mock.Anything).
		Return(nil, domain.ErrConversionFailed)

	w := doRequest(exportRouter(svc), "/api/v1/exports/vega/pdf", "not json")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "CONVERSION_FAILED", resp.Error.Code)
}

func TestExport_UnknownGrammarRejectedBeforeService(t *testing.T) {
	svc := new(mocks.MockExportService)

	w := doRequest(exportRouter(svc), "/api/v1/exports/plotly/png", vlSpec)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}
