package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vexport/internal/config"
	"vexport/internal/domain"
	"vexport/internal/handler"
	"vexport/internal/service"
	"vexport/mocks"
)

const vlSpec = `{"mark":"bar","data":{"values":[{"a":1}]}}`

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{MaxSpecKB: 1},
		Defaults: config.DefaultsConfig{Scale: 1.0, PPI: 72.0, Quality: 90},
	}
}

func convertRouter(svc service.ConvertService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewConvertHandler(svc, testConfig())
	r.POST("/api/v1/convert/:grammar/:format", h.Convert)
	return r
}

func doRequest(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestConvert_TextSuccess(t *testing.T) {
	svc := new(mocks.MockConvertService)
	svc.On("Convert", mock.Anything, mock.MatchedBy(func(in service.ConvertInput) bool {
		return in.Grammar == domain.GrammarVegaLite &&
			in.Format == domain.FormatSVG &&
			in.Spec == vlSpec &&
			in.Scale == 1.0 && in.PPI == 72.0 && in.Quality == 90
	})).Return(domain.OkText("<svg/>"))

	w := doRequest(convertRouter(svc), "/api/v1/convert/vega-lite/svg", vlSpec)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<svg/>", w.Body.String())
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	svc.AssertExpectations(t)
}

func TestConvert_BinarySuccess(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	svc := new(mocks.MockConvertService)
	svc.On("Convert", mock.Anything, mock.Anything).Return(domain.OkBinary(png))

	w := doRequest(convertRouter(svc), "/api/v1/convert/vega/png", vlSpec)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, png, w.Body.Bytes())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestConvert_QueryOptions(t *testing.T) {
	svc := new(mocks.MockConvertService)
	svc.On("Convert", mock.Anything, mock.MatchedBy(func(in service.ConvertInput) bool {
		return in.Bundle && in.Renderer == "canvas" && in.Scale == 2.5 && in.Quality == 70
	})).Return(domain.OkText("<!DOCTYPE html>"))

	w := doRequest(convertRouter(svc),
		"/api/v1/convert/vega-lite/html?bundle=true&renderer=canvas&scale=2.5&quality=70", vlSpec)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestConvert_FailureReturns422(t *testing.T) {
	svc := new(mocks.MockConvertService)
	svc.On("Convert", mock.Anything, mock.Anything).
		Return(domain.Fail(domain.PayloadText, "Vega spec is not valid JSON"))

	w := doRequest(convertRouter(svc), "/api/v1/convert/vega/svg", "not json")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "CONVERSION_FAILED", resp.Error.Code)
	assert.Equal(t, "Vega spec is not valid JSON", resp.Error.Message)
}

func TestConvert_UnknownGrammar(t *testing.T) {
	svc := new(mocks.MockConvertService)

	w := doRequest(convertRouter(svc), "/api/v1/convert/d3/svg", vlSpec)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "UNKNOWN_GRAMMAR", resp.Error.Code)
	svc.AssertExpectations(t)
}

func TestConvert_UnknownFormat(t *testing.T) {
	svc := new(mocks.MockConvertService)

	w := doRequest(convertRouter(svc), "/api/v1/convert/vega/gif", vlSpec)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "UNKNOWN_FORMAT", resp.Error.Code)
	svc.AssertExpectations(t)
}

func TestConvert_SpecTooLarge(t *testing.T) {
	svc := new(mocks.MockConvertService)

	// MaxSpecKB is 1 in the test config
	big := strings.Repeat("x", 2048)
	w := doRequest(convertRouter(svc), "/api/v1/convert/vega/svg", big)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "SPEC_TOO_LARGE", resp.Error.Code)
	svc.AssertExpectations(t)
}
