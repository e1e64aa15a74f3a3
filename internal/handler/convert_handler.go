package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vexport/internal/config"
	"vexport/internal/domain"
	"vexport/internal/service"
)

// ConvertHandler handles synchronous conversion endpoints.
type ConvertHandler struct {
	convertService service.ConvertService
	defaults       config.DefaultsConfig
	maxSpecBytes   int64
}

// NewConvertHandler creates a new ConvertHandler.
func NewConvertHandler(convertService service.ConvertService, cfg *config.Config) *ConvertHandler {
	return &ConvertHandler{
		convertService: convertService,
		defaults:       cfg.Defaults,
		maxSpecBytes:   cfg.Server.MaxSpecKB * 1024,
	}
}

// Convert handles POST /api/v1/convert/:grammar/:format. The request body is
// the raw spec text; options arrive as query parameters. Success returns the
// payload bytes with the format's native content type; failure returns the
// JSON error envelope with the facade's failure message.
func (h *ConvertHandler) Convert(c *gin.Context) {
	input, ok := bindConvertInput(c, h.defaults, h.maxSpecBytes)
	if !ok {
		return
	}

	res := h.convertService.Convert(c.Request.Context(), input)
	if !res.OK() {
		RespondError(c, http.StatusUnprocessableEntity, "CONVERSION_FAILED", res.Text)
		return
	}

	payload := res.Binary
	if res.Kind == domain.PayloadText {
		payload = []byte(res.Text)
	}
	c.Data(http.StatusOK, input.Format.ContentType(), payload)
}

// bindConvertInput parses route params, query options, and the spec body.
// On failure the error response has already been written.
func bindConvertInput(c *gin.Context, defaults config.DefaultsConfig, maxSpecBytes int64) (service.ConvertInput, bool) {
	grammar, err := domain.ParseGrammar(c.Param("grammar"))
	if err != nil {
		HandleError(c, err)
		return service.ConvertInput{}, false
	}
	format, err := domain.ParseFormat(c.Param("format"))
	if err != nil {
		HandleError(c, err)
		return service.ConvertInput{}, false
	}

	spec, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSpecBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "failed to read request body")
		return service.ConvertInput{}, false
	}
	if int64(len(spec)) > maxSpecBytes {
		HandleError(c, domain.ErrSpecTooLarge)
		return service.ConvertInput{}, false
	}

	bundle, _ := strconv.ParseBool(c.Query("bundle"))
	return service.ConvertInput{
		Grammar:  grammar,
		Format:   format,
		Spec:     string(spec),
		Bundle:   bundle,
		Renderer: c.DefaultQuery("renderer", string(domain.RendererSVG)),
		Scale:    floatQuery(c, "scale", defaults.Scale),
		PPI:      floatQuery(c, "ppi", defaults.PPI),
		Quality:  intQuery(c, "quality", defaults.Quality),
	}, true
}

// floatQuery returns the query parameter as a float, or fallback when absent
// or unparsable. Range checking stays with the engine.
func floatQuery(c *gin.Context, key string, fallback float64) float64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
