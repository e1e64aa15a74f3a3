package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"vexport/internal/config"
	"vexport/internal/domain"
	"vexport/internal/observability"
	"vexport/internal/port"
)

// ExportOutput describes an artifact written to the object store.
type ExportOutput struct {
	Key         string `json:"key"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// ExportService converts a spec and uploads the rendered artifact to the
// object store, returning a presigned download URL.
type ExportService interface {
	Export(ctx context.Context, input ConvertInput) (*ExportOutput, error)
}

type exportService struct {
	convertSvc ConvertService
	storage    port.ObjectStorage
	cfg        *config.StorageConfig
}

// NewExportService creates an ExportService. storage may be nil when the
// artifact store is disabled; Export then fails with ErrStorageDisabled.
func NewExportService(convertSvc ConvertService, storage port.ObjectStorage, cfg *config.StorageConfig) ExportService {
	return &exportService{convertSvc: convertSvc, storage: storage, cfg: cfg}
}

func (s *exportService) Export(ctx context.Context, input ConvertInput) (*ExportOutput, error) {
	if s.storage == nil || !s.cfg.Enabled {
		return nil, domain.ErrStorageDisabled
	}

	res := s.convertSvc.Convert(ctx, input)
	if !res.OK() {
		return nil, fmt.Errorf("%w: %s", domain.ErrConversionFailed, res.Text)
	}

	payload := res.Binary
	if res.Kind == domain.PayloadText {
		payload = []byte(res.Text)
	}

	contentType := input.Format.ContentType()
	key := fmt.Sprintf("exports/%s/%s.%s", input.Grammar, uuid.New(), domain.FormatExtensions[input.Format])

	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(payload),
		ContentType: contentType,
	})
	if err != nil {
		observability.ArtifactUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	observability.ArtifactUploadsTotal.WithLabelValues("ok").Inc()
	observability.ArtifactBytesTotal.Add(float64(len(payload)))

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning artifact url: %w", err)
	}

	return &ExportOutput{
		Key:         key,
		Location:    out.Location,
		URL:         url,
		ContentType: contentType,
		Size:        len(payload),
	}, nil
}
