package upload

import (
	"context"

	"github.com/phexara/phexara-api/internal/pkg/cloudinary"
	"github.com/phexara/phexara-api/internal/pkg/logger"
)

// Signer issues direct upload signatures.
type Signer interface {
	SignUpload() (*cloudinary.SignedUpload, error)
}

// Service hands out upload signatures. File bytes go from the browser to
// the media host and never pass through this service.
type Service struct {
	signer Signer
}

// NewService creates upload service
func NewService(signer Signer) *Service {
	return &Service{signer: signer}
}

// Sign returns a fresh signature for the current second.
func (s *Service) Sign(ctx context.Context) (*SignResponse, error) {
	signed, err := s.signer.SignUpload()
	if err != nil {
		return nil, err
	}

	logger.LogDebug(ctx, "upload signature issued",
		"cloud_name", signed.CloudName,
		"timestamp", signed.Timestamp,
	)

	return SignResponseFromSigned(signed), nil
}
