package upload

import "github.com/phexara/phexara-api/internal/pkg/cloudinary"

// SignResponse for POST /api/upload
type SignResponse struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	UploadURL string `json:"uploadUrl"`
}

// SignResponseFromSigned converts a signed upload to its response
func SignResponseFromSigned(s *cloudinary.SignedUpload) *SignResponse {
	return &SignResponse{
		Signature: s.Signature,
		Timestamp: s.Timestamp,
		APIKey:    s.APIKey,
		CloudName: s.CloudName,
		UploadURL: s.UploadURL,
	}
}
