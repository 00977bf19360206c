package converter

import (
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/goccy/go-json"
)

// PendingUploadToResponse converts a PendingUpload entity to its review DTO
func PendingUploadToResponse(upload *entity.PendingUpload) (*dto.PendingUploadResponse, error) {
	if upload == nil {
		return nil, nil
	}

	extracted := map[string]interface{}{}
	if len(upload.Extracted) > 0 {
		if err := json.Unmarshal(upload.Extracted, &extracted); err != nil {
			return nil, err
		}
	}

	return &dto.PendingUploadResponse{
		UploadID:         upload.ID,
		PatientID:        upload.PatientID,
		OriginalFilename: upload.OriginalFilename,
		Extracted:        extracted,
		ReportTimestamp:  upload.ReportTimestamp,
		ExpiresAt:        upload.ExpiresAt,
	}, nil
}
