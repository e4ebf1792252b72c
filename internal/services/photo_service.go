package services

import (
	"context"
	"log"
	"time"

	"fishplant-backend/internal/archive"
	"fishplant-backend/internal/gas"
	"fishplant-backend/internal/models"
	"fishplant-backend/internal/repositories"
)

// Photo categories logged with each upload.
const (
	PhotoCategoryParasite = "parasite"
	PhotoCategoryForeign  = "foreign"
)

type photoUploader interface {
	UploadB64(ctx context.Context, up gas.UploadRequest) error
}

// PhotoService pushes one photo to the upstream Drive folder, records the
// upload locally, and mirrors it to the archive bucket in the background.
type PhotoService struct {
	upstream photoUploader
	logs     *repositories.UploadLogRepository
	archiver *archive.Archiver
}

func NewPhotoService(upstream photoUploader, logs *repositories.UploadLogRepository, archiver *archive.Archiver) *PhotoService {
	return &PhotoService{upstream: upstream, logs: logs, archiver: archiver}
}

func (s *PhotoService) Send(ctx context.Context, ticketID, category string, p models.Photo) error {
	err := s.upstream.UploadB64(ctx, gas.UploadRequest{
		TicketID:   ticketID,
		FileName:   p.FileName,
		ContentB64: p.ContentB64,
		MimeType:   p.MimeType,
	})
	if err != nil {
		return err
	}

	entry := &models.UploadLog{
		TicketID:  ticketID,
		FileName:  p.FileName,
		Category:  category,
		SizeBytes: int64(len(p.ContentB64)) * 3 / 4, // decoded size, close enough
	}
	if s.logs != nil {
		if err := s.logs.Create(ctx, entry); err != nil {
			// The photo is already upstream; a missing log row is not
			// worth failing the submission over.
			log.Printf("[Photo] upload log for %s failed: %v", p.FileName, err)
		}
	}

	if s.archiver != nil {
		go s.archiveAsync(ticketID, entry.ID, p)
	}
	return nil
}

func (s *PhotoService) archiveAsync(ticketID string, logID int64, p models.Photo) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := s.archiver.Put(ctx, ticketID, p.FileName, p.ContentB64, p.MimeType); err != nil {
		log.Printf("[Photo] archive of %s failed: %v", p.FileName, err)
		return
	}
	if s.logs != nil && logID != 0 {
		if err := s.logs.MarkArchived(ctx, logID); err != nil {
			log.Printf("[Photo] mark archived %s failed: %v", p.FileName, err)
		}
	}
}

func (s *PhotoService) ListByTicket(ctx context.Context, ticketID string) ([]models.UploadLog, error) {
	return s.logs.ListByTicket(ctx, ticketID)
}
