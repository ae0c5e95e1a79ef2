package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ImageUploader hands out presigned upload URLs. objectstore.Presigner
// implements it.
type ImageUploader interface {
	PresignPut(ctx context.Context) (key string, url string, err error)
	ObjectLink(key string) string
}

type DiaryService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	uploader     ImageUploader
	embedBaseURL string
}

func NewDiaryService(db *sql.DB, rm repomanager.RepositoryManager, uploader ImageUploader, embedBaseURL string) *DiaryService {
	return &DiaryService{
		db:           db,
		repomanager:  rm,
		uploader:     uploader,
		embedBaseURL: embedBaseURL,
	}
}

// EmbedURL rewrites a watch link into an embed link. The video id is the
// text after the first "v=" up to the next '&' or '#'.
func EmbedURL(base, link string) (string, error) {
	i := strings.Index(link, "v=")
	if i < 0 {
		return "", fmt.Errorf("%w: video link has no v= parameter", common.ErrorValidation)
	}
	id := link[i+len("v="):]
	if j := strings.IndexAny(id, "&#"); j >= 0 {
		id = id[:j]
	}
	if id == "" {
		return "", fmt.Errorf("%w: video link has an empty v= parameter", common.ErrorValidation)
	}
	return base + id, nil
}

func (s *DiaryService) ListImages(ctx context.Context) ([]*models.DiaryEntry, error) {
	return s.repomanager.Diaries(s.db).ListByType(ctx, models.DiaryImage)
}

func (s *DiaryService) ListVideos(ctx context.Context) ([]*models.DiaryEntry, error) {
	return s.repomanager.Diaries(s.db).ListByType(ctx, models.DiaryVideo)
}

func (s *DiaryService) Get(ctx context.Context, id string) (*models.DiaryEntry, error) {
	return s.repomanager.Diaries(s.db).Get(ctx, id)
}

// CreateImage stores link unchanged.
func (s *DiaryService) CreateImage(ctx context.Context, link string) (*models.DiaryEntry, error) {
	return s.create(ctx, link, models.DiaryImage)
}

// CreateVideo stores the embed form of link.
func (s *DiaryService) CreateVideo(ctx context.Context, link string) (*models.DiaryEntry, error) {
	embed, err := EmbedURL(s.embedBaseURL, link)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, embed, models.DiaryVideo)
}

func (s *DiaryService) create(ctx context.Context, link, entryType string) (*models.DiaryEntry, error) {
	entry := &models.DiaryEntry{
		ID:   uuid.NewString(),
		Link: link,
		Type: entryType,
	}
	if err := s.repomanager.Diaries(s.db).Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// PresignImageUpload returns where to upload an image and the link to
// register with CreateImage afterwards.
func (s *DiaryService) PresignImageUpload(ctx context.Context) (*models.UploadTicket, error) {
	if s.uploader == nil {
		return nil, common.ErrorStorageDisabled
	}
	key, url, err := s.uploader.PresignPut(ctx)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &models.UploadTicket{
		Key:       key,
		UploadURL: url,
		Link:      s.uploader.ObjectLink(key),
	}, nil
}

func (s *DiaryService) Delete(ctx context.Context, id string) (*models.DiaryEntry, error) {
	var removed *models.DiaryEntry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Diaries(tx)
		e, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		removed = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
