package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ContentService interface {
	CreatePost(ctx context.Context, rc *transfer.RequestContext, pc *transfer.PostCreation, file *multipart.FileHeader) (int64, error)
	List(ctx context.Context, rc *transfer.RequestContext) ([]*models.ContentPost, error)
	PostInfo(ctx context.Context, rc *transfer.RequestContext, postID int64) (*models.ContentPost, error)
	Update(ctx context.Context, rc *transfer.RequestContext, pu *transfer.PostUpdate) error
	Remove(ctx context.Context, rc *transfer.RequestContext, postID int64) error
}

type contentService struct {
	db *sql.DB
	cp repository.ContentPostRepository
	ma repository.MediaAssetRepository
	r2 *R2Service
}

func NewContentService(
	db *sql.DB,
	cp repository.ContentPostRepository,
	ma repository.MediaAssetRepository,
	r2 *R2Service) ContentService {
	return &contentService{
		db: db,
		cp: cp,
		ma: ma,
		r2: r2,
	}
}

func (s *contentService) CreatePost(ctx context.Context, rc *transfer.RequestContext, pc *transfer.PostCreation, file *multipart.FileHeader) (int64, error) {
	if pc == nil {
		return 0, apperr.Validation("post creation data is nil")
	}
	if pc.Title == "" {
		return 0, apperr.Validation("title cannot be empty")
	}
	if len(pc.Platforms) == 0 {
		return 0, apperr.Validation("no platforms selected")
	}
	for _, p := range pc.Platforms {
		if p != models.PlatformFacebook && p != models.PlatformInstagram && p != models.PlatformGoogle {
			return 0, apperr.Validation(fmt.Sprintf("unknown platform %q", p))
		}
	}

	// Evergreen posts carry no fixed schedule; their distribution date is
	// decided per assignment.
	if pc.IsEvergreen && pc.ScheduledTime != "" {
		return 0, apperr.Validation("evergreen posts cannot have a scheduled time")
	}

	var scheduledTime sql.NullTime
	status := models.PostStatusDraft
	if pc.IsEvergreen {
		status = models.PostStatusAutomated
	} else if pc.ScheduledTime != "" {
		parsed, err := time.Parse("2006-01-02T15:04", pc.ScheduledTime)
		if err != nil {
			slog.Info(err.Error())
			return 0, apperr.Validation("invalid scheduled time format")
		}
		scheduledTime = sql.NullTime{Time: parsed, Valid: true}
		status = models.PostStatusScheduled
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	var mediaURL string
	if file != nil {
		mediaURL, err = s.processFile(ctx, tx, rc.UserID, file)
		if err != nil {
			return 0, fmt.Errorf("error processing file: %w", err)
		}
	}

	post := models.ContentPost{
		UserID:        rc.UserID,
		Title:         pc.Title,
		Description:   pc.Description,
		MediaURL:      mediaURL,
		Platforms:     pc.Platforms,
		ScheduledTime: scheduledTime,
		Status:        status,
		IsEvergreen:   pc.IsEvergreen,
		Tags:          pc.Tags,
		Category:      pc.Category,
	}

	postID, err := s.cp.Create(ctx, tx, &post)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return postID, nil
}

func (s *contentService) processFile(ctx context.Context, tx *sql.Tx, userID int64, file *multipart.FileHeader) (string, error) {
	allowedTypes := map[string]struct{}{
		"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", apperr.Validation("unsupported file type")
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return "", apperr.Validation(fmt.Sprintf("file type %s is not allowed", fileType.Extension))
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if err := s.r2.UploadToR2(ctx, id, fileBytes, fileType.MIME.Value); err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}

	ma := models.MediaAsset{
		UserID:   userID,
		FileName: id,
		FileType: fileType.MIME.Value,
		FileSize: int64(len(fileBytes)),
		FileURL:  s.r2.PublicURL(id),
	}

	if _, err := s.ma.Create(ctx, tx, &ma); err != nil {
		return "", fmt.Errorf("error saving media asset: %w", err)
	}

	return ma.FileURL, nil
}

func (s *contentService) List(ctx context.Context, rc *transfer.RequestContext) ([]*models.ContentPost, error) {
	posts, err := s.cp.GetByUserID(ctx, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *contentService) PostInfo(ctx context.Context, rc *transfer.RequestContext, postID int64) (*models.ContentPost, error) {
	if postID == 0 {
		return nil, apperr.Validation("post id is not valid")
	}

	isValid, err := s.cp.CheckByUserID(ctx, postID, rc.UserID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		return nil, apperr.NotFound("post doesn't exist")
	}

	post, err := s.cp.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info: %w", err)
	}

	return post, nil
}

func (s *contentService) Update(ctx context.Context, rc *transfer.RequestContext, pu *transfer.PostUpdate) error {
	if pu == nil || pu.ID == 0 {
		return apperr.Validation("post id is not valid")
	}
	if pu.Title == "" {
		return apperr.Validation("title cannot be empty")
	}
	if len(pu.Platforms) == 0 {
		return apperr.Validation("no platforms selected")
	}
	for _, p := range pu.Platforms {
		if p != models.PlatformFacebook && p != models.PlatformInstagram && p != models.PlatformGoogle {
			return apperr.Validation(fmt.Sprintf("unknown platform %q", p))
		}
	}
	if pu.IsEvergreen && pu.ScheduledTime != "" {
		return apperr.Validation("evergreen posts cannot have a scheduled time")
	}

	isValid, err := s.cp.CheckByUserID(ctx, pu.ID, rc.UserID)
	if err != nil {
		return err
	}
	if !isValid {
		return apperr.NotFound("post doesn't exist")
	}

	post, err := s.cp.GetByID(ctx, pu.ID)
	if err != nil {
		return fmt.Errorf("error getting post info: %w", err)
	}

	post.Title = pu.Title
	post.Description = pu.Description
	post.Platforms = pu.Platforms
	post.Tags = pu.Tags
	post.Category = pu.Category
	post.IsEvergreen = pu.IsEvergreen

	switch {
	case pu.IsEvergreen:
		post.ScheduledTime = sql.NullTime{}
		post.Status = models.PostStatusAutomated
	case pu.ScheduledTime != "":
		parsed, err := time.Parse("2006-01-02T15:04", pu.ScheduledTime)
		if err != nil {
			slog.Info(err.Error())
			return apperr.Validation("invalid scheduled time format")
		}
		post.ScheduledTime = sql.NullTime{Time: parsed, Valid: true}
		post.Status = models.PostStatusScheduled
	default:
		post.ScheduledTime = sql.NullTime{}
		post.Status = models.PostStatusDraft
	}

	if err := s.cp.Update(ctx, post); err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}

	return nil
}

func (s *contentService) Remove(ctx context.Context, rc *transfer.RequestContext, postID int64) error {
	if postID == 0 {
		return apperr.Validation("post id is not valid")
	}

	isValid, err := s.cp.CheckByUserID(ctx, postID, rc.UserID)
	if err != nil {
		return err
	}
	if !isValid {
		return apperr.NotFound("post doesn't exist")
	}

	if err := s.cp.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}

	return nil
}
