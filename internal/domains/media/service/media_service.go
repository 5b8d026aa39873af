package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/media/model"
	"blogpress-backend/internal/infrastructure/storage"
)

type ServiceInterface interface {
	// UploadImage validates, resizes and stores an image for an author.
	// Every variant lands under images/<handle>/<id>/.
	UploadImage(ctx context.Context, handle string, data []byte) (*model.UploadResult, error)

	// DeleteAuthorImages removes everything an author ever uploaded.
	DeleteAuthorImages(ctx context.Context, handle string) error
}

// ObjectStore is the slice of the blob store media needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type mediaService struct {
	store     ObjectStore
	processor *storage.ImageProcessor
}

func NewMediaService(store ObjectStore, processor *storage.ImageProcessor) ServiceInterface {
	return &mediaService{
		store:     store,
		processor: processor,
	}
}

func (s *mediaService) UploadImage(ctx context.Context, handle string, data []byte) (*model.UploadResult, error) {
	if int64(len(data)) > s.processor.MaxSize {
		return nil, model.ErrImageTooLarge
	}
	if err := s.processor.ValidateImage(data); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidImage, err)
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidImage, err)
	}

	id := uuid.New().String()
	prefix := fmt.Sprintf("images/%s/%s", strings.ToLower(handle), id)

	urls := model.ImageVariants{}
	for name, body := range variants {
		key := fmt.Sprintf("%s/%s.jpg", prefix, name)
		url, err := s.store.Upload(ctx, key, body, "image/jpeg")
		if err != nil {
			// Roll back anything already written for this upload.
			_ = s.store.DeleteByPrefix(ctx, prefix)
			return nil, fmt.Errorf("%w: %s", model.ErrStorageWrite, err)
		}
		urls[name] = url
	}

	return &model.UploadResult{
		Key:      prefix,
		Variants: urls,
	}, nil
}

func (s *mediaService) DeleteAuthorImages(ctx context.Context, handle string) error {
	prefix := fmt.Sprintf("images/%s/", strings.ToLower(handle))
	if err := s.store.DeleteByPrefix(ctx, prefix); err != nil {
		return fmt.Errorf("%w: %s", model.ErrStorageWrite, err)
	}
	return nil
}
