package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	imageFolder = "eduvia/images"
	videoFolder = "eduvia/videos"
)

// CloudinaryStore implements MediaStore against a Cloudinary account.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary client: %w", err)
	}
	return &CloudinaryStore{client: client}, nil
}

func (s *CloudinaryStore) UploadImage(ctx context.Context, r io.Reader, size int64) (*Blob, error) {
	gated, err := gateMedia(r, size, MaxImageSize, "image/")
	if err != nil {
		return nil, err
	}
	return s.upload(ctx, gated, imageFolder, "image")
}

func (s *CloudinaryStore) UploadVideo(ctx context.Context, r io.Reader, size int64) (*Blob, error) {
	gated, err := gateMedia(r, size, MaxVideoSize, "video/")
	if err != nil {
		return nil, err
	}
	return s.upload(ctx, gated, videoFolder, "video")
}

func (s *CloudinaryStore) upload(ctx context.Context, r io.Reader, folder, resourceType string) (*Blob, error) {
	resp, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", resourceType, err)
	}
	return &Blob{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (s *CloudinaryStore) RemoveImage(ctx context.Context, publicID string) error {
	return s.remove(ctx, publicID, "image")
}

func (s *CloudinaryStore) RemoveVideo(ctx context.Context, publicID string) error {
	return s.remove(ctx, publicID, "video")
}

func (s *CloudinaryStore) remove(ctx context.Context, publicID, resourceType string) error {
	if publicID == "" {
		// Default assets carry no public id and never get removed.
		return nil
	}
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("removing %s %s: %w", resourceType, publicID, err)
	}
	return nil
}
