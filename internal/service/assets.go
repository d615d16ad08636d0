package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siteapi/internal/cms"
	"siteapi/internal/storage"
)

// presignExpiry is how long a mirrored-asset URL stays valid.
const presignExpiry = 15 * time.Minute

// AssetService serves CMS media through the object-store mirror, so
// images keep loading when the CMS CDN is unreachable.
type AssetService interface {
	// MirrorURL returns a presigned URL for the asset ref, copying it
	// from the CMS into the mirror first if it is not there yet.
	MirrorURL(ctx context.Context, ref string) (string, error)
}

type assetService struct {
	cms   cms.Client
	store storage.Storage
}

// NewAssetService constructs an AssetService.
func NewAssetService(client cms.Client, store storage.Storage) AssetService {
	return &assetService{cms: client, store: store}
}

func (s *assetService) MirrorURL(ctx context.Context, ref string) (string, error) {
	key := "assets/" + ref

	_, err := s.store.Stat(ctx, key)
	if err == nil {
		return s.store.PresignGet(ctx, key, presignExpiry)
	}
	if !errors.Is(err, storage.ErrNotExist) {
		return "", fmt.Errorf("stat mirror: %w", err)
	}

	body, contentType, err := s.cms.FetchAsset(ctx, ref)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("fetch asset: %w", err)
	}
	defer body.Close()

	if _, err := s.store.Put(ctx, key, body, storage.PutObjectOptions{
		Size:        -1, // length unknown, stream-chunked
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("mirror asset: %w", err)
	}

	return s.store.PresignGet(ctx, key, presignExpiry)
}
