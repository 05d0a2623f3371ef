package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Mdwaseel/batsdatacollection/internal/dto"
	"github.com/Mdwaseel/batsdatacollection/internal/imaging"
	"github.com/Mdwaseel/batsdatacollection/internal/model"
	"github.com/Mdwaseel/batsdatacollection/internal/storage"
)

// AssetUploadError means the image passed validation but the storage write
// failed. The owning save continues with that asset absent.
type AssetUploadError struct {
	Filename string
	Message  string
}

func (e *AssetUploadError) Error() string {
	return fmt.Sprintf("error uploading %s: %s", e.Filename, e.Message)
}

const uploadErrMsgLimit = 100

// AssetService runs one image through validate → compress → store and
// returns the stored-asset descriptor.
type AssetService interface {
	Upload(ctx context.Context, up dto.ImageUpload, folder string) (*model.StoredAsset, error)
}

type assetService struct {
	store storage.ObjectStore
}

func NewAssetService(store storage.ObjectStore) AssetService {
	return &assetService{store: store}
}

func (s *assetService) Upload(ctx context.Context, up dto.ImageUpload, folder string) (*model.StoredAsset, error) {
	proc, err := imaging.Prepare(up.Data, up.ContentType, up.Size, up.Filename, folder)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, proc.Path, proc.Data, proc.ContentType); err != nil {
		msg := err.Error()
		if len(msg) > uploadErrMsgLimit {
			msg = msg[:uploadErrMsgLimit]
		}
		return nil, &AssetUploadError{Filename: up.Filename, Message: msg}
	}

	log.Info().Str("path", proc.Path).Msg("image uploaded")

	return &model.StoredAsset{
		Filename: up.Filename,
		Path:     proc.Path,
		URL:      s.store.PublicURL(proc.Path),
	}, nil
}
