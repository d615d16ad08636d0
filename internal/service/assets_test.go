package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"siteapi/internal/cms"
	cmsMocks "siteapi/internal/cms/mocks"
	"siteapi/internal/storage"
	storageMocks "siteapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssetService_MirrorURL(t *testing.T) {
	ctx := context.Background()
	const ref = "image-abc123-800x600-jpg"
	const key = "assets/" + ref

	t.Run("already mirrored", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mStore := new(storageMocks.MockStorage)

		mStore.On("Stat", ctx, key).Return(storage.ObjectInfo{Key: key}, nil)
		mStore.On("PresignGet", ctx, key, presignExpiry).Return("https://minio.local/"+key+"?sig=x", nil)

		svc := NewAssetService(mCMS, mStore)

		url, err := svc.MirrorURL(ctx, ref)

		require.NoError(t, err)
		assert.Contains(t, url, key)
		mCMS.AssertNotCalled(t, "FetchAsset", mock.Anything, mock.Anything)
	})

	t.Run("copies on first request", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mStore := new(storageMocks.MockStorage)

		mStore.On("Stat", ctx, key).Return(storage.ObjectInfo{}, storage.ErrNotExist)
		mCMS.On("FetchAsset", ctx, ref).
			Return(io.NopCloser(strings.NewReader("jpegbytes")), "image/jpeg", nil)
		mStore.On("Put", ctx, key, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "image/jpeg" && opt.Size == -1
		})).Return(storage.ObjectInfo{Key: key}, nil)
		mStore.On("PresignGet", ctx, key, presignExpiry).Return("https://minio.local/"+key+"?sig=x", nil)

		svc := NewAssetService(mCMS, mStore)

		url, err := svc.MirrorURL(ctx, ref)

		require.NoError(t, err)
		assert.NotEmpty(t, url)
		mStore.AssertExpectations(t)
		mCMS.AssertExpectations(t)
	})

	t.Run("unknown ref", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mStore := new(storageMocks.MockStorage)

		mStore.On("Stat", ctx, key).Return(storage.ObjectInfo{}, storage.ErrNotExist)
		mCMS.On("FetchAsset", ctx, ref).Return(nil, "", cms.ErrNotFound)

		svc := NewAssetService(mCMS, mStore)

		_, err := svc.MirrorURL(ctx, ref)

		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stat error other than missing", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mStore := new(storageMocks.MockStorage)

		mStore.On("Stat", ctx, key).Return(storage.ObjectInfo{}, errors.New("connection refused"))

		svc := NewAssetService(mCMS, mStore)

		_, err := svc.MirrorURL(ctx, ref)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		mCMS.AssertNotCalled(t, "FetchAsset", mock.Anything, mock.Anything)
	})

	t.Run("upload failure surfaces", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mStore := new(storageMocks.MockStorage)

		mStore.On("Stat", ctx, key).Return(storage.ObjectInfo{}, storage.ErrNotExist)
		mCMS.On("FetchAsset", ctx, ref).
			Return(io.NopCloser(strings.NewReader("jpegbytes")), "image/jpeg", nil)
		mStore.On("Put", ctx, key, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket missing"))

		svc := NewAssetService(mCMS, mStore)

		_, err := svc.MirrorURL(ctx, ref)

		require.Error(t, err)
		mStore.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})
}
