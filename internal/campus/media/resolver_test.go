package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campus-connect/campus/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct {
	removed []string
}

func (f *failingProvider) PutObject(_ context.Context, _ string, _ io.Reader, _ int64, _ string) (string, error) {
	return "", errors.New("connection refused")
}

func (f *failingProvider) RemoveObject(_ context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	return errors.New("connection refused")
}

func (f *failingProvider) PublicURL(objectName string) string {
	return "https://cdn.example.com/" + objectName
}

func newLocalResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(nil, storage.NewLocal(t.TempDir(), "/static"))
}

func TestResolveEventImageLocalPath(t *testing.T) {
	r := newLocalResolver(t)

	url, err := r.Resolve(context.Background(), KindEventImage, Keys{EventId: "ev-1"}, "banner.png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "/static/events/ev-1/event_image.png", url)
}

func TestResolveMarketplaceItemLocalPath(t *testing.T) {
	r := newLocalResolver(t)

	url, err := r.Resolve(context.Background(), KindMarketplaceItem,
		Keys{OwnerId: "u-1", ItemId: "it-9"}, "photo.jpg", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "/static/marketplace/u-1/items/it-9/item_image.jpg", url)
}

func TestResolveProfileImageOverwrites(t *testing.T) {
	r := newLocalResolver(t)

	url1, err := r.Resolve(context.Background(), KindProfileImage, Keys{UserId: "u-1"}, "a.jpg", []byte("one"))
	require.NoError(t, err)
	url2, err := r.Resolve(context.Background(), KindProfileImage, Keys{UserId: "u-1"}, "b.jpg", []byte("two"))
	require.NoError(t, err)

	// 固定文件名，两次上传同一路径
	assert.Equal(t, "/static/users/u-1/profile_picture/profile_picture.jpg", url1)
	assert.Equal(t, url1, url2)
}

func TestResolveVerificationDocumentFreshName(t *testing.T) {
	r := newLocalResolver(t)
	keys := Keys{UserId: "u-1"}

	url1, err := r.Resolve(context.Background(), KindVerificationDocument, keys, "card.pdf", []byte("doc"))
	require.NoError(t, err)
	url2, err := r.Resolve(context.Background(), KindVerificationDocument, keys, "card.pdf", []byte("doc"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url1, "/static/users/u-1/verification/id_card_"))
	assert.Equal(t, ".pdf", filepath.Ext(url1))
	// 每次提交生成新文件名，不覆盖
	assert.NotEqual(t, url1, url2)
}

func TestResolveRemoteFailureFallsBackToLocal(t *testing.T) {
	remote := &failingProvider{}
	r := NewResolver(remote, storage.NewLocal(t.TempDir(), "/static"))

	url, err := r.Resolve(context.Background(), KindEventImage, Keys{EventId: "ev-2"}, "cover.webp", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "/static/events/ev-2/event_image.webp", url)
}

func TestResolveProfileImageRemoveFailureIgnored(t *testing.T) {
	remote := &failingProvider{}
	r := NewResolver(remote, storage.NewLocal(t.TempDir(), "/static"))

	url, err := r.Resolve(context.Background(), KindProfileImage, Keys{UserId: "u-1"}, "a.png", []byte("img"))
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	// 旧对象清理被尝试过，失败不影响结果
	assert.Len(t, remote.removed, 1)
}

func TestResolveMissingKeyRejected(t *testing.T) {
	r := newLocalResolver(t)

	_, err := r.Resolve(context.Background(), KindEventImage, Keys{}, "a.png", []byte("img"))
	assert.Error(t, err)

	_, err = r.Resolve(context.Background(), Kind("unknown"), Keys{UserId: "u-1"}, "a.png", []byte("img"))
	assert.Error(t, err)
}
