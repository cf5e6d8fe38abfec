package logic

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/campus-connect/campus/internal/campus/media"
	"github.com/campus-connect/campus/internal/campus/model"
	pkgctx "github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDatabase 测试用 sqlite 内存库
type testDatabase struct {
	db *gorm.DB
}

func (t *testDatabase) Database() *gorm.DB {
	return t.db
}

func newTestDB(t *testing.T) *testDatabase {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库必须限制为单连接，否则每个连接各持一份空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.College{},
		&model.Event{},
		&model.EventParticipation{},
		&model.MarketplaceItem{},
		&model.VerificationRequest{},
		&model.Notification{},
	))
	return &testDatabase{db: db}
}

func newTestCtx() *pkgctx.Context {
	return pkgctx.NewContext(context.Background(), nil, nil, nil)
}

func newTestResolver(t *testing.T) *media.Resolver {
	t.Helper()
	return media.NewResolver(nil, storage.NewLocal(t.TempDir(), "/static"))
}

// fakeCache 内存版 ICache，token 流转测试用
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}
