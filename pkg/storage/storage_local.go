package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage 本地文件系统实现，既可独立使用也可作为远端不可用时的回退
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) *LocalStorage {
	if root == "" {
		root = "static"
	}
	if baseURL == "" {
		baseURL = "/static"
	}
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *LocalStorage) PutObject(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	target := filepath.Join(l.root, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", err
	}
	return objectName, nil
}

func (l *LocalStorage) RemoveObject(_ context.Context, objectName string) error {
	return os.Remove(filepath.Join(l.root, filepath.FromSlash(objectName)))
}

func (l *LocalStorage) PublicURL(objectName string) string {
	return l.baseURL + "/" + strings.TrimPrefix(objectName, "/")
}
