// Copyright 2025 Campus Connect Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// 存储类型常量
const (
	ProviderMinio = "minio"
	ProviderS3    = "s3"
	ProviderLocal = "local"
)

// Storage 存储配置结构
type Storage struct {
	Provider  string
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string
	Bucket    string
	Region    string
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`

	// LocalRoot 本地回退存储根目录，LocalBaseURL 是它的对外访问前缀
	LocalRoot    string `mapstructure:"localRoot"`
	LocalBaseURL string `mapstructure:"localBaseURL"`
}

// New 根据配置创建存储提供者实例
// Provider 为空时返回 nil（未配置远端存储，调用方自行回退）
func New(s *Storage) (Provider, error) {
	switch s.Provider {
	case "":
		return nil, nil
	case ProviderMinio:
		return newMinio(s)
	case ProviderS3:
		return newS3(s)
	case ProviderLocal:
		return NewLocal(s.LocalRoot, s.LocalBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// getFullPath 拼接 basePath 与对象路径
func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return objectName
	}
	return strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(objectName, "/")
}

// ContentTypeOf 根据扩展名推断 MIME 类型
func ContentTypeOf(name string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}
