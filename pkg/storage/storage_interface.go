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
	"context"
	"io"
)

// Provider 对象存储抽象：put、remove、public_url
// 每个实现都必须是可并发使用的
type Provider interface {
	// PutObject 上传对象并返回最终的对象路径
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)

	// RemoveObject 删除对象
	RemoveObject(ctx context.Context, objectName string) error

	// PublicURL 返回对象的公开访问地址
	PublicURL(objectName string) string
}
