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

package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/campus-connect/campus/pkg/id"
	"github.com/campus-connect/campus/pkg/log"
	"github.com/campus-connect/campus/pkg/metrics"
	"github.com/campus-connect/campus/pkg/storage"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 11:20
 * @description: 媒体文件路径解析与上传
 */

// ErrUploadFailed 上传失败（含本地回退也失败）
var ErrUploadFailed = errors.New("media upload failed")

// Kind 媒体文件种类，决定对象路径模板
type Kind string

const (
	KindProfileImage         Kind = "profile_image"
	KindVerificationDocument Kind = "verification_document"
	KindMarketplaceItem      Kind = "marketplace_item"
	KindEventImage           Kind = "event_image"
)

// Keys 路径模板所需的业务主键，按 Kind 取用
type Keys struct {
	UserId  string
	OwnerId string
	ItemId  string
	EventId string
}

// Resolver 把上传内容落到远端对象存储，远端不可用时回退本地文件系统
type Resolver struct {
	remote storage.Provider
	local  *storage.LocalStorage
}

// NewResolver 创建解析器，remote 可以为 nil 表示未配置远端存储
func NewResolver(remote storage.Provider, local *storage.LocalStorage) *Resolver {
	if local == nil {
		local = storage.NewLocal("", "")
	}
	return &Resolver{remote: remote, local: local}
}

// objectPath 按种类生成确定性对象路径
// 认证材料每次生成新文件名，其余种类固定文件名、重复上传即覆盖
func (r *Resolver) objectPath(kind Kind, keys Keys, ext string) (string, error) {
	switch kind {
	case KindProfileImage:
		if keys.UserId == "" {
			return "", fmt.Errorf("media: user id required for %s", kind)
		}
		return fmt.Sprintf("users/%s/profile_picture/profile_picture%s", keys.UserId, ext), nil
	case KindVerificationDocument:
		if keys.UserId == "" {
			return "", fmt.Errorf("media: user id required for %s", kind)
		}
		return fmt.Sprintf("users/%s/verification/id_card_%s%s", keys.UserId, id.GetUUIDWithoutDashes(), ext), nil
	case KindMarketplaceItem:
		if keys.OwnerId == "" || keys.ItemId == "" {
			return "", fmt.Errorf("media: owner id and item id required for %s", kind)
		}
		return fmt.Sprintf("marketplace/%s/items/%s/item_image%s", keys.OwnerId, keys.ItemId, ext), nil
	case KindEventImage:
		if keys.EventId == "" {
			return "", fmt.Errorf("media: event id required for %s", kind)
		}
		return fmt.Sprintf("events/%s/event_image%s", keys.EventId, ext), nil
	default:
		return "", fmt.Errorf("media: unknown kind %q", kind)
	}
}

// Resolve 上传文件并返回可持久化到资源上的 URL。
// 扩展名白名单由调用方在入口校验，这里不重复校验。
// 远端上传失败时回退本地；认证材料连本地都失败才返回 ErrUploadFailed，
// 图片类即便写入失败也返回确定性本地 URL，错误只记日志。
func (r *Resolver) Resolve(ctx context.Context, kind Kind, keys Keys, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectName, err := r.objectPath(kind, keys, ext)
	if err != nil {
		return "", err
	}
	contentType := storage.ContentTypeOf(filename)

	if r.remote != nil {
		// 头像固定路径，先清掉旧对象，失败忽略（可能本来就不存在）
		if kind == KindProfileImage {
			_ = r.remote.RemoveObject(ctx, objectName)
		}
		if _, err := r.remote.PutObject(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err == nil {
			return r.remote.PublicURL(objectName), nil
		} else {
			log.Warnw("remote storage upload failed, falling back to local",
				"kind", kind, "object", objectName, "error", err)
			metrics.StorageFallbackTotal.Inc()
		}
	}

	return r.resolveLocal(ctx, kind, objectName, data)
}

func (r *Resolver) resolveLocal(ctx context.Context, kind Kind, objectName string, data []byte) (string, error) {
	var reader io.Reader = bytes.NewReader(data)
	if _, err := r.local.PutObject(ctx, objectName, reader, int64(len(data)), ""); err != nil {
		if kind == KindVerificationDocument {
			log.Errorw("local storage write failed for verification document",
				"object", objectName, "error", err)
			return "", ErrUploadFailed
		}
		// 图片类资源写失败不阻断主流程
		log.Errorw("local storage write failed", "kind", kind, "object", objectName, "error", err)
	}
	return r.local.PublicURL(objectName), nil
}
