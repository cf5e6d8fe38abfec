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

package logic

import "errors"

/**
 * @author: campus connect team
 * @date: 2025/6/14 16:00
 * @description: 业务层错误定义
 */

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrEmailExists               = errors.New("email already registered")
	ErrIncorrectPassword         = errors.New("incorrect password")
	ErrInvalidInviteCode         = errors.New("invalid invite code")
	ErrCollegeExists             = errors.New("college already exists")
	ErrNoCollege                 = errors.New("user has not joined a college")
	ErrPendingVerificationExists = errors.New("pending verification request already exists")
	ErrInvalidFileType           = errors.New("file type not allowed")
	ErrAlreadyJoined             = errors.New("already joined this event")
	ErrInvalidToken              = errors.New("invalid refresh token")
)

// imageExts 图片类上传允许的扩展名
var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// documentExts 认证材料允许的扩展名
var documentExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".pdf":  {},
}
