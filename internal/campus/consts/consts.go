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

package consts

/**
 * @author: campus connect team
 * @date: 2025/6/12 21:40
 * @description: 全局常量定义
 */

// 用户角色
const (
	RoleSuperAdmin   = "super_admin"
	RoleCollegeAdmin = "college_admin"
	RoleStudent      = "student"
)

// 认证申请状态
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// 通知类型
const (
	NotificationEventNew            = "event_new"
	NotificationEventCancelled      = "event_cancelled"
	NotificationVerificationResult  = "verification_result"
	NotificationMarketplaceInterest = "marketplace_interest"
)

// Redis key 前缀
const (
	RedisKeyAccessToken  = "campus:token:access:"
	RedisKeyRefreshToken = "campus:token:refresh:"
	RedisKeyUserInfo     = "campus:user:info:"
)
