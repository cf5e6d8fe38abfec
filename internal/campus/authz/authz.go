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

package authz

import (
	"errors"

	"github.com/campus-connect/campus/internal/campus/consts"
)

/**
 * @author: campus connect team
 * @date: 2025/6/13 14:10
 * @description: 权限判定
 */

// ErrPermissionDenied 权限不足
var ErrPermissionDenied = errors.New("permission denied")

// Actor 当前操作者
type Actor struct {
	UserId    string
	Role      string
	CollegeId string
}

// Capability 操作所需的权限等级
type Capability int

const (
	// AnyAuthenticated 任意已登录用户
	AnyAuthenticated Capability = iota
	// CollegeAdminOrAbove 学院管理员及以上
	CollegeAdminOrAbove
	// OwnerOrAdmin 资源所有者本人，或超级管理员
	OwnerOrAdmin
)

// roleRanks 角色等级，数值越大权限越高
var roleRanks = map[string]int{
	consts.RoleStudent:      1,
	consts.RoleCollegeAdmin: 2,
	consts.RoleSuperAdmin:   3,
}

// RoleRank 返回角色等级，未知角色为 0
func RoleRank(role string) int {
	return roleRanks[role]
}

// Authorize 按固定顺序判定操作权限：
// 超级管理员直接放行；OwnerOrAdmin 只认资源所有者本人，学院管理员不例外；
// 角色判定不校验操作者与资源是否同一学院，租户边界由查询范围约束。
func Authorize(actor Actor, cap Capability, ownerId string) error {
	if actor.Role == consts.RoleSuperAdmin {
		return nil
	}

	switch cap {
	case AnyAuthenticated:
		return nil
	case OwnerOrAdmin:
		if ownerId != "" && actor.UserId == ownerId {
			return nil
		}
	case CollegeAdminOrAbove:
		if actor.Role == consts.RoleCollegeAdmin {
			return nil
		}
	}
	return ErrPermissionDenied
}
