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
	"github.com/campus-connect/campus/internal/campus/consts"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/13 14:15
 * @description: 租户查询范围
 */

// TenantScope 按操作者所属学院过滤列表查询。
// 超级管理员不过滤；其余角色只能看到本学院的数据。
func TenantScope(actor Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.Role == consts.RoleSuperAdmin {
			return db
		}
		return db.Where("college_id = ?", actor.CollegeId)
	}
}
