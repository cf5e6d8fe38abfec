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

package model

/**
 * @author: campus connect team
 * @date: 2025/6/13 10:30
 * @description: 学院模型
 */

// College 学院（租户）
type College struct {
	BaseModel
	CollegeId   string `gorm:"column:college_id;uniqueIndex;size:64" json:"collegeId"`
	Name        string `gorm:"column:name;size:128" json:"name"`
	InviteCode  string `gorm:"column:invite_code;uniqueIndex;size:32" json:"inviteCode"`
	Description string `gorm:"column:description;size:512" json:"description"`
	Location    string `gorm:"column:location;size:128" json:"location"`
}

func (c *College) TableName() string {
	return "t_college"
}

// AddCollegeReq 创建学院请求
type AddCollegeReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}
