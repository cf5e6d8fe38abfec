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
 * @date: 2025/6/13 10:25
 * @description: 用户模型
 */

// User 用户
type User struct {
	BaseModel
	UserId     string `gorm:"column:user_id;uniqueIndex;size:64" json:"userId"`
	Email      string `gorm:"column:email;uniqueIndex;size:128" json:"email"`
	Password   string `gorm:"column:password;size:128" json:"-"`
	Name       string `gorm:"column:name;size:64" json:"name"`
	Role       string `gorm:"column:role;size:32;default:student" json:"role"`
	CollegeId  string `gorm:"column:college_id;index;size:64" json:"collegeId"`
	// CollegeName 冗余自学院表，加入或换院时一并覆盖
	CollegeName string `gorm:"column:college_name;size:128" json:"collegeName"`
	IsVerified bool   `gorm:"column:is_verified;default:false" json:"isVerified"`
	Major      string `gorm:"column:major;size:64" json:"major"`
	Year       int    `gorm:"column:year" json:"year"`
	Bio        string `gorm:"column:bio;size:512" json:"bio"`
	PhotoUrl   string `gorm:"column:photo_url;size:256" json:"photoUrl"`
	Interests  string `gorm:"column:interests;size:512" json:"interests"`
}

func (u *User) TableName() string {
	return "t_user"
}

// RegisterReq 注册请求，邀请码可选，提供则注册即入院
type RegisterReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRep 登录响应
type LoginRep struct {
	UserId       string `json:"userId"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	CollegeId    string `json:"collegeId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenReq 刷新令牌请求
type RefreshTokenReq struct {
	RefreshToken string `json:"refreshToken"`
}

// JoinCollegeReq 加入学院请求
type JoinCollegeReq struct {
	InviteCode string `json:"inviteCode"`
}

// UpdateProfileReq 更新个人资料，空字段不更新
type UpdateProfileReq struct {
	Name      string `json:"name"`
	Major     string `json:"major"`
	Year      int    `json:"year"`
	Bio       string `json:"bio"`
	Interests string `json:"interests"`
}

// UserProfileRep 个人主页响应
type UserProfileRep struct {
	*User
	EventCount       int64 `json:"eventCount"`
	ParticipateCount int64 `json:"participateCount"`
	ItemCount        int64 `json:"itemCount"`
	BuddyCount       int64 `json:"buddyCount"`
}
