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

import "time"

/**
 * @author: campus connect team
 * @date: 2025/6/13 10:45
 * @description: 学生认证模型
 */

// VerificationRequest 学生身份认证申请
type VerificationRequest struct {
	BaseModel
	RequestId   string     `gorm:"column:request_id;uniqueIndex;size:64" json:"requestId"`
	UserId      string     `gorm:"column:user_id;index;size:64" json:"userId"`
	CollegeId   string     `gorm:"column:college_id;index;size:64" json:"collegeId"`
	DocumentUrl string     `gorm:"column:document_url;size:256" json:"documentUrl"`
	Status      string     `gorm:"column:status;size:16;default:pending" json:"status"`
	Comment     string     `gorm:"column:comment;size:512" json:"comment"`
	ReviewedBy  string     `gorm:"column:reviewed_by;size:64" json:"reviewedBy"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewedAt"`
}

func (v *VerificationRequest) TableName() string {
	return "t_verification_request"
}

// ReviewVerificationReq 审核请求
type ReviewVerificationReq struct {
	Comment string `json:"comment"`
}

// VerificationRep 认证申请响应，附带申请人姓名
type VerificationRep struct {
	*VerificationRequest
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
