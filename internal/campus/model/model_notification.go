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
 * @date: 2025/6/13 10:50
 * @description: 通知模型
 */

// Notification 站内通知，UserId 为空表示学院内广播
type Notification struct {
	BaseModel
	NotificationId string `gorm:"column:notification_id;uniqueIndex;size:64" json:"notificationId"`
	UserId         string `gorm:"column:user_id;index;size:64" json:"userId"`
	CollegeId      string `gorm:"column:college_id;index;size:64" json:"collegeId"`
	Type           string `gorm:"column:type;size:32" json:"type"`
	Title          string `gorm:"column:title;size:128" json:"title"`
	Body           string `gorm:"column:body;size:512" json:"body"`
	RelatedId      string `gorm:"column:related_id;size:64" json:"relatedId"`
	IsRead         bool   `gorm:"column:is_read;default:false" json:"isRead"`
}

func (n *Notification) TableName() string {
	return "t_notification"
}
