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
 * @date: 2025/6/13 10:35
 * @description: 活动模型
 */

// Event 校园活动
type Event struct {
	BaseModel
	EventId     string    `gorm:"column:event_id;uniqueIndex;size:64" json:"eventId"`
	Title       string    `gorm:"column:title;size:128" json:"title"`
	Description string    `gorm:"column:description;size:1024" json:"description"`
	Location    string    `gorm:"column:location;size:128" json:"location"`
	Category    string    `gorm:"column:category;size:64" json:"category"`
	StartTime   time.Time `gorm:"column:start_time" json:"startTime"`
	EndTime     time.Time `gorm:"column:end_time" json:"endTime"`
	ImageUrl    string    `gorm:"column:image_url;size:256" json:"imageUrl"`
	OwnerId     string    `gorm:"column:owner_id;index;size:64" json:"ownerId"`
	CollegeId   string    `gorm:"column:college_id;index;size:64" json:"collegeId"`
}

func (e *Event) TableName() string {
	return "t_event"
}

// EventParticipation 活动报名记录
type EventParticipation struct {
	BaseModel
	EventId string `gorm:"column:event_id;index:idx_event_user,unique;size:64" json:"eventId"`
	UserId  string `gorm:"column:user_id;index:idx_event_user,unique;size:64" json:"userId"`
}

func (p *EventParticipation) TableName() string {
	return "t_event_participation"
}

// AddEventReq 创建活动请求
type AddEventReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// UpdateEventReq 更新活动请求，空字段不更新
type UpdateEventReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

// Merge 将非空字段合并到目标活动
func (r *UpdateEventReq) Merge(e *Event) {
	if r.Title != "" {
		e.Title = r.Title
	}
	if r.Description != "" {
		e.Description = r.Description
	}
	if r.Location != "" {
		e.Location = r.Location
	}
	if r.Category != "" {
		e.Category = r.Category
	}
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EndTime = *r.EndTime
	}
}

// EventRep 活动响应，附带报名人数
type EventRep struct {
	*Event
	ParticipantCount int64 `json:"participantCount"`
	Joined           bool  `json:"joined"`
}
