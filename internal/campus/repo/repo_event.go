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

package repo

import (
	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/pkg/database"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/13 16:00
 * @description: 活动数据访问
 */

type IEventRepository interface {
	AddEvent(e *model.Event) error
	// GetByEventId 按 ID 查询不做租户过滤，调用方决定是否放行
	GetByEventId(eventId string) (*model.Event, error)
	ListEvents(actor authz.Actor, category string, offset, pageSize int) ([]model.Event, int64, error)
	UpdateEvent(e *model.Event) error
	DeleteEventCascade(eventId string) error
	SetImageUrl(eventId, imageUrl string) error
	AddParticipation(eventId, userId string) error
	RemoveParticipation(eventId, userId string) error
	HasJoined(eventId, userId string) (bool, error)
	CountParticipants(eventId string) (int64, error)
	ListParticipantIds(eventId string) ([]string, error)
	CountOwnedEvents(userId string) (int64, error)
	CountParticipations(userId string) (int64, error)
	CountBuddies(userId string) (int64, error)
}

type EventRepo struct {
	db         database.IDatabase
	eventModel *model.Event
}

func NewEventRepo(db database.IDatabase) IEventRepository {
	return &EventRepo{
		db:         db,
		eventModel: &model.Event{},
	}
}

func (er *EventRepo) AddEvent(e *model.Event) error {
	return er.db.Database().Create(e).Error
}

func (er *EventRepo) GetByEventId(eventId string) (*model.Event, error) {
	e := &model.Event{}
	if err := er.db.Database().Where("event_id = ?", eventId).First(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// ListEvents 列表查询始终套租户范围
func (er *EventRepo) ListEvents(actor authz.Actor, category string, offset, pageSize int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	db := er.db.Database().Model(er.eventModel).Scopes(authz.TenantScope(actor))
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("start_time ASC").Offset(offset).Limit(pageSize).Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (er *EventRepo) UpdateEvent(e *model.Event) error {
	return er.db.Database().Table(er.eventModel.TableName()).
		Where("event_id = ?", e.EventId).
		Omit("event_id", "owner_id", "college_id", "create_time").
		Updates(e).Error
}

// DeleteEventCascade 先删报名记录再删活动，同一事务
func (er *EventRepo) DeleteEventCascade(eventId string) error {
	return er.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventId).Delete(&model.EventParticipation{}).Error; err != nil {
			return err
		}
		return tx.Where("event_id = ?", eventId).Delete(&model.Event{}).Error
	})
}

func (er *EventRepo) SetImageUrl(eventId, imageUrl string) error {
	return er.db.Database().Table(er.eventModel.TableName()).
		Where("event_id = ?", eventId).
		Update("image_url", imageUrl).Error
}

func (er *EventRepo) AddParticipation(eventId, userId string) error {
	return er.db.Database().Create(&model.EventParticipation{
		EventId: eventId,
		UserId:  userId,
	}).Error
}

func (er *EventRepo) RemoveParticipation(eventId, userId string) error {
	return er.db.Database().
		Where("event_id = ? AND user_id = ?", eventId, userId).
		Delete(&model.EventParticipation{}).Error
}

func (er *EventRepo) HasJoined(eventId, userId string) (bool, error) {
	var count int64
	err := er.db.Database().Model(&model.EventParticipation{}).
		Where("event_id = ? AND user_id = ?", eventId, userId).
		Count(&count).Error
	return count > 0, err
}

func (er *EventRepo) CountParticipants(eventId string) (int64, error) {
	var count int64
	err := er.db.Database().Model(&model.EventParticipation{}).
		Where("event_id = ?", eventId).
		Count(&count).Error
	return count, err
}

func (er *EventRepo) ListParticipantIds(eventId string) ([]string, error) {
	var userIds []string
	err := er.db.Database().Model(&model.EventParticipation{}).
		Where("event_id = ?", eventId).
		Pluck("user_id", &userIds).Error
	return userIds, err
}

func (er *EventRepo) CountOwnedEvents(userId string) (int64, error) {
	var count int64
	err := er.db.Database().Model(er.eventModel).
		Where("owner_id = ?", userId).
		Count(&count).Error
	return count, err
}

func (er *EventRepo) CountParticipations(userId string) (int64, error) {
	var count int64
	err := er.db.Database().Model(&model.EventParticipation{}).
		Where("user_id = ?", userId).
		Count(&count).Error
	return count, err
}

// CountBuddies 与该用户同场活动出现过的不同用户数，不含本人
func (er *EventRepo) CountBuddies(userId string) (int64, error) {
	var count int64
	joined := er.db.Database().Model(&model.EventParticipation{}).
		Select("event_id").
		Where("user_id = ?", userId)
	err := er.db.Database().Model(&model.EventParticipation{}).
		Distinct("user_id").
		Where("event_id IN (?)", joined).
		Where("user_id <> ?", userId).
		Count(&count).Error
	return count, err
}
