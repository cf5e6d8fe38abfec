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
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/pkg/database"
)

/**
 * @author: campus connect team
 * @date: 2025/6/13 16:40
 * @description: 通知数据访问
 */

type INotificationRepository interface {
	AddNotification(n *model.Notification) error
	// ListForUser 返回发给该用户的通知及其学院内的广播通知
	ListForUser(userId, collegeId string, unreadOnly bool, offset, pageSize int) ([]model.Notification, int64, error)
	MarkRead(notificationId, userId string) error
	MarkAllRead(userId string) error
	CountUnread(userId, collegeId string) (int64, error)
}

type NotificationRepo struct {
	db                database.IDatabase
	notificationModel *model.Notification
}

func NewNotificationRepo(db database.IDatabase) INotificationRepository {
	return &NotificationRepo{
		db:                db,
		notificationModel: &model.Notification{},
	}
}

func (nr *NotificationRepo) AddNotification(n *model.Notification) error {
	return nr.db.Database().Create(n).Error
}

func (nr *NotificationRepo) ListForUser(userId, collegeId string, unreadOnly bool, offset, pageSize int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := nr.db.Database().Model(nr.notificationModel).
		Where("user_id = ? OR (user_id = ? AND college_id = ?)", userId, "", collegeId)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("create_time DESC").Offset(offset).Limit(pageSize).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (nr *NotificationRepo) MarkRead(notificationId, userId string) error {
	return nr.db.Database().Table(nr.notificationModel.TableName()).
		Where("notification_id = ? AND user_id = ?", notificationId, userId).
		Update("is_read", true).Error
}

func (nr *NotificationRepo) MarkAllRead(userId string) error {
	return nr.db.Database().Table(nr.notificationModel.TableName()).
		Where("user_id = ?", userId).
		Update("is_read", true).Error
}

func (nr *NotificationRepo) CountUnread(userId, collegeId string) (int64, error) {
	var count int64
	err := nr.db.Database().Model(nr.notificationModel).
		Where("user_id = ? OR (user_id = ? AND college_id = ?)", userId, "", collegeId).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
