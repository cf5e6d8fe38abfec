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

package logic

import (
	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/ctx"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 18:20
 * @description: 通知业务逻辑
 */

type NotificationLogic struct {
	ctx              *ctx.Context
	notificationRepo repo.INotificationRepository
}

func NewNotificationLogic(ctx *ctx.Context, notificationRepo repo.INotificationRepository) *NotificationLogic {
	return &NotificationLogic{
		ctx:              ctx,
		notificationRepo: notificationRepo,
	}
}

// List 返回发给当前用户的通知与其学院内的广播
func (nl *NotificationLogic) List(actor authz.Actor, unreadOnly bool, offset, pageSize int) ([]model.Notification, int64, error) {
	return nl.notificationRepo.ListForUser(actor.UserId, actor.CollegeId, unreadOnly, offset, pageSize)
}

func (nl *NotificationLogic) MarkRead(actor authz.Actor, notificationId string) error {
	return nl.notificationRepo.MarkRead(notificationId, actor.UserId)
}

func (nl *NotificationLogic) MarkAllRead(actor authz.Actor) error {
	return nl.notificationRepo.MarkAllRead(actor.UserId)
}

func (nl *NotificationLogic) UnreadCount(actor authz.Actor) (int64, error) {
	return nl.notificationRepo.CountUnread(actor.UserId, actor.CollegeId)
}
