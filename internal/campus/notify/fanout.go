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

package notify

import (
	"errors"

	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/id"
	"github.com/campus-connect/campus/pkg/log"
	"github.com/campus-connect/campus/pkg/metrics"
	"github.com/campus-connect/campus/pkg/ws"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 15:05
 * @description: 通知分发
 */

// Payload 推送给在线连接的消息体
type Payload struct {
	NotificationId string `json:"notificationId"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	RelatedId      string `json:"relatedId"`
}

// Fanout 通知分发器。Emit 必须在主业务写入提交之后调用，
// 落库和在线推送的任何失败都只记日志，绝不影响主流程返回。
type Fanout struct {
	notificationRepo repo.INotificationRepository
	hub              ws.Hub
}

func NewFanout(notificationRepo repo.INotificationRepository, hub ws.Hub) *Fanout {
	return &Fanout{
		notificationRepo: notificationRepo,
		hub:              hub,
	}
}

// Emit 持久化通知并尝试推送给在线连接。
// n.UserId 为空表示学院内广播，否则定向推送。
func (f *Fanout) Emit(n *model.Notification) {
	if n.NotificationId == "" {
		n.NotificationId = id.GetUUID()
	}

	if err := f.notificationRepo.AddNotification(n); err != nil {
		log.Errorw("persist notification failed",
			"type", n.Type, "userId", n.UserId, "error", err)
		metrics.NotificationFailedTotal.Inc()
	} else {
		metrics.NotificationDeliveredTotal.Inc()
	}

	if f.hub == nil {
		return
	}

	payload := Payload{
		NotificationId: n.NotificationId,
		Type:           n.Type,
		Title:          n.Title,
		Body:           n.Body,
		RelatedId:      n.RelatedId,
	}

	var err error
	if n.UserId == "" {
		err = f.hub.BroadcastJSON(payload)
	} else {
		err = f.hub.SendToUserJSON(n.UserId, payload)
	}
	// 目标用户不在线是常态，不算推送失败
	if err != nil && !errors.Is(err, ws.ErrConnNotFound) {
		log.Warnw("push notification failed",
			"type", n.Type, "userId", n.UserId, "error", err)
		metrics.NotificationFailedTotal.Inc()
	}
}
