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
	"errors"
	"path/filepath"
	"strings"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/media"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/notify"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/id"
	"github.com/campus-connect/campus/pkg/log"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 17:00
 * @description: 活动业务逻辑
 */

type EventLogic struct {
	ctx       *ctx.Context
	eventRepo repo.IEventRepository
	fanout    *notify.Fanout
	resolver  *media.Resolver
}

func NewEventLogic(ctx *ctx.Context, eventRepo repo.IEventRepository,
	fanout *notify.Fanout, resolver *media.Resolver) *EventLogic {
	return &EventLogic{
		ctx:       ctx,
		eventRepo: eventRepo,
		fanout:    fanout,
		resolver:  resolver,
	}
}

// AddEvent 创建活动，仅学院管理员及以上，提交成功后向学院内广播通知
func (el *EventLogic) AddEvent(actor authz.Actor, req *model.AddEventReq) (*model.Event, error) {
	if err := authz.Authorize(actor, authz.CollegeAdminOrAbove, ""); err != nil {
		return nil, err
	}
	if actor.CollegeId == "" {
		return nil, ErrNoCollege
	}

	event := &model.Event{
		EventId:     id.GetUUID(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		OwnerId:     actor.UserId,
		CollegeId:   actor.CollegeId,
	}
	if err := el.eventRepo.AddEvent(event); err != nil {
		return nil, err
	}

	// 通知在主写入提交之后发出，失败不回传
	el.fanout.Emit(&model.Notification{
		CollegeId: actor.CollegeId,
		Type:      consts.NotificationEventNew,
		Title:     "New event: " + event.Title,
		Body:      event.Description,
		RelatedId: event.EventId,
	})
	return event, nil
}

// GetEvent 按 ID 读取不做租户过滤
func (el *EventLogic) GetEvent(actor authz.Actor, eventId string) (*model.EventRep, error) {
	event, err := el.eventRepo.GetByEventId(eventId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rep := &model.EventRep{Event: event}
	if rep.ParticipantCount, err = el.eventRepo.CountParticipants(eventId); err != nil {
		return nil, err
	}
	if rep.Joined, err = el.eventRepo.HasJoined(eventId, actor.UserId); err != nil {
		return nil, err
	}
	return rep, nil
}

func (el *EventLogic) ListEvents(actor authz.Actor, category string, offset, pageSize int) ([]model.Event, int64, error) {
	return el.eventRepo.ListEvents(actor, category, offset, pageSize)
}

// UpdateEvent 仅所有者或超级管理员可修改，空字段不更新
func (el *EventLogic) UpdateEvent(actor authz.Actor, eventId string, req *model.UpdateEventReq) (*model.Event, error) {
	event, err := el.eventRepo.GetByEventId(eventId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := authz.Authorize(actor, authz.OwnerOrAdmin, event.OwnerId); err != nil {
		return nil, err
	}

	req.Merge(event)
	if err := el.eventRepo.UpdateEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent 连同报名记录一起删除，已报名用户收到取消通知
func (el *EventLogic) DeleteEvent(actor authz.Actor, eventId string) error {
	event, err := el.eventRepo.GetByEventId(eventId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := authz.Authorize(actor, authz.OwnerOrAdmin, event.OwnerId); err != nil {
		return err
	}

	// 报名名单要在级联删除前取出
	participantIds, err := el.eventRepo.ListParticipantIds(eventId)
	if err != nil {
		log.Warnw("failed to list participants before event delete", "eventId", eventId, "error", err)
		participantIds = nil
	}

	if err := el.eventRepo.DeleteEventCascade(eventId); err != nil {
		return err
	}

	for _, userId := range participantIds {
		el.fanout.Emit(&model.Notification{
			UserId:    userId,
			CollegeId: event.CollegeId,
			Type:      consts.NotificationEventCancelled,
			Title:     "Event cancelled: " + event.Title,
			RelatedId: event.EventId,
		})
	}
	return nil
}

// UploadEventImage 上传活动封面
func (el *EventLogic) UploadEventImage(actor authz.Actor, eventId, filename string, data []byte) (string, error) {
	event, err := el.eventRepo.GetByEventId(eventId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if err := authz.Authorize(actor, authz.OwnerOrAdmin, event.OwnerId); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExts[ext]; !ok {
		return "", ErrInvalidFileType
	}

	url, err := el.resolver.Resolve(el.ctx.GetCtx(), media.KindEventImage,
		media.Keys{EventId: eventId}, filename, data)
	if err != nil {
		return "", err
	}
	if err := el.eventRepo.SetImageUrl(eventId, url); err != nil {
		return "", err
	}
	return url, nil
}

func (el *EventLogic) JoinEvent(actor authz.Actor, eventId string) error {
	if _, err := el.eventRepo.GetByEventId(eventId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	joined, err := el.eventRepo.HasJoined(eventId, actor.UserId)
	if err != nil {
		return err
	}
	if joined {
		return ErrAlreadyJoined
	}
	return el.eventRepo.AddParticipation(eventId, actor.UserId)
}

func (el *EventLogic) LeaveEvent(actor authz.Actor, eventId string) error {
	return el.eventRepo.RemoveParticipation(eventId, actor.UserId)
}
