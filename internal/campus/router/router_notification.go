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

package router

import (
	"github.com/campus-connect/campus/internal/campus/logic"
	"github.com/campus-connect/campus/pkg/http"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: campus connect team
 * @date: 2025/6/15 11:00
 * @description: 通知路由
 */

func (rt *Router) notificationRouter(r fiber.Router, auth fiber.Handler) {
	notificationGroup := r.Group("/notification", auth)
	{
		notificationGroup.Get("/list", rt.listNotifications)
		notificationGroup.Get("/unreadCount", rt.unreadCount)
		notificationGroup.Post("/:notificationId/read", rt.markRead)
		notificationGroup.Post("/readAll", rt.markAllRead)
	}
}

func (rt *Router) notificationLogic() *logic.NotificationLogic {
	return logic.NewNotificationLogic(rt.Ctx, rt.notificationRepo)
}

func (rt *Router) listNotifications(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}
	offset, pageSize := pagination(c)
	unreadOnly := c.QueryBool("unreadOnly", false)

	notifications, total, err := rt.notificationLogic().List(actor, unreadOnly, offset, pageSize)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": notifications, "total": total})
}

func (rt *Router) unreadCount(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	count, err := rt.notificationLogic().UnreadCount(actor)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"count": count})
}

func (rt *Router) markRead(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.notificationLogic().MarkRead(actor, c.Params("notificationId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) markAllRead(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.notificationLogic().MarkAllRead(actor); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
