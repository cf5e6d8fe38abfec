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
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/pkg/http"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: campus connect team
 * @date: 2025/6/15 10:15
 * @description: 活动路由
 */

func (rt *Router) eventRouter(r fiber.Router, auth fiber.Handler) {
	eventGroup := r.Group("/event", auth)
	{
		eventGroup.Post("/add", rt.addEvent)
		eventGroup.Get("/list", rt.listEvents)
		eventGroup.Get("/:eventId", rt.getEvent)
		eventGroup.Post("/:eventId/update", rt.updateEvent)
		eventGroup.Delete("/:eventId", rt.deleteEvent)
		eventGroup.Post("/:eventId/image", rt.uploadEventImage)
		eventGroup.Post("/:eventId/join", rt.joinEvent)
		eventGroup.Post("/:eventId/leave", rt.leaveEvent)
	}
}

func (rt *Router) eventLogic() *logic.EventLogic {
	return logic.NewEventLogic(rt.Ctx, rt.eventRepo, rt.fanout, rt.resolver)
}

func (rt *Router) addEvent(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.AddEventReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	event, err := rt.eventLogic().AddEvent(actor, &req)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, event)
}

func (rt *Router) listEvents(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}
	offset, pageSize := pagination(c)

	events, total, err := rt.eventLogic().ListEvents(actor, c.Query("category"), offset, pageSize)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": events, "total": total})
}

func (rt *Router) getEvent(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	rep, err := rt.eventLogic().GetEvent(actor, c.Params("eventId"))
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, rep)
}

func (rt *Router) updateEvent(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.UpdateEventReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	event, err := rt.eventLogic().UpdateEvent(actor, c.Params("eventId"), &req)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, event)
}

func (rt *Router) deleteEvent(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.eventLogic().DeleteEvent(actor, c.Params("eventId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) uploadEventImage(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	filename, data, err := readUpload(c, "file")
	if err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	url, err := rt.eventLogic().UploadEventImage(actor, c.Params("eventId"), filename, data)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"imageUrl": url})
}

func (rt *Router) joinEvent(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.eventLogic().JoinEvent(actor, c.Params("eventId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) leaveEvent(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.eventLogic().LeaveEvent(actor, c.Params("eventId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
