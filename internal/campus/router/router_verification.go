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
 * @date: 2025/6/15 10:45
 * @description: 学生认证路由
 */

func (rt *Router) verificationRouter(r fiber.Router, auth fiber.Handler) {
	verificationGroup := r.Group("/verification", auth)
	{
		verificationGroup.Post("/submit", rt.submitVerification)
		verificationGroup.Get("/list", rt.listVerifications)
		verificationGroup.Post("/:requestId/approve", rt.approveVerification)
		verificationGroup.Post("/:requestId/reject", rt.rejectVerification)
	}
}

func (rt *Router) verificationLogic() *logic.VerificationLogic {
	return logic.NewVerificationLogic(rt.Ctx, rt.verificationRepo, rt.userRepo,
		rt.fanout, rt.resolver)
}

func (rt *Router) submitVerification(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	filename, data, err := readUpload(c, "document")
	if err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	request, err := rt.verificationLogic().Submit(actor, filename, data)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, request)
}

func (rt *Router) listVerifications(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}
	offset, pageSize := pagination(c)

	reqs, total, err := rt.verificationLogic().List(actor, c.Query("status"), offset, pageSize)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": reqs, "total": total})
}

func (rt *Router) approveVerification(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.verificationLogic().Approve(actor, c.Params("requestId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) rejectVerification(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.ReviewVerificationReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.verificationLogic().Reject(actor, c.Params("requestId"), req.Comment); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
