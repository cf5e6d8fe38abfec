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
 * @date: 2025/6/15 10:00
 * @description: 学院路由
 */

func (rt *Router) collegeRouter(r fiber.Router, auth fiber.Handler) {
	collegeGroup := r.Group("/college", auth)
	{
		collegeGroup.Post("/add", rt.addCollege)
		collegeGroup.Get("/list", rt.listColleges)
		collegeGroup.Get("/:collegeId", rt.getCollege)
	}
}

func (rt *Router) collegeLogic() *logic.CollegeLogic {
	return logic.NewCollegeLogic(rt.Ctx, rt.collegeRepo)
}

func (rt *Router) addCollege(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.AddCollegeReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	college, err := rt.collegeLogic().AddCollege(actor, &req)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, college)
}

func (rt *Router) listColleges(c *fiber.Ctx) error {
	offset, pageSize := pagination(c)

	colleges, total, err := rt.collegeLogic().ListColleges(offset, pageSize)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": colleges, "total": total})
}

func (rt *Router) getCollege(c *fiber.Ctx) error {
	college, err := rt.collegeLogic().GetCollege(c.Params("collegeId"))
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, college)
}
