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
 * @date: 2025/6/15 09:45
 * @description: 用户路由
 */

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/user")
	{
		userGroup.Post("/register", rt.register)
		userGroup.Post("/login", rt.login)
		userGroup.Post("/refresh", rt.refresh)

		userGroup.Post("/logout", auth, rt.logout)
		userGroup.Get("/me", auth, rt.me)
		userGroup.Post("/profile", auth, rt.updateProfile)
		userGroup.Post("/photo", auth, rt.uploadProfilePhoto)
		userGroup.Post("/joinCollege", auth, rt.joinCollege)
		userGroup.Post("/assignRole", auth, rt.assignRole)
		userGroup.Delete("/:userId", auth, rt.deleteUser)
	}
}

func (rt *Router) userLogic() *logic.UserLogic {
	return logic.NewUserLogic(rt.Ctx, rt.userRepo, rt.collegeRepo,
		rt.eventRepo, rt.marketplaceRepo, rt.resolver)
}

func (rt *Router) register(c *fiber.Ctx) error {
	var register model.RegisterReq
	if err := c.BodyParser(&register); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}
	if register.Email == "" || register.Password == "" {
		return http.WithRepErrMsg(c, http.UsernameArePasswordIsRequired.Code,
			http.UsernameArePasswordIsRequired.Msg, c.Path())
	}

	if err := rt.userLogic().Register(&register); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) login(c *fiber.Ctx) error {
	var login model.LoginReq
	if err := c.BodyParser(&login); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	rep, err := rt.userLogic().Login(&login, rt.Http.Auth)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, rep)
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	userId := c.Query("userId")
	var req model.RefreshTokenReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	token, err := rt.userLogic().RefreshToken(userId, req.RefreshToken, rt.Http.Auth)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, token)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.userLogic().Logout(actor.UserId); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) me(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	rep, err := rt.userLogic().Me(actor.UserId)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, rep)
}

func (rt *Router) updateProfile(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.userLogic().UpdateProfile(actor.UserId, &req); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) uploadProfilePhoto(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	filename, data, err := readUpload(c, "file")
	if err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	url, err := rt.userLogic().UploadProfilePhoto(actor.UserId, filename, data)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"photoUrl": url})
}

func (rt *Router) joinCollege(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.JoinCollegeReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	college, err := rt.userLogic().JoinCollege(actor.UserId, req.InviteCode)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, college)
}

func (rt *Router) assignRole(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req struct {
		UserId string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.userLogic().AssignRole(actor, req.UserId, req.Role); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) deleteUser(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.userLogic().DeleteUser(actor, c.Params("userId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
