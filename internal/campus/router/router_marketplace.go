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
 * @date: 2025/6/15 10:30
 * @description: 二手市场路由
 */

func (rt *Router) marketplaceRouter(r fiber.Router, auth fiber.Handler) {
	itemGroup := r.Group("/marketplace", auth)
	{
		itemGroup.Post("/add", rt.addItem)
		itemGroup.Get("/list", rt.listItems)
		itemGroup.Get("/:itemId", rt.getItem)
		itemGroup.Post("/:itemId/update", rt.updateItem)
		itemGroup.Delete("/:itemId", rt.deleteItem)
		itemGroup.Post("/:itemId/image", rt.uploadItemImage)
		itemGroup.Post("/:itemId/interest", rt.expressInterest)
	}
}

func (rt *Router) marketplaceLogic() *logic.MarketplaceLogic {
	return logic.NewMarketplaceLogic(rt.Ctx, rt.marketplaceRepo, rt.fanout, rt.resolver)
}

func (rt *Router) addItem(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.AddItemReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	item, err := rt.marketplaceLogic().AddItem(actor, &req)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, item)
}

func (rt *Router) listItems(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}
	offset, pageSize := pagination(c)
	includeSold := c.QueryBool("includeSold", false)

	items, total, err := rt.marketplaceLogic().ListItems(actor, c.Query("category"), includeSold, offset, pageSize)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"list": items, "total": total})
}

func (rt *Router) getItem(c *fiber.Ctx) error {
	item, err := rt.marketplaceLogic().GetItem(c.Params("itemId"))
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, item)
}

func (rt *Router) updateItem(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	var req model.UpdateItemReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code,
			http.RequestParameterParsingFailed.Msg, c.Path())
	}

	item, err := rt.marketplaceLogic().UpdateItem(actor, c.Params("itemId"), &req)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, item)
}

func (rt *Router) deleteItem(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.marketplaceLogic().DeleteItem(actor, c.Params("itemId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}

func (rt *Router) uploadItemImage(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	filename, data, err := readUpload(c, "file")
	if err != nil {
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	url, err := rt.marketplaceLogic().UploadItemImage(actor, c.Params("itemId"), filename, data)
	if err != nil {
		return repErr(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"imageUrl": url})
}

func (rt *Router) expressInterest(c *fiber.Ctx) error {
	actor, err := rt.currentActor(c)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	if err := rt.marketplaceLogic().ExpressInterest(actor, c.Params("itemId")); err != nil {
		return repErr(c, err)
	}
	return http.WithRepNotDetail(c)
}
