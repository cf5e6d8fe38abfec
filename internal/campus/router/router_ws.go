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
	"github.com/campus-connect/campus/pkg/http/auth/jwt"
	"github.com/campus-connect/campus/pkg/log"
	"github.com/campus-connect/campus/pkg/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

/**
 * @author: campus connect team
 * @date: 2025/6/15 11:10
 * @description: WebSocket 路由，实时通知推送通道
 */

func (rt *Router) wsRouter(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		// 浏览器 WebSocket 不带自定义 header，token 走 query
		mc, err := jwt.ParseToken(c.Query("token"), rt.Http.Auth.SecretKey)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("user_id", mc.UserId)
		return c.Next()
	})

	app.Get("/ws", websocket.New(func(wc *websocket.Conn) {
		userId, _ := wc.Locals("user_id").(string)
		conn := ws.NewConn(wc, userId)
		rt.hub.Register(conn)
		defer rt.hub.Unregister(conn)

		log.Debugf("websocket connected: user=%s conn=%s", userId, conn.ID())

		// 推送是单向的，读循环只负责感知断开
		for {
			if _, _, err := wc.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
