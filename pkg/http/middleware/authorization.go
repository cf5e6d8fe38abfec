package middleware

import (
	"strings"

	httpx "github.com/campus-connect/campus/pkg/http"
	"github.com/campus-connect/campus/pkg/http/auth/jwt"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: dev.campusconnect@gmail.com
 * @time: 2025/3/3 23:58
 * @file: authorization.go
 * @description: authorization middleware
 */

// Authorization 鉴权中间件
// 校验 Bearer token 并把 user_id 写入 Locals
func Authorization(secretKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return httpx.WithRepErrMsg(c, httpx.TokenBeEmpty.Code, httpx.TokenBeEmpty.Msg, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return httpx.WithRepErrMsg(c, httpx.TokenFormatIncorrect.Code, httpx.TokenFormatIncorrect.Msg, c.Path())
		}

		mc, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			return httpx.WithRepErrMsg(c, httpx.InvalidToken.Code, httpx.Unauthorized.Msg, c.Path())
		}

		c.Locals("user_id", mc.UserId)
		return c.Next()
	}
}
