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
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/logic"
	"github.com/campus-connect/campus/internal/campus/media"
	"github.com/campus-connect/campus/internal/campus/notify"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/cache"
	"github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/database"
	httpx "github.com/campus-connect/campus/pkg/http"
	"github.com/campus-connect/campus/pkg/http/middleware"
	"github.com/campus-connect/campus/pkg/log"
	"github.com/campus-connect/campus/pkg/metrics"
	"github.com/campus-connect/campus/pkg/storage"
	"github.com/campus-connect/campus/pkg/ws"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/15 09:30
 * @description: 路由注册
 */

type Router struct {
	Http *httpx.Http
	Ctx  *ctx.Context

	hub      ws.Hub
	resolver *media.Resolver
	fanout   *notify.Fanout

	userRepo         repo.IUserRepository
	collegeRepo      repo.ICollegeRepository
	eventRepo        repo.IEventRepository
	marketplaceRepo  repo.IMarketplaceRepository
	verificationRepo repo.IVerificationRepository
	notificationRepo repo.INotificationRepository
}

func NewRouter(httpConf *httpx.Http, appCtx *ctx.Context, db database.IDatabase,
	cc cache.ICache, provider storage.Provider) *Router {

	hub := ws.NewHub()
	local := storage.NewLocal(httpConf.StaticRoot, "/static")
	notificationRepo := repo.NewNotificationRepo(db)

	return &Router{
		Http:             httpConf,
		Ctx:              appCtx,
		hub:              hub,
		resolver:         media.NewResolver(provider, local),
		fanout:           notify.NewFanout(notificationRepo, hub),
		userRepo:         repo.NewUserRepo(db, cc),
		collegeRepo:      repo.NewCollegeRepo(db),
		eventRepo:        repo.NewEventRepo(db),
		marketplaceRepo:  repo.NewMarketplaceRepo(db),
		verificationRepo: repo.NewVerificationRepo(db),
		notificationRepo: notificationRepo,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(rt.observe)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// 本地回退存储的静态文件
	staticRoot := rt.Http.StaticRoot
	if staticRoot == "" {
		staticRoot = "static"
	}
	app.Static("/static", staticRoot)

	rt.wsRouter(app)

	auth := middleware.Authorization(rt.Http.Auth.SecretKey)
	api := app.Group(rt.Http.ContextPath)
	{
		rt.userRouter(api, auth)
		rt.collegeRouter(api, auth)
		rt.eventRouter(api, auth)
		rt.marketplaceRouter(api, auth)
		rt.verificationRouter(api, auth)
		rt.notificationRouter(api, auth)
	}

	return app
}

// observe 访问日志与请求计数
func (rt *Router) observe(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	metrics.HTTPRequestTotal.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()

	if rt.Http.AccessLog {
		log.Infow("access",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"cost", time.Since(start).String(),
			"ip", c.IP())
	}
	return err
}

// currentActor 从鉴权中间件写入的 user_id 还原操作者
func (rt *Router) currentActor(c *fiber.Ctx) (authz.Actor, error) {
	userId, _ := c.Locals("user_id").(string)
	if userId == "" {
		return authz.Actor{}, errors.New("missing user_id in context")
	}

	user, err := rt.userRepo.GetByUserId(userId)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.Actor{
		UserId:    user.UserId,
		Role:      user.Role,
		CollegeId: user.CollegeId,
	}, nil
}

// repErr 把业务错误映射到统一错误码
func repErr(c *fiber.Ctx, err error) error {
	var rep *httpx.Response
	switch {
	case errors.Is(err, logic.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		rep = httpx.NotFound
	case errors.Is(err, authz.ErrPermissionDenied):
		rep = httpx.PermissionDenied
	case errors.Is(err, logic.ErrEmailExists):
		rep = httpx.UserAlreadyExist
	case errors.Is(err, logic.ErrIncorrectPassword):
		rep = httpx.UserIncorrectPassword
	case errors.Is(err, logic.ErrInvalidInviteCode):
		rep = httpx.InvalidInviteCode
	case errors.Is(err, logic.ErrCollegeExists):
		rep = httpx.CollegeAlreadyExist
	case errors.Is(err, logic.ErrPendingVerificationExists):
		rep = httpx.PendingVerificationConflict
	case errors.Is(err, logic.ErrInvalidFileType):
		rep = httpx.InvalidFileType
	case errors.Is(err, media.ErrUploadFailed):
		rep = httpx.UploadFailed
	case errors.Is(err, logic.ErrNoCollege):
		rep = httpx.Forbidden
	case errors.Is(err, logic.ErrAlreadyJoined):
		rep = httpx.BadRequest
	case errors.Is(err, logic.ErrInvalidToken):
		rep = httpx.InvalidToken
	default:
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}
	return httpx.WithRepErrMsg(c, rep.Code, rep.Msg, c.Path())
}

// pagination 解析 page/pageSize，返回 offset 和 pageSize
func pagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("pageSize", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}

// readUpload 读取 multipart 文件内容
func readUpload(c *fiber.Ctx, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
