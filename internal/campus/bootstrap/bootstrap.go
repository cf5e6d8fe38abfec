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

package bootstrap

import (
	"context"
	"fmt"

	"github.com/campus-connect/campus/internal/campus/conf"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/router"
	"github.com/campus-connect/campus/pkg/cache"
	"github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/database"
	httpx "github.com/campus-connect/campus/pkg/http"
	"github.com/campus-connect/campus/pkg/log"
	"github.com/campus-connect/campus/pkg/storage"
)

/**
 * @author: campus connect team
 * @date: 2025/6/15 11:30
 * @description: 服务装配与启动
 */

// Run 装配依赖并启动 http 服务，阻塞到收到退出信号
func Run(confPath string) error {
	cfg, err := conf.Load(confPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.MustInit(&cfg.Log)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.Database().AutoMigrate(
		&model.User{},
		&model.College{},
		&model.Event{},
		&model.EventParticipation{},
		&model.MarketplaceItem{},
		&model.VerificationRequest{},
		&model.Notification{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	provider, err := storage.New(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if provider == nil {
		log.Info("remote storage not configured, uploads go to local filesystem")
	}

	appCtx := ctx.NewContext(context.Background(), db.Database(), rdb, log.GetLogger())

	rt := router.NewRouter(&cfg.Http, appCtx, db, cache.NewRedisCache(rdb), provider)
	wait := httpx.NewHttp(cfg.Http, rt.Router())
	wait()
	return nil
}
