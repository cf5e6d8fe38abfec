package ctx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/**
 * @author: dev.campusconnect@gmail.com
 * @time: 2025/3/2 22:03
 * @file: ctx.go
 * @description: Global context
 */

type Context struct {
	DBIns    *gorm.DB
	RedisIns *redis.Client
	Ctx      context.Context
	Log      *zap.SugaredLogger
}

func NewContext(ctx context.Context, db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *Context {
	return &Context{
		DBIns:    db,
		RedisIns: rdb,
		Ctx:      ctx,
		Log:      log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) SetDBIns(db *gorm.DB) {
	c.DBIns = db
}

func (c *Context) GetDBIns() *gorm.DB {
	return c.DBIns
}

func (c *Context) SetRedisIns(rdb *redis.Client) {
	c.RedisIns = rdb
}

func (c *Context) GetRedis() *redis.Client {
	return c.RedisIns
}
