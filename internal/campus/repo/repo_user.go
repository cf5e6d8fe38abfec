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

package repo

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/pkg/cache"
	"github.com/campus-connect/campus/pkg/database"
	"gorm.io/gorm"
)

// userInfoTTL 用户信息缓存时长
const userInfoTTL = 30 * time.Minute

/**
 * @author: campus connect team
 * @date: 2025/6/13 15:30
 * @description: 用户数据访问
 */

type IUserRepository interface {
	AddUser(u *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByUserId(userId string) (*model.User, error)
	UpdateProfile(userId string, u *model.User) error
	SetCollege(userId, collegeId, collegeName string) error
	SetRole(userId, role string) error
	SetVerified(userId string, verified bool) error
	SetPhotoUrl(userId, photoUrl string) error
	DeleteUserCascade(userId string) error
	SetToken(userId, aToken, rToken string, accessExpire, refreshExpire time.Duration) error
	GetRefreshToken(userId string) (string, error)
	DelToken(userId string) error
}

type UserRepo struct {
	db        database.IDatabase
	cache     cache.ICache
	userModel *model.User
}

func NewUserRepo(db database.IDatabase, cache cache.ICache) IUserRepository {
	return &UserRepo{
		db:        db,
		cache:     cache,
		userModel: &model.User{},
	}
}

func (ur *UserRepo) AddUser(u *model.User) error {
	return ur.db.Database().Create(u).Error
}

func (ur *UserRepo) GetByEmail(email string) (*model.User, error) {
	u := &model.User{}
	if err := ur.db.Database().Where("email = ?", email).First(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetByUserId 鉴权路径每个请求都会走到，优先读缓存
func (ur *UserRepo) GetByUserId(userId string) (*model.User, error) {
	key := consts.RedisKeyUserInfo + userId
	if ur.cache != nil {
		if cached, err := ur.cache.Get(context.Background(), key); err == nil && cached != "" {
			u := &model.User{}
			if err := sonic.UnmarshalString(cached, u); err == nil {
				return u, nil
			}
		}
	}

	u := &model.User{}
	if err := ur.db.Database().Where("user_id = ?", userId).First(u).Error; err != nil {
		return nil, err
	}
	if ur.cache != nil {
		if s, err := sonic.MarshalString(u); err == nil {
			_ = ur.cache.Set(context.Background(), key, s, userInfoTTL)
		}
	}
	return u, nil
}

// invalidate 用户数据变更后清缓存
func (ur *UserRepo) invalidate(userId string) {
	if ur.cache != nil {
		_ = ur.cache.Del(context.Background(), consts.RedisKeyUserInfo+userId)
	}
}

// UpdateProfile 更新个人资料（user_id、email、password、role 不允许改）
func (ur *UserRepo) UpdateProfile(userId string, u *model.User) error {
	defer ur.invalidate(userId)
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Omit("user_id", "email", "password", "role", "college_id", "college_name", "create_time").
		Updates(u).Error
}

// SetCollege 重复加入直接覆盖学院与冗余院名
func (ur *UserRepo) SetCollege(userId, collegeId, collegeName string) error {
	defer ur.invalidate(userId)
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Updates(map[string]any{
			"college_id":   collegeId,
			"college_name": collegeName,
		}).Error
}

func (ur *UserRepo) SetRole(userId, role string) error {
	defer ur.invalidate(userId)
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("role", role).Error
}

func (ur *UserRepo) SetVerified(userId string, verified bool) error {
	defer ur.invalidate(userId)
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("is_verified", verified).Error
}

func (ur *UserRepo) SetPhotoUrl(userId, photoUrl string) error {
	defer ur.invalidate(userId)
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("photo_url", photoUrl).Error
}

// DeleteUserCascade 删除用户及其名下所有数据，同一事务内完成
func (ur *UserRepo) DeleteUserCascade(userId string) error {
	defer ur.invalidate(userId)
	return ur.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userId).Delete(&model.EventParticipation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", userId).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", userId).Delete(&model.MarketplaceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userId).Delete(&model.VerificationRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userId).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userId).Delete(&model.User{}).Error
	})
}

// SetToken 过期时间与 jwt 一致，单位分钟
func (ur *UserRepo) SetToken(userId, aToken, rToken string, accessExpire, refreshExpire time.Duration) error {
	ctx := context.Background()
	if err := ur.cache.Set(ctx, consts.RedisKeyAccessToken+userId, aToken, accessExpire*time.Minute); err != nil {
		return err
	}
	return ur.cache.Set(ctx, consts.RedisKeyRefreshToken+userId, rToken, refreshExpire*time.Minute)
}

func (ur *UserRepo) GetRefreshToken(userId string) (string, error) {
	return ur.cache.Get(context.Background(), consts.RedisKeyRefreshToken+userId)
}

func (ur *UserRepo) DelToken(userId string) error {
	return ur.cache.Del(context.Background(),
		consts.RedisKeyAccessToken+userId,
		consts.RedisKeyRefreshToken+userId)
}
