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

package logic

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/media"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/http"
	"github.com/campus-connect/campus/pkg/http/auth/jwt"
	"github.com/campus-connect/campus/pkg/id"
	"github.com/campus-connect/campus/pkg/log"
	"github.com/campus-connect/campus/pkg/safe"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 16:10
 * @description: 用户业务逻辑
 */

type UserLogic struct {
	ctx             *ctx.Context
	userRepo        repo.IUserRepository
	collegeRepo     repo.ICollegeRepository
	eventRepo       repo.IEventRepository
	marketplaceRepo repo.IMarketplaceRepository
	resolver        *media.Resolver
}

func NewUserLogic(ctx *ctx.Context, userRepo repo.IUserRepository, collegeRepo repo.ICollegeRepository,
	eventRepo repo.IEventRepository, marketplaceRepo repo.IMarketplaceRepository, resolver *media.Resolver) *UserLogic {
	return &UserLogic{
		ctx:             ctx,
		userRepo:        userRepo,
		collegeRepo:     collegeRepo,
		eventRepo:       eventRepo,
		marketplaceRepo: marketplaceRepo,
		resolver:        resolver,
	}
}

// Register 带邀请码注册则创建时即归入对应学院
func (ul *UserLogic) Register(register *model.RegisterReq) error {
	if _, err := ul.userRepo.GetByEmail(register.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var collegeId, collegeName string
	if register.InviteCode != "" {
		college, err := ul.collegeRepo.GetByInviteCode(register.InviteCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidInviteCode
			}
			return err
		}
		collegeId = college.CollegeId
		collegeName = college.Name
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(register.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return ul.userRepo.AddUser(&model.User{
		UserId:      id.GetUUID(),
		Email:       register.Email,
		Password:    string(hash),
		Name:        register.Name,
		Role:        consts.RoleStudent,
		CollegeId:   collegeId,
		CollegeName: collegeName,
	})
}

func (ul *UserLogic) Login(login *model.LoginReq, auth http.Auth) (*model.LoginRep, error) {
	user, err := ul.userRepo.GetByEmail(login.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)) != nil {
		return nil, ErrIncorrectPassword
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		return nil, err
	}

	// token 异步写入 Redis，不阻塞登录返回
	safe.Go(func() {
		if err := ul.userRepo.SetToken(user.UserId, aToken, rToken,
			auth.AccessExpire, auth.RefreshExpire); err != nil {
			log.Errorf("failed to set token in redis: %v", err)
		}
	})

	return &model.LoginRep{
		UserId:       user.UserId,
		Name:         user.Name,
		Role:         user.Role,
		CollegeId:    user.CollegeId,
		AccessToken:  aToken,
		RefreshToken: rToken,
	}, nil
}

func (ul *UserLogic) RefreshToken(userId, rToken string, auth http.Auth) (map[string]string, error) {
	stored, err := ul.userRepo.GetRefreshToken(userId)
	if err != nil || stored != rToken {
		return nil, ErrInvalidToken
	}

	newToken, err := jwt.RefreshToken(userId, rToken, auth.SecretKey, auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if err := ul.userRepo.SetToken(userId, newToken["accessToken"], newToken["refreshToken"],
		auth.AccessExpire, auth.RefreshExpire); err != nil {
		log.Errorf("failed to refresh token in redis: %v", err)
	}
	return newToken, nil
}

func (ul *UserLogic) Logout(userId string) error {
	return ul.userRepo.DelToken(userId)
}

// JoinCollege 凭邀请码加入学院
func (ul *UserLogic) JoinCollege(userId, inviteCode string) (*model.College, error) {
	college, err := ul.collegeRepo.GetByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}

	if err := ul.userRepo.SetCollege(userId, college.CollegeId, college.Name); err != nil {
		return nil, err
	}
	return college, nil
}

// Me 返回当前用户资料与统计
func (ul *UserLogic) Me(userId string) (*model.UserProfileRep, error) {
	user, err := ul.userRepo.GetByUserId(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rep := &model.UserProfileRep{User: user}
	if rep.EventCount, err = ul.eventRepo.CountOwnedEvents(userId); err != nil {
		return nil, err
	}
	if rep.ParticipateCount, err = ul.eventRepo.CountParticipations(userId); err != nil {
		return nil, err
	}
	if rep.ItemCount, err = ul.marketplaceRepo.CountOwnedItems(userId); err != nil {
		return nil, err
	}
	// 一起参加过活动的不同用户数
	if rep.BuddyCount, err = ul.eventRepo.CountBuddies(userId); err != nil {
		return nil, err
	}
	return rep, nil
}

// UpdateProfile 空字段不更新
func (ul *UserLogic) UpdateProfile(userId string, req *model.UpdateProfileReq) error {
	return ul.userRepo.UpdateProfile(userId, &model.User{
		Name:      req.Name,
		Major:     req.Major,
		Year:      req.Year,
		Bio:       req.Bio,
		Interests: req.Interests,
	})
}

// UploadProfilePhoto 上传头像，覆盖旧头像
func (ul *UserLogic) UploadProfilePhoto(userId, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExts[ext]; !ok {
		return "", ErrInvalidFileType
	}

	url, err := ul.resolver.Resolve(ul.ctx.GetCtx(), media.KindProfileImage,
		media.Keys{UserId: userId}, filename, data)
	if err != nil {
		return "", err
	}
	if err := ul.userRepo.SetPhotoUrl(userId, url); err != nil {
		return "", err
	}
	return url, nil
}

// AssignRole 仅超级管理员可调整角色
func (ul *UserLogic) AssignRole(actor authz.Actor, targetUserId, role string) error {
	if actor.Role != consts.RoleSuperAdmin {
		return authz.ErrPermissionDenied
	}
	if authz.RoleRank(role) == 0 {
		return errors.New("unknown role: " + role)
	}

	if _, err := ul.userRepo.GetByUserId(targetUserId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return ul.userRepo.SetRole(targetUserId, role)
}

// DeleteUser 删除账号及名下数据，本人或超级管理员可操作
func (ul *UserLogic) DeleteUser(actor authz.Actor, targetUserId string) error {
	if err := authz.Authorize(actor, authz.OwnerOrAdmin, targetUserId); err != nil {
		return err
	}

	if _, err := ul.userRepo.GetByUserId(targetUserId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := ul.userRepo.DeleteUserCascade(targetUserId); err != nil {
		return err
	}
	if err := ul.userRepo.DelToken(targetUserId); err != nil {
		log.Warnf("failed to clear tokens for deleted user %s: %v", targetUserId, err)
	}
	return nil
}
