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

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/id"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 16:20
 * @description: 学院业务逻辑
 */

type CollegeLogic struct {
	ctx         *ctx.Context
	collegeRepo repo.ICollegeRepository
}

func NewCollegeLogic(ctx *ctx.Context, collegeRepo repo.ICollegeRepository) *CollegeLogic {
	return &CollegeLogic{
		ctx:         ctx,
		collegeRepo: collegeRepo,
	}
}

// AddCollege 仅超级管理员可创建学院，邀请码自动生成且全局唯一
func (cl *CollegeLogic) AddCollege(actor authz.Actor, req *model.AddCollegeReq) (*model.College, error) {
	if actor.Role != consts.RoleSuperAdmin {
		return nil, authz.ErrPermissionDenied
	}

	exists, err := cl.collegeRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCollegeExists
	}

	college := &model.College{
		CollegeId:   id.GetUUID(),
		Name:        req.Name,
		InviteCode:  id.ShortId(),
		Description: req.Description,
		Location:    req.Location,
	}
	if err := cl.collegeRepo.AddCollege(college); err != nil {
		return nil, err
	}
	return college, nil
}

func (cl *CollegeLogic) GetCollege(collegeId string) (*model.College, error) {
	college, err := cl.collegeRepo.GetByCollegeId(collegeId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return college, nil
}

func (cl *CollegeLogic) ListColleges(offset, pageSize int) ([]model.College, int64, error) {
	return cl.collegeRepo.ListColleges(offset, pageSize)
}
