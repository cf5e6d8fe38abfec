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
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/pkg/database"
)

/**
 * @author: campus connect team
 * @date: 2025/6/13 15:40
 * @description: 学院数据访问
 */

type ICollegeRepository interface {
	AddCollege(c *model.College) error
	GetByCollegeId(collegeId string) (*model.College, error)
	GetByInviteCode(inviteCode string) (*model.College, error)
	ExistsByName(name string) (bool, error)
	ListColleges(offset, pageSize int) ([]model.College, int64, error)
}

type CollegeRepo struct {
	db           database.IDatabase
	collegeModel *model.College
}

func NewCollegeRepo(db database.IDatabase) ICollegeRepository {
	return &CollegeRepo{
		db:           db,
		collegeModel: &model.College{},
	}
}

func (cr *CollegeRepo) AddCollege(c *model.College) error {
	return cr.db.Database().Create(c).Error
}

func (cr *CollegeRepo) GetByCollegeId(collegeId string) (*model.College, error) {
	c := &model.College{}
	if err := cr.db.Database().Where("college_id = ?", collegeId).First(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (cr *CollegeRepo) GetByInviteCode(inviteCode string) (*model.College, error) {
	c := &model.College{}
	if err := cr.db.Database().Where("invite_code = ?", inviteCode).First(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (cr *CollegeRepo) ExistsByName(name string) (bool, error) {
	var count int64
	err := cr.db.Database().Model(cr.collegeModel).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (cr *CollegeRepo) ListColleges(offset, pageSize int) ([]model.College, int64, error) {
	var colleges []model.College
	var total int64

	db := cr.db.Database().Model(cr.collegeModel)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("create_time DESC").Offset(offset).Limit(pageSize).Find(&colleges).Error; err != nil {
		return nil, 0, err
	}
	return colleges, total, nil
}
