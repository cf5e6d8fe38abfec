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
	"errors"
	"time"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/**
 * @author: campus connect team
 * @date: 2025/6/13 16:30
 * @description: 学生认证数据访问
 */

// ErrPendingExists 同一用户已有待审核申请
var ErrPendingExists = errors.New("pending verification request already exists")

type IVerificationRepository interface {
	// CreatePending 创建待审核申请，同一用户最多一条 pending，由事务内行锁保证
	CreatePending(v *model.VerificationRequest) error
	HasPending(userId string) (bool, error)
	GetByRequestId(requestId string) (*model.VerificationRequest, error)
	// UpdateStatus 只更新状态与审核信息，不校验当前状态
	UpdateStatus(requestId, status, reviewedBy, comment string, reviewedAt time.Time) error
	List(actor authz.Actor, status string, offset, pageSize int) ([]model.VerificationRep, int64, error)
}

type VerificationRepo struct {
	db        database.IDatabase
	reqModel  *model.VerificationRequest
	userModel *model.User
}

func NewVerificationRepo(db database.IDatabase) IVerificationRepository {
	return &VerificationRepo{
		db:        db,
		reqModel:  &model.VerificationRequest{},
		userModel: &model.User{},
	}
}

func (vr *VerificationRepo) CreatePending(v *model.VerificationRequest) error {
	return vr.db.Database().Transaction(func(tx *gorm.DB) error {
		query := tx.Model(vr.reqModel).
			Where("user_id = ? AND status = ?", v.UserId, consts.VerificationPending)
		// MySQL 下用行锁串行化同一用户的并发提交
		if tx.Dialector.Name() == "mysql" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPendingExists
		}
		return tx.Create(v).Error
	})
}

func (vr *VerificationRepo) HasPending(userId string) (bool, error) {
	var count int64
	err := vr.db.Database().Model(vr.reqModel).
		Where("user_id = ? AND status = ?", userId, consts.VerificationPending).
		Count(&count).Error
	return count > 0, err
}

func (vr *VerificationRepo) GetByRequestId(requestId string) (*model.VerificationRequest, error) {
	v := &model.VerificationRequest{}
	if err := vr.db.Database().Where("request_id = ?", requestId).First(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func (vr *VerificationRepo) UpdateStatus(requestId, status, reviewedBy, comment string, reviewedAt time.Time) error {
	return vr.db.Database().Table(vr.reqModel.TableName()).
		Where("request_id = ?", requestId).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewedBy,
			"comment":     comment,
			"reviewed_at": reviewedAt,
		}).Error
}

// List 按租户范围返回申请列表，并带出申请人姓名与邮箱
func (vr *VerificationRepo) List(actor authz.Actor, status string, offset, pageSize int) ([]model.VerificationRep, int64, error) {
	var reqs []model.VerificationRequest
	var total int64

	db := vr.db.Database().Model(vr.reqModel).Scopes(authz.TenantScope(actor))
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("create_time DESC").Offset(offset).Limit(pageSize).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	reps := make([]model.VerificationRep, 0, len(reqs))
	for i := range reqs {
		rep := model.VerificationRep{VerificationRequest: &reqs[i]}
		u := &model.User{}
		if err := vr.db.Database().Where("user_id = ?", reqs[i].UserId).First(u).Error; err == nil {
			rep.UserName = u.Name
			rep.UserEmail = u.Email
		}
		reps = append(reps, rep)
	}
	return reps, total, nil
}
