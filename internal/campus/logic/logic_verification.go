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
	"time"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/media"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/notify"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/id"
	"github.com/campus-connect/campus/pkg/log"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 18:00
 * @description: 学生认证业务逻辑
 */

type VerificationLogic struct {
	ctx              *ctx.Context
	verificationRepo repo.IVerificationRepository
	userRepo         repo.IUserRepository
	fanout           *notify.Fanout
	resolver         *media.Resolver
}

func NewVerificationLogic(ctx *ctx.Context, verificationRepo repo.IVerificationRepository,
	userRepo repo.IUserRepository, fanout *notify.Fanout, resolver *media.Resolver) *VerificationLogic {
	return &VerificationLogic{
		ctx:              ctx,
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		fanout:           fanout,
		resolver:         resolver,
	}
}

// Submit 提交认证申请。认证材料上传失败会中止整个提交，
// 没有 document_url 的申请没有意义。
func (vl *VerificationLogic) Submit(actor authz.Actor, filename string, data []byte) (*model.VerificationRequest, error) {
	if actor.CollegeId == "" {
		return nil, ErrNoCollege
	}

	pending, err := vl.verificationRepo.HasPending(actor.UserId)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrPendingVerificationExists
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := documentExts[ext]; !ok {
		return nil, ErrInvalidFileType
	}

	url, err := vl.resolver.Resolve(vl.ctx.GetCtx(), media.KindVerificationDocument,
		media.Keys{UserId: actor.UserId}, filename, data)
	if err != nil {
		return nil, err
	}

	request := &model.VerificationRequest{
		RequestId:   id.GetUUID(),
		UserId:      actor.UserId,
		CollegeId:   actor.CollegeId,
		DocumentUrl: url,
		Status:      consts.VerificationPending,
	}
	// 并发提交由存储层行锁兜底，上面的预检只是快速失败
	if err := vl.verificationRepo.CreatePending(request); err != nil {
		if errors.Is(err, repo.ErrPendingExists) {
			return nil, ErrPendingVerificationExists
		}
		return nil, err
	}
	return request, nil
}

// Approve 审核通过。不检查申请当前状态，重复审核以最后一次为准。
func (vl *VerificationLogic) Approve(reviewer authz.Actor, requestId string) error {
	return vl.review(reviewer, requestId, consts.VerificationApproved, "")
}

// Reject 驳回申请
func (vl *VerificationLogic) Reject(reviewer authz.Actor, requestId, comment string) error {
	return vl.review(reviewer, requestId, consts.VerificationRejected, comment)
}

func (vl *VerificationLogic) review(reviewer authz.Actor, requestId, status, comment string) error {
	if err := authz.Authorize(reviewer, authz.CollegeAdminOrAbove, ""); err != nil {
		return err
	}

	request, err := vl.verificationRepo.GetByRequestId(requestId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := vl.verificationRepo.UpdateStatus(requestId, status,
		reviewer.UserId, comment, time.Now()); err != nil {
		return err
	}

	if status == consts.VerificationApproved {
		if err := vl.userRepo.SetVerified(request.UserId, true); err != nil {
			log.Errorf("failed to mark user %s verified: %v", request.UserId, err)
		}
	}

	title := "Your verification request was " + status
	vl.fanout.Emit(&model.Notification{
		UserId:    request.UserId,
		CollegeId: request.CollegeId,
		Type:      consts.NotificationVerificationResult,
		Title:     title,
		Body:      comment,
		RelatedId: request.RequestId,
	})
	return nil
}

// List 审核列表，默认只看待审核，租户范围由查询范围控制
func (vl *VerificationLogic) List(actor authz.Actor, status string, offset, pageSize int) ([]model.VerificationRep, int64, error) {
	if err := authz.Authorize(actor, authz.CollegeAdminOrAbove, ""); err != nil {
		return nil, 0, err
	}
	if status == "" {
		status = consts.VerificationPending
	}
	return vl.verificationRepo.List(actor, status, offset, pageSize)
}
