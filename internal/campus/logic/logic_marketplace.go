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
	"github.com/campus-connect/campus/internal/campus/notify"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/ctx"
	"github.com/campus-connect/campus/pkg/id"
	"gorm.io/gorm"
)

/**
 * @author: campus connect team
 * @date: 2025/6/14 17:30
 * @description: 二手市场业务逻辑
 */

type MarketplaceLogic struct {
	ctx             *ctx.Context
	marketplaceRepo repo.IMarketplaceRepository
	fanout          *notify.Fanout
	resolver        *media.Resolver
}

func NewMarketplaceLogic(ctx *ctx.Context, marketplaceRepo repo.IMarketplaceRepository,
	fanout *notify.Fanout, resolver *media.Resolver) *MarketplaceLogic {
	return &MarketplaceLogic{
		ctx:             ctx,
		marketplaceRepo: marketplaceRepo,
		fanout:          fanout,
		resolver:        resolver,
	}
}

func (ml *MarketplaceLogic) AddItem(actor authz.Actor, req *model.AddItemReq) (*model.MarketplaceItem, error) {
	if actor.CollegeId == "" {
		return nil, ErrNoCollege
	}

	item := &model.MarketplaceItem{
		ItemId:      id.GetUUID(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		OwnerId:     actor.UserId,
		CollegeId:   actor.CollegeId,
	}
	if err := ml.marketplaceRepo.AddItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem 按 ID 读取不做租户过滤
func (ml *MarketplaceLogic) GetItem(itemId string) (*model.MarketplaceItem, error) {
	item, err := ml.marketplaceRepo.GetByItemId(itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (ml *MarketplaceLogic) ListItems(actor authz.Actor, category string, includeSold bool, offset, pageSize int) ([]model.MarketplaceItem, int64, error) {
	return ml.marketplaceRepo.ListItems(actor, category, includeSold, offset, pageSize)
}

// UpdateItem 仅所有者或超级管理员可修改，空字段不更新
func (ml *MarketplaceLogic) UpdateItem(actor authz.Actor, itemId string, req *model.UpdateItemReq) (*model.MarketplaceItem, error) {
	item, err := ml.marketplaceRepo.GetByItemId(itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := authz.Authorize(actor, authz.OwnerOrAdmin, item.OwnerId); err != nil {
		return nil, err
	}

	req.Merge(item)
	if err := ml.marketplaceRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (ml *MarketplaceLogic) DeleteItem(actor authz.Actor, itemId string) error {
	item, err := ml.marketplaceRepo.GetByItemId(itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := authz.Authorize(actor, authz.OwnerOrAdmin, item.OwnerId); err != nil {
		return err
	}
	return ml.marketplaceRepo.DeleteItem(itemId)
}

// UploadItemImage 上传商品图片
func (ml *MarketplaceLogic) UploadItemImage(actor authz.Actor, itemId, filename string, data []byte) (string, error) {
	item, err := ml.marketplaceRepo.GetByItemId(itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if err := authz.Authorize(actor, authz.OwnerOrAdmin, item.OwnerId); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExts[ext]; !ok {
		return "", ErrInvalidFileType
	}

	url, err := ml.resolver.Resolve(ml.ctx.GetCtx(), media.KindMarketplaceItem,
		media.Keys{OwnerId: item.OwnerId, ItemId: itemId}, filename, data)
	if err != nil {
		return "", err
	}
	if err := ml.marketplaceRepo.SetImageUrl(itemId, url); err != nil {
		return "", err
	}
	return url, nil
}

// ExpressInterest 买家表达购买意向，定向通知卖家
func (ml *MarketplaceLogic) ExpressInterest(actor authz.Actor, itemId string) error {
	item, err := ml.marketplaceRepo.GetByItemId(itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	ml.fanout.Emit(&model.Notification{
		UserId:    item.OwnerId,
		CollegeId: item.CollegeId,
		Type:      consts.NotificationMarketplaceInterest,
		Title:     "Someone is interested in: " + item.Title,
		RelatedId: item.ItemId,
	})
	return nil
}
