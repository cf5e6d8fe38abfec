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
	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/pkg/database"
)

/**
 * @author: campus connect team
 * @date: 2025/6/13 16:10
 * @description: 二手市场数据访问
 */

type IMarketplaceRepository interface {
	AddItem(m *model.MarketplaceItem) error
	// GetByItemId 按 ID 查询不做租户过滤，调用方决定是否放行
	GetByItemId(itemId string) (*model.MarketplaceItem, error)
	ListItems(actor authz.Actor, category string, includeSold bool, offset, pageSize int) ([]model.MarketplaceItem, int64, error)
	UpdateItem(m *model.MarketplaceItem) error
	DeleteItem(itemId string) error
	SetImageUrl(itemId, imageUrl string) error
	CountOwnedItems(userId string) (int64, error)
}

type MarketplaceRepo struct {
	db        database.IDatabase
	itemModel *model.MarketplaceItem
}

func NewMarketplaceRepo(db database.IDatabase) IMarketplaceRepository {
	return &MarketplaceRepo{
		db:        db,
		itemModel: &model.MarketplaceItem{},
	}
}

func (mr *MarketplaceRepo) AddItem(m *model.MarketplaceItem) error {
	return mr.db.Database().Create(m).Error
}

func (mr *MarketplaceRepo) GetByItemId(itemId string) (*model.MarketplaceItem, error) {
	m := &model.MarketplaceItem{}
	if err := mr.db.Database().Where("item_id = ?", itemId).First(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListItems 列表查询始终套租户范围
func (mr *MarketplaceRepo) ListItems(actor authz.Actor, category string, includeSold bool, offset, pageSize int) ([]model.MarketplaceItem, int64, error) {
	var items []model.MarketplaceItem
	var total int64

	db := mr.db.Database().Model(mr.itemModel).Scopes(authz.TenantScope(actor))
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if !includeSold {
		db = db.Where("is_sold = ?", false)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("create_time DESC").Offset(offset).Limit(pageSize).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (mr *MarketplaceRepo) UpdateItem(m *model.MarketplaceItem) error {
	// Select 指定列以便 is_sold=false 也能落库
	return mr.db.Database().Table(mr.itemModel.TableName()).
		Where("item_id = ?", m.ItemId).
		Select("title", "description", "price", "category", "item_condition", "is_sold").
		Updates(m).Error
}

func (mr *MarketplaceRepo) DeleteItem(itemId string) error {
	return mr.db.Database().Where("item_id = ?", itemId).Delete(mr.itemModel).Error
}

func (mr *MarketplaceRepo) SetImageUrl(itemId, imageUrl string) error {
	return mr.db.Database().Table(mr.itemModel.TableName()).
		Where("item_id = ?", itemId).
		Update("image_url", imageUrl).Error
}

func (mr *MarketplaceRepo) CountOwnedItems(userId string) (int64, error) {
	var count int64
	err := mr.db.Database().Model(mr.itemModel).
		Where("owner_id = ?", userId).
		Count(&count).Error
	return count, err
}
