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

package model

/**
 * @author: campus connect team
 * @date: 2025/6/13 10:40
 * @description: 二手市场模型
 */

// MarketplaceItem 二手市场商品
type MarketplaceItem struct {
	BaseModel
	ItemId      string  `gorm:"column:item_id;uniqueIndex;size:64" json:"itemId"`
	Title       string  `gorm:"column:title;size:128" json:"title"`
	Description string  `gorm:"column:description;size:1024" json:"description"`
	Price       float64 `gorm:"column:price" json:"price"`
	Category    string  `gorm:"column:category;size:64" json:"category"`
	Condition   string  `gorm:"column:item_condition;size:32" json:"condition"`
	ImageUrl    string  `gorm:"column:image_url;size:256" json:"imageUrl"`
	IsSold      bool    `gorm:"column:is_sold;default:false" json:"isSold"`
	OwnerId     string  `gorm:"column:owner_id;index;size:64" json:"ownerId"`
	CollegeId   string  `gorm:"column:college_id;index;size:64" json:"collegeId"`
}

func (m *MarketplaceItem) TableName() string {
	return "t_marketplace_item"
}

// AddItemReq 发布商品请求
type AddItemReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
}

// UpdateItemReq 更新商品请求，空字段不更新
type UpdateItemReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	IsSold      *bool    `json:"isSold"`
}

// Merge 将非空字段合并到目标商品
func (r *UpdateItemReq) Merge(m *MarketplaceItem) {
	if r.Title != "" {
		m.Title = r.Title
	}
	if r.Description != "" {
		m.Description = r.Description
	}
	if r.Price != nil {
		m.Price = *r.Price
	}
	if r.Category != "" {
		m.Category = r.Category
	}
	if r.Condition != "" {
		m.Condition = r.Condition
	}
	if r.IsSold != nil {
		m.IsSold = *r.IsSold
	}
}
