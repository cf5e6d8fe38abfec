package logic

import (
	"testing"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/notify"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketplaceFixture struct {
	db               *testDatabase
	logic            *MarketplaceLogic
	notificationRepo repo.INotificationRepository
}

func newMarketplaceFixture(t *testing.T) *marketplaceFixture {
	t.Helper()
	db := newTestDB(t)
	marketplaceRepo := repo.NewMarketplaceRepo(db)
	notificationRepo := repo.NewNotificationRepo(db)
	fanout := notify.NewFanout(notificationRepo, nil)

	return &marketplaceFixture{
		db:               db,
		notificationRepo: notificationRepo,
		logic: NewMarketplaceLogic(newTestCtx(), marketplaceRepo,
			fanout, newTestResolver(t)),
	}
}

func TestAddAndListItemsTenantIsolation(t *testing.T) {
	f := newMarketplaceFixture(t)
	sellerC1 := authz.Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}
	sellerC2 := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c2"}

	_, err := f.logic.AddItem(sellerC1, &model.AddItemReq{Title: "Bike", Price: 80})
	require.NoError(t, err)
	_, err = f.logic.AddItem(sellerC2, &model.AddItemReq{Title: "Lamp", Price: 15})
	require.NoError(t, err)

	items, total, err := f.logic.ListItems(sellerC1, "", false, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Bike", items[0].Title)
}

func TestUpdateItemMarkSold(t *testing.T) {
	f := newMarketplaceFixture(t)
	seller := authz.Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}

	item, err := f.logic.AddItem(seller, &model.AddItemReq{Title: "Bike", Price: 80})
	require.NoError(t, err)

	sold := true
	updated, err := f.logic.UpdateItem(seller, item.ItemId, &model.UpdateItemReq{IsSold: &sold})
	require.NoError(t, err)
	assert.True(t, updated.IsSold)
	assert.Equal(t, "Bike", updated.Title)

	// 默认列表不含已售出
	_, total, err := f.logic.ListItems(seller, "", false, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	_, total, err = f.logic.ListItems(seller, "", true, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestItemCrossTenantReadButNoWrite(t *testing.T) {
	f := newMarketplaceFixture(t)
	seller := authz.Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}
	outsider := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c2"}

	item, err := f.logic.AddItem(seller, &model.AddItemReq{Title: "Bike", Price: 80})
	require.NoError(t, err)

	got, err := f.logic.GetItem(item.ItemId)
	require.NoError(t, err)
	assert.Equal(t, "Bike", got.Title)

	_, err = f.logic.UpdateItem(outsider, item.ItemId, &model.UpdateItemReq{Title: "Mine now"})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	assert.ErrorIs(t, f.logic.DeleteItem(outsider, item.ItemId), authz.ErrPermissionDenied)

	// 同院管理员不是所有者，同样不能改
	sameCollegeAdmin := authz.Actor{UserId: "a1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	_, err = f.logic.UpdateItem(sameCollegeAdmin, item.ItemId, &model.UpdateItemReq{Title: "Confiscated"})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
}

func TestExpressInterestNotifiesSeller(t *testing.T) {
	f := newMarketplaceFixture(t)
	seller := authz.Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}
	buyer := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c1"}

	item, err := f.logic.AddItem(seller, &model.AddItemReq{Title: "Bike", Price: 80})
	require.NoError(t, err)

	require.NoError(t, f.logic.ExpressInterest(buyer, item.ItemId))

	notifications, _, err := f.notificationRepo.ListForUser("u1", "c1", false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, consts.NotificationMarketplaceInterest, notifications[0].Type)
	assert.Equal(t, item.ItemId, notifications[0].RelatedId)

	assert.ErrorIs(t, f.logic.ExpressInterest(buyer, "missing"), ErrNotFound)
}

func TestUploadItemImagePath(t *testing.T) {
	f := newMarketplaceFixture(t)
	seller := authz.Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}

	item, err := f.logic.AddItem(seller, &model.AddItemReq{Title: "Bike", Price: 80})
	require.NoError(t, err)

	url, err := f.logic.UploadItemImage(seller, item.ItemId, "bike.webp", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "/static/marketplace/u1/items/"+item.ItemId+"/item_image.webp", url)
}
