package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/notify"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenHub struct{}

func (b *brokenHub) Register(_ ws.Conn)   {}
func (b *brokenHub) Unregister(_ ws.Conn) {}
func (b *brokenHub) BroadcastJSON(_ any) error {
	return errors.New("all connections dead")
}
func (b *brokenHub) SendToUserJSON(_ string, _ any) error {
	return errors.New("all connections dead")
}
func (b *brokenHub) Count() int { return 0 }

type brokenNotificationRepo struct{}

func (b *brokenNotificationRepo) AddNotification(_ *model.Notification) error {
	return errors.New("db gone")
}
func (b *brokenNotificationRepo) ListForUser(_, _ string, _ bool, _, _ int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}
func (b *brokenNotificationRepo) MarkRead(_, _ string) error             { return nil }
func (b *brokenNotificationRepo) MarkAllRead(_ string) error             { return nil }
func (b *brokenNotificationRepo) CountUnread(_, _ string) (int64, error) { return 0, nil }

type eventFixture struct {
	db               *testDatabase
	logic            *EventLogic
	eventRepo        repo.IEventRepository
	notificationRepo repo.INotificationRepository
}

func newEventFixture(t *testing.T, hub ws.Hub) *eventFixture {
	t.Helper()
	db := newTestDB(t)
	eventRepo := repo.NewEventRepo(db)
	notificationRepo := repo.NewNotificationRepo(db)
	fanout := notify.NewFanout(notificationRepo, hub)

	return &eventFixture{
		db:               db,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		logic:            NewEventLogic(newTestCtx(), eventRepo, fanout, newTestResolver(t)),
	}
}

func addEventReq(title string) *model.AddEventReq {
	return &model.AddEventReq{
		Title:     title,
		Location:  "main hall",
		Category:  "social",
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(26 * time.Hour),
	}
}

func TestAddEventEmitsCollegeBroadcast(t *testing.T) {
	f := newEventFixture(t, nil)
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	event, err := f.logic.AddEvent(owner, addEventReq("Game night"))
	require.NoError(t, err)
	require.NotEmpty(t, event.EventId)

	// 学院内广播：user_id 为空、college_id 为创建者学院
	notifications, _, err := f.notificationRepo.ListForUser("anyone", "c1", false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, consts.NotificationEventNew, notifications[0].Type)
	assert.Equal(t, event.EventId, notifications[0].RelatedId)
	assert.Empty(t, notifications[0].UserId)
}

func TestAddEventSucceedsWhenBroadcastFails(t *testing.T) {
	f := newEventFixture(t, &brokenHub{})
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	event, err := f.logic.AddEvent(owner, addEventReq("Quiet event"))
	require.NoError(t, err)

	// 推送失败不影响主写入
	stored, err := f.eventRepo.GetByEventId(event.EventId)
	require.NoError(t, err)
	assert.Equal(t, "Quiet event", stored.Title)
}

func TestAddEventSucceedsWhenNotificationPersistFails(t *testing.T) {
	db := newTestDB(t)
	eventRepo := repo.NewEventRepo(db)
	fanout := notify.NewFanout(&brokenNotificationRepo{}, &brokenHub{})
	el := NewEventLogic(newTestCtx(), eventRepo, fanout, newTestResolver(t))

	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	event, err := el.AddEvent(owner, addEventReq("Doomed broadcast"))
	require.NoError(t, err)

	_, err = eventRepo.GetByEventId(event.EventId)
	assert.NoError(t, err)
}

func TestAddEventRequiresCollege(t *testing.T) {
	f := newEventFixture(t, nil)
	drifter := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin}

	_, err := f.logic.AddEvent(drifter, addEventReq("Nowhere"))
	assert.ErrorIs(t, err, ErrNoCollege)
}

func TestAddEventRequiresCollegeAdmin(t *testing.T) {
	f := newEventFixture(t, nil)
	student := authz.Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}

	// 普通学生不能创建活动
	_, err := f.logic.AddEvent(student, addEventReq("Unsanctioned"))
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	// 超级管理员带学院时可以
	super := authz.Actor{UserId: "root", Role: consts.RoleSuperAdmin, CollegeId: "c1"}
	_, err = f.logic.AddEvent(super, addEventReq("Official"))
	assert.NoError(t, err)
}

func TestListEventsTenantIsolation(t *testing.T) {
	f := newEventFixture(t, nil)
	ownerC1 := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	ownerC2 := authz.Actor{UserId: "u2", Role: consts.RoleCollegeAdmin, CollegeId: "c2"}

	_, err := f.logic.AddEvent(ownerC1, addEventReq("C1 event"))
	require.NoError(t, err)
	_, err = f.logic.AddEvent(ownerC2, addEventReq("C2 event"))
	require.NoError(t, err)

	events, total, err := f.logic.ListEvents(ownerC1, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "C1 event", events[0].Title)

	// 超级管理员不受租户范围限制
	super := authz.Actor{UserId: "root", Role: consts.RoleSuperAdmin}
	_, total, err = f.logic.ListEvents(super, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestGetEventReadableAcrossTenants(t *testing.T) {
	f := newEventFixture(t, nil)
	ownerC1 := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	outsider := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c2"}

	event, err := f.logic.AddEvent(ownerC1, addEventReq("Open house"))
	require.NoError(t, err)

	// 跨院按 ID 读取放行
	rep, err := f.logic.GetEvent(outsider, event.EventId)
	require.NoError(t, err)
	assert.Equal(t, "Open house", rep.Title)

	// 但跨院写入被拒
	_, err = f.logic.UpdateEvent(outsider, event.EventId, &model.UpdateEventReq{Title: "Hijacked"})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	assert.ErrorIs(t, f.logic.DeleteEvent(outsider, event.EventId), authz.ErrPermissionDenied)
}

func TestUpdateEventByOwner(t *testing.T) {
	f := newEventFixture(t, nil)
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	event, err := f.logic.AddEvent(owner, addEventReq("Draft"))
	require.NoError(t, err)

	updated, err := f.logic.UpdateEvent(owner, event.EventId, &model.UpdateEventReq{Title: "By owner"})
	require.NoError(t, err)
	assert.Equal(t, "By owner", updated.Title)
	// 未提供的字段保持原值
	assert.Equal(t, "main hall", updated.Location)
}

func TestUpdateEventNonOwnerAdminDenied(t *testing.T) {
	f := newEventFixture(t, nil)
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	otherAdmin := authz.Actor{UserId: "a2", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	super := authz.Actor{UserId: "root", Role: consts.RoleSuperAdmin}

	event, err := f.logic.AddEvent(owner, addEventReq("Draft"))
	require.NoError(t, err)

	// 同院管理员也不能动别人的活动
	_, err = f.logic.UpdateEvent(otherAdmin, event.EventId, &model.UpdateEventReq{Title: "By admin"})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	assert.ErrorIs(t, f.logic.DeleteEvent(otherAdmin, event.EventId), authz.ErrPermissionDenied)

	// 超级管理员放行
	updated, err := f.logic.UpdateEvent(super, event.EventId, &model.UpdateEventReq{Title: "By super"})
	require.NoError(t, err)
	assert.Equal(t, "By super", updated.Title)
}

func TestDeleteEventCascadesParticipations(t *testing.T) {
	f := newEventFixture(t, nil)
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	guest := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c1"}

	event, err := f.logic.AddEvent(owner, addEventReq("Short lived"))
	require.NoError(t, err)
	require.NoError(t, f.logic.JoinEvent(guest, event.EventId))

	require.NoError(t, f.logic.DeleteEvent(owner, event.EventId))

	_, err = f.logic.GetEvent(owner, event.EventId)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := f.eventRepo.CountParticipations("u2")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestDeleteEventNotifiesParticipants(t *testing.T) {
	f := newEventFixture(t, nil)
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	guest := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c1"}

	event, err := f.logic.AddEvent(owner, addEventReq("Cancelled party"))
	require.NoError(t, err)
	require.NoError(t, f.logic.JoinEvent(guest, event.EventId))

	require.NoError(t, f.logic.DeleteEvent(owner, event.EventId))

	// 已报名用户收到定向取消通知
	notifications, _, err := f.notificationRepo.ListForUser("u2", "c1", false, 0, 10)
	require.NoError(t, err)

	var cancelled int
	for _, n := range notifications {
		if n.Type == consts.NotificationEventCancelled {
			cancelled++
			assert.Equal(t, "u2", n.UserId)
			assert.Equal(t, event.EventId, n.RelatedId)
		}
	}
	assert.Equal(t, 1, cancelled)
}

func TestJoinEventTwice(t *testing.T) {
	f := newEventFixture(t, nil)
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	guest := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c1"}

	event, err := f.logic.AddEvent(owner, addEventReq("Popular"))
	require.NoError(t, err)

	require.NoError(t, f.logic.JoinEvent(guest, event.EventId))
	assert.ErrorIs(t, f.logic.JoinEvent(guest, event.EventId), ErrAlreadyJoined)

	require.NoError(t, f.logic.LeaveEvent(guest, event.EventId))
	assert.NoError(t, f.logic.JoinEvent(guest, event.EventId))
}

func TestUploadEventImage(t *testing.T) {
	f := newEventFixture(t, nil)
	owner := authz.Actor{UserId: "u1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	event, err := f.logic.AddEvent(owner, addEventReq("With cover"))
	require.NoError(t, err)

	url, err := f.logic.UploadEventImage(owner, event.EventId, "banner.png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "/static/events/"+event.EventId+"/event_image.png", url)

	stored, err := f.eventRepo.GetByEventId(event.EventId)
	require.NoError(t, err)
	assert.Equal(t, url, stored.ImageUrl)

	_, err = f.logic.UploadEventImage(owner, event.EventId, "banner.gif", []byte("img"))
	assert.ErrorIs(t, err, ErrInvalidFileType)
}
