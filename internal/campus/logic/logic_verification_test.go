package logic

import (
	"strings"
	"testing"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/notify"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verificationFixture struct {
	db               *testDatabase
	logic            *VerificationLogic
	userRepo         repo.IUserRepository
	notificationRepo repo.INotificationRepository
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()
	db := newTestDB(t)
	userRepo := repo.NewUserRepo(db, nil)
	verificationRepo := repo.NewVerificationRepo(db)
	notificationRepo := repo.NewNotificationRepo(db)
	fanout := notify.NewFanout(notificationRepo, nil)

	return &verificationFixture{
		db:               db,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logic: NewVerificationLogic(newTestCtx(), verificationRepo, userRepo,
			fanout, newTestResolver(t)),
	}
}

func (f *verificationFixture) seedUser(t *testing.T, userId, role, collegeId string) authz.Actor {
	t.Helper()
	require.NoError(t, f.userRepo.AddUser(&model.User{
		UserId:    userId,
		Email:     userId + "@campus.edu",
		Name:      userId,
		Role:      role,
		CollegeId: collegeId,
	}))
	return authz.Actor{UserId: userId, Role: role, CollegeId: collegeId}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")

	request, err := f.logic.Submit(student, "student-card.pdf", []byte("doc"))
	require.NoError(t, err)

	assert.Equal(t, consts.VerificationPending, request.Status)
	assert.Equal(t, "c1", request.CollegeId)
	assert.True(t, strings.HasPrefix(request.DocumentUrl, "/static/users/u1/verification/id_card_"))
}

func TestSubmitConflictWhilePending(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")

	_, err := f.logic.Submit(student, "card.pdf", []byte("doc"))
	require.NoError(t, err)

	_, err = f.logic.Submit(student, "card.pdf", []byte("doc"))
	assert.ErrorIs(t, err, ErrPendingVerificationExists)
}

func TestSubmitRejectsDisallowedExtension(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")

	_, err := f.logic.Submit(student, "card.exe", []byte("doc"))
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = f.logic.Submit(student, "card.gif", []byte("doc"))
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestSubmitRequiresCollegeMembership(t *testing.T) {
	f := newVerificationFixture(t)
	drifter := f.seedUser(t, "u1", consts.RoleStudent, "")

	_, err := f.logic.Submit(drifter, "card.pdf", []byte("doc"))
	assert.ErrorIs(t, err, ErrNoCollege)
}

func TestApproveMarksUserVerifiedAndNotifies(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")
	admin := f.seedUser(t, "a1", consts.RoleCollegeAdmin, "c1")

	request, err := f.logic.Submit(student, "card.pdf", []byte("doc"))
	require.NoError(t, err)

	require.NoError(t, f.logic.Approve(admin, request.RequestId))

	user, err := f.userRepo.GetByUserId("u1")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// 审核结果定向通知申请人
	notifications, _, err := f.notificationRepo.ListForUser("u1", "c1", false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, consts.NotificationVerificationResult, notifications[0].Type)
}

func TestRejectKeepsUserUnverified(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")
	admin := f.seedUser(t, "a1", consts.RoleCollegeAdmin, "c1")

	request, err := f.logic.Submit(student, "card.jpg", []byte("doc"))
	require.NoError(t, err)

	require.NoError(t, f.logic.Reject(admin, request.RequestId, "document unreadable"))

	user, err := f.userRepo.GetByUserId("u1")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
}

func TestReviewRequiresCollegeAdmin(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")
	other := f.seedUser(t, "u2", consts.RoleStudent, "c1")

	request, err := f.logic.Submit(student, "card.pdf", []byte("doc"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.logic.Approve(other, request.RequestId), authz.ErrPermissionDenied)
}

func TestReviewNotFound(t *testing.T) {
	f := newVerificationFixture(t)
	admin := f.seedUser(t, "a1", consts.RoleCollegeAdmin, "c1")

	assert.ErrorIs(t, f.logic.Approve(admin, "missing"), ErrNotFound)
	assert.ErrorIs(t, f.logic.Reject(admin, "missing", ""), ErrNotFound)
}

func TestReviewDoesNotRecheckState(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")
	admin := f.seedUser(t, "a1", consts.RoleCollegeAdmin, "c1")

	request, err := f.logic.Submit(student, "card.pdf", []byte("doc"))
	require.NoError(t, err)

	// 已审批的申请可以再次被审核，最后一次覆盖前一次
	require.NoError(t, f.logic.Approve(admin, request.RequestId))
	require.NoError(t, f.logic.Reject(admin, request.RequestId, "changed my mind"))

	reqs, _, err := f.logic.List(admin, consts.VerificationRejected, 0, 10)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, consts.VerificationRejected, reqs[0].Status)
}

func TestResubmitAfterRejection(t *testing.T) {
	f := newVerificationFixture(t)
	student := f.seedUser(t, "u1", consts.RoleStudent, "c1")
	admin := f.seedUser(t, "a1", consts.RoleCollegeAdmin, "c1")

	request, err := f.logic.Submit(student, "card.pdf", []byte("doc"))
	require.NoError(t, err)
	require.NoError(t, f.logic.Reject(admin, request.RequestId, "blurry"))

	// 驳回后可以重新提交
	_, err = f.logic.Submit(student, "card-v2.pdf", []byte("doc"))
	assert.NoError(t, err)
}

func TestListScopedToReviewerCollege(t *testing.T) {
	f := newVerificationFixture(t)
	s1 := f.seedUser(t, "u1", consts.RoleStudent, "c1")
	s2 := f.seedUser(t, "u2", consts.RoleStudent, "c2")
	adminC1 := f.seedUser(t, "a1", consts.RoleCollegeAdmin, "c1")
	super := f.seedUser(t, "root", consts.RoleSuperAdmin, "")

	_, err := f.logic.Submit(s1, "card.pdf", []byte("doc"))
	require.NoError(t, err)
	_, err = f.logic.Submit(s2, "card.pdf", []byte("doc"))
	require.NoError(t, err)

	reqs, total, err := f.logic.List(adminC1, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reqs, 1)
	assert.Equal(t, "u1", reqs[0].UserId)
	assert.Equal(t, "u1", reqs[0].UserName)

	_, total, err = f.logic.List(super, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
