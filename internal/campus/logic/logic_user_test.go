package logic

import (
	"testing"

	"github.com/campus-connect/campus/internal/campus/authz"
	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/campus-connect/campus/internal/campus/model"
	"github.com/campus-connect/campus/internal/campus/repo"
	"github.com/campus-connect/campus/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	db           *testDatabase
	logic        *UserLogic
	collegeLogic *CollegeLogic
	userRepo     repo.IUserRepository
	auth         http.Auth
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	db := newTestDB(t)
	userRepo := repo.NewUserRepo(db, newFakeCache())
	collegeRepo := repo.NewCollegeRepo(db)
	eventRepo := repo.NewEventRepo(db)
	marketplaceRepo := repo.NewMarketplaceRepo(db)
	c := newTestCtx()

	return &userFixture{
		db:           db,
		userRepo:     userRepo,
		collegeLogic: NewCollegeLogic(c, collegeRepo),
		logic: NewUserLogic(c, userRepo, collegeRepo, eventRepo,
			marketplaceRepo, newTestResolver(t)),
		auth: http.Auth{SecretKey: "test-secret", AccessExpire: 30, RefreshExpire: 1440},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newUserFixture(t)

	require.NoError(t, f.logic.Register(&model.RegisterReq{
		Email:    "alice@campus.edu",
		Password: "s3cret",
		Name:     "Alice",
	}))

	rep, err := f.logic.Login(&model.LoginReq{Email: "alice@campus.edu", Password: "s3cret"}, f.auth)
	require.NoError(t, err)
	assert.Equal(t, "Alice", rep.Name)
	assert.Equal(t, consts.RoleStudent, rep.Role)
	assert.NotEmpty(t, rep.AccessToken)
	assert.NotEmpty(t, rep.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newUserFixture(t)
	req := &model.RegisterReq{Email: "alice@campus.edu", Password: "x", Name: "Alice"}

	require.NoError(t, f.logic.Register(req))
	assert.ErrorIs(t, f.logic.Register(req), ErrEmailExists)
}

func TestLoginFailures(t *testing.T) {
	f := newUserFixture(t)
	require.NoError(t, f.logic.Register(&model.RegisterReq{
		Email: "alice@campus.edu", Password: "s3cret", Name: "Alice",
	}))

	_, err := f.logic.Login(&model.LoginReq{Email: "alice@campus.edu", Password: "wrong"}, f.auth)
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = f.logic.Login(&model.LoginReq{Email: "nobody@campus.edu", Password: "x"}, f.auth)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinCollegeByInviteCode(t *testing.T) {
	f := newUserFixture(t)
	super := authz.Actor{UserId: "root", Role: consts.RoleSuperAdmin}

	college, err := f.collegeLogic.AddCollege(super, &model.AddCollegeReq{Name: "Engineering"})
	require.NoError(t, err)
	require.NotEmpty(t, college.InviteCode)

	require.NoError(t, f.logic.Register(&model.RegisterReq{
		Email: "alice@campus.edu", Password: "x", Name: "Alice",
	}))
	user, err := f.userRepo.GetByEmail("alice@campus.edu")
	require.NoError(t, err)

	joined, err := f.logic.JoinCollege(user.UserId, college.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, college.CollegeId, joined.CollegeId)

	updated, err := f.userRepo.GetByUserId(user.UserId)
	require.NoError(t, err)
	assert.Equal(t, college.CollegeId, updated.CollegeId)
	// 冗余院名随加入一并写入
	assert.Equal(t, "Engineering", updated.CollegeName)

	_, err = f.logic.JoinCollege(user.UserId, "bogus-code")
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestRegisterWithInviteCode(t *testing.T) {
	f := newUserFixture(t)
	super := authz.Actor{UserId: "root", Role: consts.RoleSuperAdmin}

	college, err := f.collegeLogic.AddCollege(super, &model.AddCollegeReq{Name: "Science"})
	require.NoError(t, err)

	require.NoError(t, f.logic.Register(&model.RegisterReq{
		Email:      "bob@campus.edu",
		Password:   "x",
		Name:       "Bob",
		InviteCode: college.InviteCode,
	}))

	user, err := f.userRepo.GetByEmail("bob@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, college.CollegeId, user.CollegeId)
	assert.Equal(t, "Science", user.CollegeName)

	// 无效邀请码注册直接失败
	err = f.logic.Register(&model.RegisterReq{
		Email:      "carol@campus.edu",
		Password:   "x",
		Name:       "Carol",
		InviteCode: "bogus-code",
	})
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestAddCollegeRequiresSuperAdmin(t *testing.T) {
	f := newUserFixture(t)
	admin := authz.Actor{UserId: "a1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	_, err := f.collegeLogic.AddCollege(admin, &model.AddCollegeReq{Name: "Rogue"})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
}

func TestUpdateProfilePartial(t *testing.T) {
	f := newUserFixture(t)
	require.NoError(t, f.userRepo.AddUser(&model.User{
		UserId: "u1", Email: "a@campus.edu", Name: "Alice", Role: consts.RoleStudent,
		Major: "CS", Bio: "hello",
	}))

	require.NoError(t, f.logic.UpdateProfile("u1", &model.UpdateProfileReq{Major: "Math"}))

	user, err := f.userRepo.GetByUserId("u1")
	require.NoError(t, err)
	assert.Equal(t, "Math", user.Major)
	// 未提供的字段不动
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "hello", user.Bio)
}

func TestUploadProfilePhoto(t *testing.T) {
	f := newUserFixture(t)
	require.NoError(t, f.userRepo.AddUser(&model.User{
		UserId: "u1", Email: "a@campus.edu", Name: "Alice", Role: consts.RoleStudent,
	}))

	url, err := f.logic.UploadProfilePhoto("u1", "me.jpeg", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "/static/users/u1/profile_picture/profile_picture.jpeg", url)

	user, err := f.userRepo.GetByUserId("u1")
	require.NoError(t, err)
	assert.Equal(t, url, user.PhotoUrl)

	_, err = f.logic.UploadProfilePhoto("u1", "me.bmp", []byte("img"))
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestAssignRole(t *testing.T) {
	f := newUserFixture(t)
	require.NoError(t, f.userRepo.AddUser(&model.User{
		UserId: "u1", Email: "a@campus.edu", Role: consts.RoleStudent,
	}))
	super := authz.Actor{UserId: "root", Role: consts.RoleSuperAdmin}
	admin := authz.Actor{UserId: "a1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	assert.ErrorIs(t, f.logic.AssignRole(admin, "u1", consts.RoleCollegeAdmin), authz.ErrPermissionDenied)

	require.NoError(t, f.logic.AssignRole(super, "u1", consts.RoleCollegeAdmin))
	user, err := f.userRepo.GetByUserId("u1")
	require.NoError(t, err)
	assert.Equal(t, consts.RoleCollegeAdmin, user.Role)

	assert.Error(t, f.logic.AssignRole(super, "u1", "janitor"))
	assert.ErrorIs(t, f.logic.AssignRole(super, "missing", consts.RoleStudent), ErrNotFound)
}

func TestDeleteUserCascade(t *testing.T) {
	f := newUserFixture(t)
	require.NoError(t, f.userRepo.AddUser(&model.User{
		UserId: "u1", Email: "a@campus.edu", Role: consts.RoleStudent, CollegeId: "c1",
	}))
	owner := authz.Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}
	stranger := authz.Actor{UserId: "u2", Role: consts.RoleStudent, CollegeId: "c1"}
	collegeAdmin := authz.Actor{UserId: "a1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	// 他人无权删除，学院管理员也不行
	assert.ErrorIs(t, f.logic.DeleteUser(stranger, "u1"), authz.ErrPermissionDenied)
	assert.ErrorIs(t, f.logic.DeleteUser(collegeAdmin, "u1"), authz.ErrPermissionDenied)

	// 本人可删除
	require.NoError(t, f.logic.DeleteUser(owner, "u1"))
	_, err := f.userRepo.GetByUserId("u1")
	assert.Error(t, err)

	assert.ErrorIs(t, f.logic.DeleteUser(owner, "u1"), ErrNotFound)
}

func TestMeStats(t *testing.T) {
	f := newUserFixture(t)
	require.NoError(t, f.userRepo.AddUser(&model.User{
		UserId: "u1", Email: "a@campus.edu", Name: "Alice", Role: consts.RoleStudent, CollegeId: "c1",
	}))

	eventRepo := repo.NewEventRepo(f.db)
	require.NoError(t, eventRepo.AddEvent(&model.Event{EventId: "e1", OwnerId: "u1", CollegeId: "c1"}))
	require.NoError(t, eventRepo.AddParticipation("e1", "u1"))
	// 同场活动的另外两人算 buddy，各自重复参加也只计一次
	require.NoError(t, eventRepo.AddParticipation("e1", "u2"))
	require.NoError(t, eventRepo.AddParticipation("e1", "u3"))
	require.NoError(t, eventRepo.AddEvent(&model.Event{EventId: "e2", OwnerId: "u2", CollegeId: "c1"}))
	require.NoError(t, eventRepo.AddParticipation("e2", "u1"))
	require.NoError(t, eventRepo.AddParticipation("e2", "u2"))

	rep, err := f.logic.Me("u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rep.EventCount)
	assert.EqualValues(t, 2, rep.ParticipateCount)
	assert.EqualValues(t, 0, rep.ItemCount)
	assert.EqualValues(t, 2, rep.BuddyCount)
}
