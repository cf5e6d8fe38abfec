package authz

import (
	"testing"

	"github.com/campus-connect/campus/internal/campus/consts"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizeSuperAdminAlwaysAllowed(t *testing.T) {
	actor := Actor{UserId: "u1", Role: consts.RoleSuperAdmin, CollegeId: ""}

	assert.NoError(t, Authorize(actor, AnyAuthenticated, ""))
	assert.NoError(t, Authorize(actor, CollegeAdminOrAbove, ""))
	assert.NoError(t, Authorize(actor, OwnerOrAdmin, "someone-else"))
}

func TestAuthorizeOwnerOrAdmin(t *testing.T) {
	student := Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}

	// 所有者本人可操作
	assert.NoError(t, Authorize(student, OwnerOrAdmin, "u1"))
	// 非所有者学生被拒绝
	assert.ErrorIs(t, Authorize(student, OwnerOrAdmin, "u9"), ErrPermissionDenied)
}

func TestAuthorizeOwnerOrAdminRejectsNonOwnerCollegeAdmin(t *testing.T) {
	// 学院管理员角色不能代替所有权，只有超级管理员绕过所有者比对
	admin := Actor{UserId: "a1", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	assert.ErrorIs(t, Authorize(admin, OwnerOrAdmin, "someone-else"), ErrPermissionDenied)

	// 管理员是所有者本人时正常放行
	assert.NoError(t, Authorize(admin, OwnerOrAdmin, "a1"))
}

func TestAuthorizeOwnerCheckBeforeRole(t *testing.T) {
	// 学生是所有者时不需要管理员角色
	actor := Actor{UserId: "owner", Role: consts.RoleStudent, CollegeId: "c1"}
	assert.NoError(t, Authorize(actor, OwnerOrAdmin, "owner"))
}

func TestAuthorizeCollegeAdminOrAbove(t *testing.T) {
	student := Actor{UserId: "u1", Role: consts.RoleStudent, CollegeId: "c1"}
	admin := Actor{UserId: "u2", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}

	assert.ErrorIs(t, Authorize(student, CollegeAdminOrAbove, ""), ErrPermissionDenied)
	assert.NoError(t, Authorize(admin, CollegeAdminOrAbove, ""))
}

func TestAuthorizeAdminRoleIgnoresCollege(t *testing.T) {
	// 角色判定不看学院归属，跨院数据由查询范围挡住
	admin := Actor{UserId: "u2", Role: consts.RoleCollegeAdmin, CollegeId: "c1"}
	assert.NoError(t, Authorize(admin, CollegeAdminOrAbove, ""))

	superAdmin := Actor{UserId: "root", Role: consts.RoleSuperAdmin}
	assert.NoError(t, Authorize(superAdmin, OwnerOrAdmin, "user-from-c2"))
}

func TestAuthorizeUnknownRoleDenied(t *testing.T) {
	actor := Actor{UserId: "u1", Role: "moderator", CollegeId: "c1"}
	assert.ErrorIs(t, Authorize(actor, CollegeAdminOrAbove, ""), ErrPermissionDenied)
	assert.ErrorIs(t, Authorize(actor, OwnerOrAdmin, "u9"), ErrPermissionDenied)
}

func TestRoleRank(t *testing.T) {
	assert.Greater(t, RoleRank(consts.RoleSuperAdmin), RoleRank(consts.RoleCollegeAdmin))
	assert.Greater(t, RoleRank(consts.RoleCollegeAdmin), RoleRank(consts.RoleStudent))
	assert.Equal(t, 0, RoleRank("unknown"))
}
