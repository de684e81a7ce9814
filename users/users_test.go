package users

import (
	"testing"

	"silpa/apperr"
	"silpa/models"

	"github.com/stretchr/testify/assert"
)

func TestCanManage(t *testing.T) {
	// God manages every tier.
	assert.True(t, CanManage(models.RoleGod, models.RoleUser))
	assert.True(t, CanManage(models.RoleGod, models.RoleAdmin))
	assert.True(t, CanManage(models.RoleGod, models.RoleGod))

	// Regular admins manage plain users only.
	assert.True(t, CanManage(models.RoleAdmin, models.RoleUser))
	assert.False(t, CanManage(models.RoleAdmin, models.RoleAdmin))
	assert.False(t, CanManage(models.RoleAdmin, models.RoleGod))

	assert.False(t, CanManage(models.RoleUser, models.RoleUser))
}

func TestCanGrant(t *testing.T) {
	assert.True(t, CanGrant(models.RoleAdmin, models.RoleUser))
	assert.False(t, CanGrant(models.RoleAdmin, models.RoleAdmin))
	assert.False(t, CanGrant(models.RoleAdmin, models.RoleGod))

	assert.True(t, CanGrant(models.RoleGod, models.RoleUser))
	assert.True(t, CanGrant(models.RoleGod, models.RoleAdmin))
	assert.True(t, CanGrant(models.RoleGod, models.RoleGod))

	assert.False(t, CanGrant(models.RoleUser, models.RoleUser))
}

func TestCheckDelete(t *testing.T) {
	// Self-delete is a conflict regardless of tier.
	err := CheckDelete("a1", models.RoleGod, "a1", models.RoleGod)
	assert.IsType(t, &apperr.ConflictError{}, err)

	// Admin deleting another admin is a tier violation.
	err = CheckDelete("a1", models.RoleAdmin, "a2", models.RoleAdmin)
	assert.IsType(t, &apperr.ForbiddenError{}, err)

	assert.NoError(t, CheckDelete("a1", models.RoleAdmin, "u1", models.RoleUser))
	assert.NoError(t, CheckDelete("g1", models.RoleGod, "a1", models.RoleAdmin))
}
