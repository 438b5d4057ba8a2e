package account_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tunefans/identity/internal/core/domain/account"
)

func TestVerificationCode_Valid_WithinWindow(t *testing.T) {
	c := &account.VerificationCode{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Code:      "4821",
		CreatedAt: time.Now().Add(-account.CodeTTL + time.Second),
	}
	assert.True(t, c.Valid(), "one second before the window closes the code is still usable")
}

func TestVerificationCode_Valid_ExpiredAtBoundary(t *testing.T) {
	c := &account.VerificationCode{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Code:      "4821",
		CreatedAt: time.Now().Add(-account.CodeTTL),
	}
	assert.False(t, c.Valid(), "a code aged exactly the full window is expired")
}

func TestVerificationCode_Valid_Expired(t *testing.T) {
	c := &account.VerificationCode{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Code:      "4821",
		CreatedAt: time.Now().Add(-account.CodeTTL - time.Second),
	}
	assert.False(t, c.Valid())
}

func TestVerificationCode_Valid_BypassNeverExpires(t *testing.T) {
	c := &account.VerificationCode{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Code:      account.BypassCode,
		CreatedAt: time.Now().Add(-365 * 24 * time.Hour),
	}
	assert.True(t, c.Valid())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "fan@tunefans.app", account.NormalizeEmail("  Fan@TuneFans.App "))
	assert.Equal(t, "", account.NormalizeEmail("   "))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, account.RoleFan.IsValid())
	assert.True(t, account.RoleArtist.IsValid())
	assert.False(t, account.Role("admin").IsValid())
	assert.False(t, account.Role("").IsValid())
}
