package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_BeforeCreate(t *testing.T) {
	t.Parallel()

	client := &Account{Email: "c@x.com"}
	require.NoError(t, client.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, client.ID)
	assert.Equal(t, RoleClient, client.Role)
	assert.Nil(t, client.PrivilegedSlot)

	admin := &Account{Email: "a@x.com", Role: RoleAdmin}
	require.NoError(t, admin.BeforeCreate(nil))
	require.NotNil(t, admin.PrivilegedSlot)
	assert.Equal(t, privilegedSlot, *admin.PrivilegedSlot)
}

func TestAccount_JSONHidesSecrets(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Account{Name: "A", Email: "a@x.com", PasswordHash: "secret-hash", Role: RoleAdmin})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")
	assert.NotContains(t, string(b), "privileged")
}

func TestEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, PermitHot.Valid())
	assert.False(t, PermitType("Cold").Valid())
	assert.True(t, StatusClosed.Valid())
	assert.False(t, PermitStatus("pending").Valid())
	assert.True(t, RoleClient.Valid())
	assert.False(t, Role("ROOT").Valid())
}

func TestPermit_MarshalJSON_CreatedBy(t *testing.T) {
	t.Parallel()

	owner := Account{ID: uuid.New(), Name: "Owner", Email: "o@x.com", Role: RoleClient, PasswordHash: "h"}
	p := Permit{
		ID:           uuid.New(),
		PermitNumber: "PTW-1",
		IssueDate:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		CreatedByID:  owner.ID,
	}

	var bare map[string]any
	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &bare))
	assert.Equal(t, owner.ID.String(), bare["createdBy"])
	assert.Equal(t, "PTW-1", bare["permitNumber"])

	p.CreatedBy = &owner
	var loaded map[string]any
	b, err = json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &loaded))
	creator, ok := loaded["createdBy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "o@x.com", creator["email"])
	assert.NotContains(t, string(b), `"h"`)
}
