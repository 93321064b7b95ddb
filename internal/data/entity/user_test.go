package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		r, err := ParseRole("admin")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, r)

		_, err = ParseRole("superuser")
		assert.Error(t, err)
	})

	t.Run("json uses the role name", func(t *testing.T) {
		b, err := json.Marshal(struct {
			Role Role `json:"role"`
		}{RoleUser})
		require.NoError(t, err)
		assert.JSONEq(t, `{"role":"user"}`, string(b))

		_, err = json.Marshal(RoleUnknown)
		assert.Error(t, err)
	})

	t.Run("only admin is admin", func(t *testing.T) {
		assert.True(t, Principal{Role: RoleAdmin}.IsAdmin())
		assert.False(t, Principal{Role: RoleUser}.IsAdmin())
		assert.False(t, Principal{}.IsAdmin())
	})
}
