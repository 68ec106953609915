package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		need  Permission
		want  bool
	}{
		{"admin has everything", []string{"admin"}, PermInvoiceDelete, true},
		{"member manages invoices", []string{"member"}, PermInvoiceManage, true},
		{"member cannot delete invoices", []string{"member"}, PermInvoiceDelete, false},
		{"member wildcard on tasks", []string{"member"}, PermTaskManage, true},
		{"member cannot manage users", []string{"member"}, PermUserManage, false},
		{"client sees the portal", []string{"client"}, PermPortalView, true},
		{"client cannot list clients", []string{"client"}, PermClientView, false},
		{"unknown role", []string{"guest"}, PermPortalView, false},
		{"no roles", nil, PermPortalView, false},
		{"union of roles", []string{"client", "member"}, PermProjectManage, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.roles, tt.need))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, match("task:*", "task:view"))
	assert.True(t, match("task:*", "task:comment:create"))
	assert.False(t, match("task:*", "invoice:view"))
	// the first grant not matching must not hide later grants
	assert.True(t, allow([]Permission{"client:view", "invoice:view"}, "invoice:view"))
	assert.False(t, match("invoice:view:extra", "invoice:view"))
	assert.False(t, match("invoice", "invoice:view"))
}
