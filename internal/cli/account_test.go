package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInfo(t *testing.T) {
	h := NewTestHelper(t)
	h.MockProvider.GetInfoFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
		return &provision.AccountInfo{
			Username:    id.Username,
			Domain:      "example.com",
			PackageName: "Gold",
			Nameservers: []string{"ns1.example.com", "ns2.example.com"},
		}, nil
	}

	var err error
	out := captureStdout(t, func() {
		err = runInfo(newTestCmd(), []string{"bob"})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "ns1.example.com, ns2.example.com")
	assert.Equal(t, []provision.AccountIdentity{{Username: "bob"}}, h.MockProvider.GetInfoCalls)
}

func TestRunInfoPassesIDFlags(t *testing.T) {
	h := NewTestHelper(t)
	customerID = "4e7c0000-0000-4000-8000-000000000001"
	subscriptionID = "42"

	captureStdout(t, func() {
		require.NoError(t, runInfo(newTestCmd(), []string{"bob@example.com"}))
	})

	require.Len(t, h.MockProvider.GetInfoCalls, 1)
	assert.Equal(t, provision.AccountIdentity{
		CustomerID:     "4e7c0000-0000-4000-8000-000000000001",
		SubscriptionID: "42",
		Username:       "bob@example.com",
	}, h.MockProvider.GetInfoCalls[0])
}

func TestRunInfoNotFound(t *testing.T) {
	h := NewTestHelper(t)
	h.MockProvider.GetInfoFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
		return nil, errors.NotFound("Account not found")
	}

	err := runInfo(newTestCmd(), []string{"ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestServerSelection(t *testing.T) {
	tests := []struct {
		name        string
		server      string
		setup       func(h *TestHelper)
		wantServer  string
		errContains string
	}{
		{
			name:       "default server",
			wantServer: "whm1",
		},
		{
			name:   "explicit server",
			server: "plesk1",
			setup: func(h *TestHelper) {
				h.AddServer(&config.Server{Name: "plesk1", Provider: config.ProviderPlesk, Hostname: "plesk.example.com", APIToken: "K"})
			},
			wantServer: "plesk1",
		},
		{
			name:        "unknown server",
			server:      "nope",
			errContains: "server nope not found",
		},
		{
			name: "no default among several",
			setup: func(h *TestHelper) {
				h.GetConfig().DefaultServer = ""
				h.AddServer(&config.Server{Name: "plesk1", Provider: config.ProviderPlesk, Hostname: "plesk.example.com", APIToken: "K"})
			},
			errContains: "no server selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t)
			if tt.setup != nil {
				tt.setup(h)
			}
			serverName = tt.server

			var err error
			captureStdout(t, func() {
				err = runInfo(newTestCmd(), []string{"bob"})
			})

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Empty(t, h.MockFactory.Servers)
				return
			}
			require.NoError(t, err)
			require.Len(t, h.MockFactory.Servers, 1)
			assert.Equal(t, tt.wantServer, h.MockFactory.Servers[0].Name)
		})
	}
}

func TestRunUsage(t *testing.T) {
	h := NewTestHelper(t)
	h.MockProvider.GetUsageFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.UsageData, error) {
		return &provision.UsageData{Usage: &provision.Usage{
			DiskMB: provision.NewUnitsConsumed(500, provision.Limit(2000)),
		}}, nil
	}

	t.Run("table", func(t *testing.T) {
		out := captureStdout(t, func() {
			require.NoError(t, runUsage(newTestCmd(), []string{"bob"}))
		})
		assert.Contains(t, out, "Disk (MB)")
		assert.Contains(t, out, "25%")
	})

	t.Run("json", func(t *testing.T) {
		jsonOutput = true
		defer func() { jsonOutput = false }()

		out := captureStdout(t, func() {
			require.NoError(t, runUsage(newTestCmd(), []string{"bob"}))
		})
		var data map[string]map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &data))
		assert.Equal(t, "25%", data["usage_data"]["disk_mb"]["used_pc"])
	})
}

func TestRunLoginURL(t *testing.T) {
	t.Run("prints url", func(t *testing.T) {
		h := NewTestHelper(t)
		loginIP = "203.0.113.9"
		loginOpen = false

		out := captureStdout(t, func() {
			require.NoError(t, runLoginURL(newTestCmd(), []string{"bob"}))
		})
		assert.Contains(t, out, "https://panel.example.com/login")
		require.Len(t, h.MockProvider.GetLoginURLCalls, 1)
		assert.Equal(t, "203.0.113.9", h.MockProvider.GetLoginURLCalls[0].UserIP)
		assert.Empty(t, h.MockExecutor.Calls)
	})

	t.Run("opens browser", func(t *testing.T) {
		h := NewTestHelper(t)
		loginIP = "203.0.113.9"
		loginOpen = true
		defer func() { loginOpen = false }()

		captureStdout(t, func() {
			require.NoError(t, runLoginURL(newTestCmd(), []string{"bob"}))
		})
		require.Len(t, h.MockExecutor.Calls, 1)
		assert.Contains(t, h.MockExecutor.Calls[0].Args, "https://panel.example.com/login")
	})

	t.Run("missing ip", func(t *testing.T) {
		h := NewTestHelper(t)
		loginIP = ""

		err := runLoginURL(newTestCmd(), []string{"bob"})
		assert.Equal(t, errors.CodeValidation, errors.CodeOf(err))
		assert.Empty(t, h.MockProvider.GetLoginURLCalls)
	})
}

func TestRunPassword(t *testing.T) {
	t.Run("flag", func(t *testing.T) {
		h := NewTestHelper(t)
		newPassword = "N3w!Passw0rd"
		defer func() { newPassword = "" }()

		out := captureStdout(t, func() {
			require.NoError(t, runPassword(newTestCmd(), []string{"bob"}))
		})
		assert.Contains(t, out, "Password changed for bob")
		require.Len(t, h.MockProvider.ChangePasswordCalls, 1)
		assert.Equal(t, "N3w!Passw0rd", h.MockProvider.ChangePasswordCalls[0].Password)
	})

	t.Run("prompt", func(t *testing.T) {
		h := NewTestHelper(t)
		newPassword = ""
		reader := h.SetPasswords("Typed!pw1", "Typed!pw1")

		captureStdout(t, func() {
			require.NoError(t, runPassword(newTestCmd(), []string{"bob"}))
		})
		assert.Equal(t, "Typed!pw1", h.MockProvider.ChangePasswordCalls[0].Password)
		assert.Equal(t, []string{"New password: ", "Confirm password: "}, reader.Prompts)
	})

	t.Run("empty prompt", func(t *testing.T) {
		h := NewTestHelper(t)
		newPassword = ""
		h.SetPasswords("")

		err := runPassword(newTestCmd(), []string{"bob"})
		assert.Equal(t, errors.CodeValidation, errors.CodeOf(err))
		assert.Empty(t, h.MockProvider.ChangePasswordCalls)
	})
}

func TestRunPackage(t *testing.T) {
	h := NewTestHelper(t)

	out := captureStdout(t, func() {
		require.NoError(t, runPackage(newTestCmd(), []string{"bob", "Platinum"}))
	})
	assert.Contains(t, out, "Account bob moved to package Platinum")
	require.Len(t, h.MockProvider.ChangePackageCalls, 1)
	assert.Equal(t, "Platinum", h.MockProvider.ChangePackageCalls[0].PackageName)
}

func TestRunSuspend(t *testing.T) {
	t.Run("suspends", func(t *testing.T) {
		h := NewTestHelper(t)
		suspendReason = "Unpaid"
		defer func() { suspendReason = "" }()

		out := captureStdout(t, func() {
			require.NoError(t, runSuspend(newTestCmd(), []string{"bob"}))
		})
		assert.Contains(t, out, "Account bob suspended")
		assert.Contains(t, out, "suspended (Unpaid)")
		require.Len(t, h.MockProvider.SuspendCalls, 1)
		assert.Equal(t, "Unpaid", h.MockProvider.SuspendCalls[0].Reason)
	})

	t.Run("already suspended", func(t *testing.T) {
		h := NewTestHelper(t)
		h.MockProvider.GetInfoFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
			return &provision.AccountInfo{Username: id.Username, Suspended: true}, nil
		}

		out := captureStdout(t, func() {
			require.NoError(t, runSuspend(newTestCmd(), []string{"bob"}))
		})
		assert.Contains(t, out, "Account already suspended")
		assert.NotContains(t, out, "Account bob suspended")
		assert.Empty(t, h.MockProvider.SuspendCalls)
	})
}

func TestRunUnsuspend(t *testing.T) {
	h := NewTestHelper(t)
	h.MockProvider.GetInfoFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
		return &provision.AccountInfo{Username: id.Username, Suspended: true}, nil
	}

	out := captureStdout(t, func() {
		require.NoError(t, runUnsuspend(newTestCmd(), []string{"bob"}))
	})
	assert.Contains(t, out, "Account bob unsuspended")
	assert.Len(t, h.MockProvider.UnsuspendCalls, 1)
}

func TestRunTerminate(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		stdin     []string
		wantCalls int
		wantOut   string
	}{
		{name: "force", force: true, wantCalls: 1, wantOut: "Account bob terminated"},
		{name: "confirmed", stdin: []string{"y\n"}, wantCalls: 1, wantOut: "Account bob terminated"},
		{name: "confirmed with yes", stdin: []string{"yes\n"}, wantCalls: 1},
		{name: "declined", stdin: []string{"n\n"}, wantCalls: 0, wantOut: "Termination cancelled"},
		{name: "empty answer", stdin: []string{"\n"}, wantCalls: 0},
		{name: "eof", stdin: nil, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t)
			h.SetStdinInput(tt.stdin...)
			forceTerminate = tt.force
			defer func() { forceTerminate = false }()

			out := captureStdout(t, func() {
				require.NoError(t, runTerminate(newTestCmd(), []string{"bob"}))
			})
			assert.Len(t, h.MockProvider.TerminateCalls, tt.wantCalls)
			if tt.wantOut != "" {
				assert.Contains(t, out, tt.wantOut)
			}
		})
	}
}

func TestRunReseller(t *testing.T) {
	t.Run("grant", func(t *testing.T) {
		h := NewTestHelper(t)
		out := captureStdout(t, func() {
			require.NoError(t, runResellerGrant(newTestCmd(), []string{"bob"}))
		})
		assert.Contains(t, out, "Account bob is now a reseller")
		assert.Len(t, h.MockProvider.GrantResellerCalls, 1)
	})

	t.Run("revoke json", func(t *testing.T) {
		h := NewTestHelper(t)
		jsonOutput = true

		out := captureStdout(t, func() {
			require.NoError(t, runResellerRevoke(newTestCmd(), []string{"bob"}))
		})
		assert.JSONEq(t, `{"reseller":false,"message":""}`, out)
		assert.Len(t, h.MockProvider.RevokeResellerCalls, 1)
	})

	t.Run("unsupported", func(t *testing.T) {
		h := NewTestHelper(t)
		h.MockProvider.GrantResellerFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.ResellerPrivileges, error) {
			return nil, errors.Unsupported("Reseller privileges are not supported by Plesk accounts")
		}

		err := runResellerGrant(newTestCmd(), []string{"bob"})
		assert.True(t, errors.Is(err, errors.ErrUnsupported))
	})
}

func TestRunWelcome(t *testing.T) {
	h := NewTestHelper(t)
	h.MockProvider.GetInfoFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
		return &provision.AccountInfo{
			Username:       id.Username,
			Domain:         "example.com",
			PackageName:    "Gold",
			ServerHostname: "whm.example.com",
		}, nil
	}
	welcomeIP = "203.0.113.9"
	defer func() { welcomeIP = "" }()

	out := captureStdout(t, func() {
		require.NoError(t, runWelcome(newTestCmd(), []string{"bob"}))
	})
	assert.Contains(t, out, "Username:  bob")
	assert.Contains(t, out, "Log in directly: https://panel.example.com/login")
	assert.Len(t, h.MockProvider.GetLoginURLCalls, 1)
}
