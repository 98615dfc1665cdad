package cli

import (
	"encoding/json"
	"testing"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetServerFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		addProvider, addHostname, addUsername, addPassword, addAPIToken, addOrgID = "", "", "", "", "", ""
		addPort = 0
		addInsecure, addDefault, forceRemoveServer = false, false, false
	}
	reset()
	t.Cleanup(reset)
}

func TestRunServersList(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		h := NewTestHelper(t)
		h.AddServer(&config.Server{Name: "enhance1", Provider: config.ProviderEnhance, Hostname: "cp.example.com", APIToken: "T"})

		out := captureStdout(t, func() {
			require.NoError(t, runServersList(newTestCmd(), nil))
		})
		assert.Contains(t, out, "whm.example.com")
		assert.Contains(t, out, "2087")
		assert.Contains(t, out, "enhance requires api_token and org_id")
	})

	t.Run("json", func(t *testing.T) {
		h := NewTestHelper(t)
		h.AddServer(&config.Server{Name: "plesk1", Provider: config.ProviderPlesk, Hostname: "plesk.example.com", APIToken: "K"})
		jsonOutput = true

		out := captureStdout(t, func() {
			require.NoError(t, runServersList(newTestCmd(), nil))
		})
		var items []serverListItem
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		require.Len(t, items, 2)
		assert.Equal(t, "plesk1", items[0].Name)
		assert.Equal(t, 8443, items[0].Port)
		assert.False(t, items[0].Default)
		assert.Equal(t, "whm1", items[1].Name)
		assert.True(t, items[1].Default)
		assert.True(t, items[1].Valid)
	})

	t.Run("empty", func(t *testing.T) {
		h := NewTestHelper(t)
		h.MockConfig.Cfg = config.New()

		out := captureStdout(t, func() {
			require.NoError(t, runServersList(newTestCmd(), nil))
		})
		assert.Contains(t, out, "No servers configured")
	})
}

func TestRunServersAdd(t *testing.T) {
	tests := []struct {
		name        string
		args        string
		setup       func()
		passwords   []string
		errContains string
		validate    func(t *testing.T, h *TestHelper, prompts []string)
	}{
		{
			name: "token flag",
			args: "whm2",
			setup: func() {
				addProvider, addHostname, addUsername, addAPIToken = "whm", "whm2.example.com", "root", "TOK"
			},
			validate: func(t *testing.T, h *TestHelper, prompts []string) {
				srv := h.GetConfig().Servers["whm2"]
				require.NotNil(t, srv)
				assert.Equal(t, "TOK", srv.APIToken)
				assert.Empty(t, prompts)
				assert.Equal(t, "whm1", h.GetConfig().DefaultServer)
				assert.Equal(t, 1, h.MockConfig.SaveCalls)
			},
		},
		{
			name: "prompted token and default",
			args: "enhance1",
			setup: func() {
				addProvider, addHostname, addOrgID = "enhance", "cp.example.com", "4e7c0000-0000-4000-8000-000000000001"
				addDefault = true
			},
			passwords: []string{"PROMPTED"},
			validate: func(t *testing.T, h *TestHelper, prompts []string) {
				srv := h.GetConfig().Servers["enhance1"]
				require.NotNil(t, srv)
				assert.Equal(t, "PROMPTED", srv.APIToken)
				assert.Equal(t, []string{"API token: "}, prompts)
				assert.Equal(t, "enhance1", h.GetConfig().DefaultServer)
			},
		},
		{
			name: "plesk password prompt",
			args: "plesk1",
			setup: func() {
				addProvider, addHostname, addUsername = "plesk", "plesk.example.com", "admin"
			},
			passwords: []string{"s3cret"},
			validate: func(t *testing.T, h *TestHelper, prompts []string) {
				srv := h.GetConfig().Servers["plesk1"]
				require.NotNil(t, srv)
				assert.Equal(t, "s3cret", srv.Password)
				assert.Empty(t, srv.APIToken)
				assert.Equal(t, []string{"Password: "}, prompts)
			},
		},
		{
			name: "duplicate",
			args: "whm1",
			setup: func() {
				addProvider, addHostname, addUsername, addAPIToken = "whm", "other.example.com", "root", "TOK"
			},
			errContains: "server whm1 already exists",
		},
		{
			name: "invalid provider does not prompt",
			args: "x",
			setup: func() {
				addProvider, addHostname = "cpanel", "x.example.com"
			},
			errContains: "invalid provider",
		},
		{
			name: "missing org id",
			args: "enhance1",
			setup: func() {
				addProvider, addHostname, addAPIToken = "enhance", "cp.example.com", "TOK"
			},
			errContains: "enhance requires api_token and org_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t)
			resetServerFlags(t)
			tt.setup()
			reader := h.SetPasswords(tt.passwords...)

			var err error
			out := captureStdout(t, func() {
				err = runServersAdd(newTestCmd(), []string{tt.args})
			})

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Zero(t, h.MockConfig.SaveCalls)
				assert.Empty(t, reader.Prompts)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Server "+tt.args+" added")
			tt.validate(t, h, reader.Prompts)
		})
	}
}

func TestRunServersRemove(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		force       bool
		stdin       []string
		wantRemoved bool
		errContains string
	}{
		{name: "force", target: "whm1", force: true, wantRemoved: true},
		{name: "confirmed", target: "whm1", stdin: []string{"y\n"}, wantRemoved: true},
		{name: "cancelled", target: "whm1", stdin: []string{"n\n"}},
		{name: "unknown", target: "nope", force: true, errContains: "server nope not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t)
			resetServerFlags(t)
			h.SetStdinInput(tt.stdin...)
			forceRemoveServer = tt.force

			var err error
			captureStdout(t, func() {
				err = runServersRemove(newTestCmd(), []string{tt.target})
			})

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			_, exists := h.GetConfig().Servers["whm1"]
			assert.Equal(t, !tt.wantRemoved, exists)
			if tt.wantRemoved {
				assert.Empty(t, h.GetConfig().DefaultServer)
				assert.Equal(t, 1, h.MockConfig.SaveCalls)
			} else {
				assert.Zero(t, h.MockConfig.SaveCalls)
			}
		})
	}
}

func TestRunServersDefault(t *testing.T) {
	h := NewTestHelper(t)
	h.AddServer(&config.Server{Name: "plesk1", Provider: config.ProviderPlesk, Hostname: "plesk.example.com", APIToken: "K"})

	out := captureStdout(t, func() {
		require.NoError(t, runServersDefault(newTestCmd(), []string{"plesk1"}))
	})
	assert.Contains(t, out, "Default server set to plesk1")
	assert.Equal(t, "plesk1", h.GetConfig().DefaultServer)

	err := runServersDefault(newTestCmd(), []string{"nope"})
	require.Error(t, err)
	assert.Equal(t, "plesk1", h.GetConfig().DefaultServer)
}
