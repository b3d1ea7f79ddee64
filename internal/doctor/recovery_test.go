package doctor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/config"
)

func TestJournalCheck(t *testing.T) {
	dir := t.TempDir()

	ok := (&JournalCheck{Path: filepath.Join(dir, "restart.log")}).Run()
	assert.Equal(t, StatusPass, ok.Status)

	check := &JournalCheck{Path: filepath.Join(dir, "sub", "restart.log")}
	missing := check.Run()
	assert.Equal(t, StatusFail, missing.Status)
	assert.True(t, missing.Fixable)

	require.NoError(t, check.Fix())
	assert.DirExists(t, filepath.Join(dir, "sub"))
	assert.Equal(t, StatusPass, check.Run().Status)
}

func TestNewRecoveryChecks(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Len(t, NewRecoveryChecks(cfg), 1)

	cfg.Recovery.Enabled = false
	assert.Empty(t, NewRecoveryChecks(cfg))
}
