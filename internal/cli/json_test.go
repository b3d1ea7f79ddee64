package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

func TestErrorToJSON(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantMsg    string
		wantSuggst string
	}{
		{
			name:       "coded error",
			err:        errors.New(errors.ErrConfig, "poll_interval is too short", "Use at least 1s"),
			wantCode:   "CONFIG",
			wantMsg:    "poll_interval is too short",
			wantSuggst: "Use at least 1s",
		},
		{
			name:     "wrapped coded error keeps the cause on one line",
			err:      errors.WrapWithCode(stderrors.New("permission denied"), errors.ErrService, "Couldn't install the service", ""),
			wantCode: "SERVICE",
			wantMsg:  "Couldn't install the service: permission denied",
		},
		{
			name:     "plain error",
			err:      stderrors.New("boom"),
			wantCode: ErrCodeUnknown,
			wantMsg:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorToJSON(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Equal(t, tt.wantSuggst, got.Suggestion)
		})
	}

	assert.Nil(t, ErrorToJSON(nil))
}

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"state": "healthy"}))

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, true, env["success"])
	assert.Equal(t, map[string]interface{}{"state": "healthy"}, env["data"])
	assert.NotContains(t, env, "error")
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONFromError(&buf, errors.New(errors.ErrExec, "'iwconfig' not found in PATH", "")))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EXEC", env.Error.Code)
}
