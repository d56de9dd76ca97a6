package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAdminAction(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "admin.log")
	a := NewLogger(logPath)

	a.LogAdminAction("switch_camera", "10.0.0.1", map[string]interface{}{
		"room_name":      "room-abc123def",
		"participant_id": "p42",
	}, nil)
	a.LogAdminAction("list_meetings", "10.0.0.2", nil, errors.New("store unavailable"))

	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "switch_camera", first["action"])
	assert.Equal(t, "10.0.0.1", first["source_ip"])
	assert.Equal(t, "success", first["result"])
	assert.Equal(t, "room-abc123def", first["room_name"])
	assert.NotEmpty(t, first["timestamp"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "failed", second["result"])
	assert.Equal(t, "store unavailable", second["error_message"])
}
