package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestPrintUserTable(t *testing.T) {
	t.Parallel()

	group := model.NewGroup("eng")
	users := []*model.User{
		model.NewUser("jane@example.com", group),
		model.NewUser("john@example.com", nil),
	}

	var buf bytes.Buffer
	require.NoError(t, printUserTable(&buf, users))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.Contains(t, lines[1], "jane@example.com")
	require.Contains(t, lines[1], "eng")
	require.Contains(t, lines[2], "john@example.com")
	require.Contains(t, lines[2], "-")
	require.Equal(t, "2 user(s)", lines[4])
}

func TestPrintUser_JSON(t *testing.T) {
	t.Parallel()

	user := model.NewUser("jane@example.com", model.NewGroup("eng"))

	var buf bytes.Buffer
	require.NoError(t, printUser(&buf, user, true))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, user.ID.String(), decoded["id"])
	require.Equal(t, "jane@example.com", decoded["email"])
	require.Equal(t, "eng", decoded["group"].(map[string]any)["name"])
}

func TestPrintUser_WithoutGroupOmitsGroup(t *testing.T) {
	t.Parallel()

	user := model.NewUser("john@example.com", nil)

	var buf bytes.Buffer
	require.NoError(t, printUser(&buf, user, true))
	require.NotContains(t, buf.String(), `"group"`)

	buf.Reset()
	require.NoError(t, printUser(&buf, user, false))
	require.NotContains(t, buf.String(), "Group:")
	require.Contains(t, buf.String(), "Email:       john@example.com")
}

func TestPrintHealth(t *testing.T) {
	t.Parallel()

	report := &model.HealthReport{
		Status:    model.HealthStatusDegraded,
		Timestamp: time.Now().UTC(),
		Version:   "1.2.3",
		Checks: map[string]model.DependencyCheck{
			"postgres": {Status: model.DependencyStatusUp, LatencyMs: 2},
			"keydb":    {Status: model.DependencyStatusDown, Error: "connection refused"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printHealthTable(&buf, report))

	out := buf.String()
	require.Contains(t, out, "Status:   degraded")
	require.Less(t, strings.Index(out, "keydb"), strings.Index(out, "postgres"))
	require.Contains(t, out, "connection refused")

	buf.Reset()
	require.NoError(t, printJSON(&buf, toHealthView(report)))

	var decoded healthView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "degraded", decoded.Status)
	require.Equal(t, "down", decoded.Checks["keydb"].Status)
}
