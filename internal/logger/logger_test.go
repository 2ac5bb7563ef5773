package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"staff-backoffice-backend/internal/identity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() { logrus.SetOutput(original) })
	return &buf
}

func TestWithContextAddsIdentity(t *testing.T) {
	buf := captureOutput(t)

	id := &identity.Identity{UserID: uuid.New(), TenantID: uuid.New()}
	ctx := identity.WithIdentity(context.Background(), id)

	WithContext(ctx).WithField("op", "login").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id.UserID.String(), entry["user"])
	assert.Equal(t, id.TenantID.String(), entry["tenant_id"])
	assert.Equal(t, "login", entry["op"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestWithContextAnonymous(t *testing.T) {
	buf := captureOutput(t)

	WithContext(context.Background()).Info("hi")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "anonymous", entry["user"])
	assert.NotContains(t, entry, "trace_id")
}

func TestSetupLevel(t *testing.T) {
	Setup("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Setup("nonsense")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
