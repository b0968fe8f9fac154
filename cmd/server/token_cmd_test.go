package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"werkshift/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCmd_IssuesParsableToken(t *testing.T) {
	// Arrange
	t.Setenv("JWT_SECRET", "token-cmd-secret")
	t.Setenv("APP_ENV", "test")
	id := uuid.New()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--role", "werker", "--id", id.String()})

	// Act
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "actor_id="+id.String(), lines[0])

	actor, err := auth.NewTokenIssuer("token-cmd-secret", time.Hour).Parse(lines[1])
	require.NoError(t, err)
	assert.Equal(t, id, actor.ID)
	assert.Equal(t, auth.RoleWerker, actor.Role)
}

func TestTokenCmd_RejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "token-cmd-secret")
	t.Setenv("APP_ENV", "test")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token", "--role", "admin"})

	assert.Error(t, cmd.Execute())
}

func TestRootCmd_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "test")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token"})

	assert.Error(t, cmd.Execute())
}
