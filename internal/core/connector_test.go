package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/model"
)

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setup_connector.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/bash\nexit 0\n"), 0o755))
	return path
}

func expectLogInsert(db *mockDB) {
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
}

// ---------- Install ----------

func TestConnectorInstall(t *testing.T) {
	db := &mockDB{}
	runner := &mockRunner{}
	script := writeScript(t)
	svc := NewConnectorService(db, runner, &config.Config{ConnectorScript: script})
	ctx := context.Background()

	runner.On("Run", ctx, []string{"bash", script, "tunnel-token"}, installTimeout).Return(model.ExecutionResult{
		Command: "bash " + script + " tunnel-token", Stdout: "installed", ReturnCode: 0,
	}, nil)
	expectLogInsert(db)

	result, err := svc.Install(ctx, "tunnel-token")
	require.NoError(t, err)
	assert.Equal(t, model.LogStatusSuccess, result.Status)
	assert.Equal(t, "installed", result.Stdout)
	db.AssertNumberOfCalls(t, "Exec", 1)
}

func TestConnectorInstall_EmptyToken(t *testing.T) {
	runner := &mockRunner{}
	svc := NewConnectorService(&mockDB{}, runner, &config.Config{ConnectorScript: writeScript(t)})

	_, err := svc.Install(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectorInstall_ScriptMissing(t *testing.T) {
	runner := &mockRunner{}
	svc := NewConnectorService(&mockDB{}, runner, &config.Config{ConnectorScript: "/nonexistent/setup.sh"})

	_, err := svc.Install(context.Background(), "tunnel-token")
	assert.ErrorIs(t, err, ErrConfiguration)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

// ---------- RunStatusChecks ----------

func TestConnectorRunStatusChecks(t *testing.T) {
	db := &mockDB{}
	runner := &mockRunner{}
	svc := NewConnectorService(db, runner, &config.Config{})
	ctx := context.Background()

	runner.On("Run", ctx, []string{"cloudflared", "--version"}, checkTimeout).Return(model.ExecutionResult{
		Command: "cloudflared --version", Stdout: "cloudflared version 2026.8.0", ReturnCode: 0,
	}, nil)
	runner.On("Run", ctx, []string{"/bin/sh", "-c", "ps -eo pid,cmd | grep cloudflared"}, checkTimeout).Return(model.ExecutionResult{
		Command: "/bin/sh -c 'ps -eo pid,cmd | grep cloudflared'", ReturnCode: 1,
	}, nil)
	expectLogInsert(db)

	results, err := svc.RunStatusChecks(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, model.LogStatusSuccess, results[0].Status)
	// grep finding nothing is an error-status outcome, not a failure.
	assert.Equal(t, model.LogStatusError, results[1].Status)
	db.AssertNumberOfCalls(t, "Exec", 2)
}

// ---------- RunCustom ----------

func TestConnectorRunCustom(t *testing.T) {
	db := &mockDB{}
	runner := &mockRunner{}
	svc := NewConnectorService(db, runner, &config.Config{})
	ctx := context.Background()

	runner.On("Run", ctx, []string{"/bin/sh", "-c", "systemctl status cloudflared"}, installTimeout).Return(model.ExecutionResult{
		Command: "/bin/sh -c 'systemctl status cloudflared'", Stdout: "active (running)", ReturnCode: 0,
	}, nil)

	var logged []any
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		logged = args
		return true
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	result, err := svc.RunCustom(ctx, "systemctl status cloudflared")
	require.NoError(t, err)
	assert.Equal(t, model.LogStatusSuccess, result.Status)

	require.Len(t, logged, 4)
	assert.Equal(t, "/bin/sh -c 'systemctl status cloudflared'", logged[0])
	assert.Equal(t, "active (running)", logged[1])
	assert.Equal(t, model.LogStatusSuccess, logged[3])
}

func TestConnectorRunCustom_Blank(t *testing.T) {
	runner := &mockRunner{}
	svc := NewConnectorService(&mockDB{}, runner, &config.Config{})

	_, err := svc.RunCustom(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectorRunCustom_NonZeroExit(t *testing.T) {
	db := &mockDB{}
	runner := &mockRunner{}
	svc := NewConnectorService(db, runner, &config.Config{})
	ctx := context.Background()

	runner.On("Run", ctx, mock.Anything, installTimeout).Return(model.ExecutionResult{
		Command: "/bin/sh -c 'false'", Stderr: "boom", ReturnCode: 1,
	}, nil)
	expectLogInsert(db)

	result, err := svc.RunCustom(ctx, "false")
	require.NoError(t, err)
	assert.Equal(t, model.LogStatusError, result.Status)
	assert.Equal(t, 1, result.ReturnCode)
}

func TestConnectorRunCustom_TimeoutIsLogged(t *testing.T) {
	db := &mockDB{}
	runner := &mockRunner{}
	svc := NewConnectorService(db, runner, &config.Config{})
	ctx := context.Background()

	runner.On("Run", ctx, mock.Anything, installTimeout).Return(model.ExecutionResult{
		Command: "/bin/sh -c 'sleep 600'",
	}, fmt.Errorf("%w: command exceeded %s", ErrProcessTimeout, installTimeout))

	var logged []any
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		logged = args
		return true
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	_, err := svc.RunCustom(ctx, "sleep 600")
	assert.ErrorIs(t, err, ErrProcessTimeout)
	// The timed-out attempt still leaves an audit entry.
	require.Len(t, logged, 4)
	assert.Equal(t, model.LogStatusError, logged[3])
	assert.NotEmpty(t, logged[2])
}

// ---------- RecentLogs ----------

func TestConnectorRecentLogs(t *testing.T) {
	db := &mockDB{}
	svc := NewConnectorService(db, &mockRunner{}, &config.Config{})
	ctx := context.Background()

	now := time.Now()
	logRow := func(id int64, command, status string) func(dest ...any) error {
		return func(dest ...any) error {
			*(dest[0].(*int64)) = id
			*(dest[1].(*string)) = command
			*(dest[2].(*string)) = ""
			*(dest[3].(*string)) = ""
			*(dest[4].(*string)) = status
			*(dest[5].(*time.Time)) = now
			return nil
		}
	}

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		return len(args) == 1 && args[0] == 10
	})).Return(newMockRows(
		logRow(2, "cloudflared --version", "success"),
		logRow(1, "bash setup.sh ***", "error"),
	), nil)

	logs, err := svc.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(2), logs[0].ID)
	assert.Equal(t, model.LogStatusSuccess, logs[0].Status)
}

func TestConnectorRecentLogs_DefaultLimit(t *testing.T) {
	db := &mockDB{}
	svc := NewConnectorService(db, &mockRunner{}, &config.Config{})
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		return len(args) == 1 && args[0] == DefaultLogLimit
	})).Return(newEmptyMockRows(), nil)

	_, err := svc.RecentLogs(ctx, 0)
	require.NoError(t, err)
	db.AssertExpectations(t)
}
