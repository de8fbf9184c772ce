package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/model"
)

// DefaultLogLimit is used when the caller does not pick a log page size.
const DefaultLogLimit = 50

const (
	installTimeout = 120 * time.Second
	checkTimeout   = 15 * time.Second
)

// CommandRunner executes external commands. Implemented by runner.ExecRunner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, timeout time.Duration) (model.ExecutionResult, error)
	RunShell(ctx context.Context, raw string, timeout time.Duration) (model.ExecutionResult, error)
}

// statusCheckCommands is the fixed diagnostic sequence: connector version,
// then a process-list filter.
var statusCheckCommands = [][]string{
	{"cloudflared", "--version"},
	{"/bin/sh", "-c", "ps -eo pid,cmd | grep cloudflared"},
}

// ConnectorService manages the tunnel connector's lifecycle and writes every
// execution to the append-only connector log.
type ConnectorService struct {
	db     DB
	runner CommandRunner
	cfg    *config.Config
}

func NewConnectorService(db DB, runner CommandRunner, cfg *config.Config) *ConnectorService {
	return &ConnectorService{db: db, runner: runner, cfg: cfg}
}

// Install runs the connector install script with the tunnel token as its
// sole sensitive argument.
func (s *ConnectorService) Install(ctx context.Context, token string) (model.ExecutionResult, error) {
	if token == "" {
		return model.ExecutionResult{}, fmt.Errorf("%w: tunnel token must not be empty", ErrValidation)
	}
	if _, err := os.Stat(s.cfg.ConnectorScript); err != nil {
		return model.ExecutionResult{}, fmt.Errorf("%w: connector script not found: %s", ErrConfiguration, s.cfg.ConnectorScript)
	}
	return s.runAndLog(ctx, []string{"bash", s.cfg.ConnectorScript, token}, installTimeout)
}

// RunStatusChecks executes the fixed diagnostic sequence. A failing check
// does not stop the ones after it; each outcome is reported individually.
func (s *ConnectorService) RunStatusChecks(ctx context.Context) ([]model.ExecutionResult, error) {
	results := make([]model.ExecutionResult, 0, len(statusCheckCommands))
	for _, argv := range statusCheckCommands {
		result, err := s.runAndLog(ctx, argv, checkTimeout)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// RunCustom passes a raw command line to the shell. This is a privileged
// administrative operation; the audit log entry is the accountability
// mechanism.
func (s *ConnectorService) RunCustom(ctx context.Context, rawCommand string) (model.ExecutionResult, error) {
	if strings.TrimSpace(rawCommand) == "" {
		return model.ExecutionResult{}, fmt.Errorf("%w: command must not be empty", ErrValidation)
	}
	return s.runAndLog(ctx, []string{"/bin/sh", "-c", rawCommand}, installTimeout)
}

// RecentLogs returns the newest log entries first.
func (s *ConnectorService) RecentLogs(ctx context.Context, limit int) ([]model.ConnectorLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, command, stdout, stderr, status, created_at
		 FROM connector_logs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list connector logs: %w", err)
	}
	defer rows.Close()

	var logs []model.ConnectorLog
	for rows.Next() {
		var entry model.ConnectorLog
		if err := rows.Scan(&entry.ID, &entry.Command, &entry.Stdout, &entry.Stderr, &entry.Status, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan connector log: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connector logs: %w", err)
	}
	return logs, nil
}

// runAndLog executes argv and appends the outcome to the connector log
// before returning it. Timeouts are logged too, with an error status, so the
// audit trail shows the attempt.
func (s *ConnectorService) runAndLog(ctx context.Context, argv []string, timeout time.Duration) (model.ExecutionResult, error) {
	result, err := s.runner.Run(ctx, argv, timeout)
	if err != nil {
		if errors.Is(err, ErrProcessTimeout) {
			result.Status = model.LogStatusError
			if result.Stderr == "" {
				result.Stderr = err.Error()
			}
			if logErr := s.appendLog(ctx, result); logErr != nil {
				return model.ExecutionResult{}, fmt.Errorf("log timed-out command: %w", logErr)
			}
		}
		return model.ExecutionResult{}, err
	}

	result.Status = model.LogStatusError
	if result.ReturnCode == 0 {
		result.Status = model.LogStatusSuccess
	}

	if err := s.appendLog(ctx, result); err != nil {
		return model.ExecutionResult{}, err
	}
	return result, nil
}

func (s *ConnectorService) appendLog(ctx context.Context, result model.ExecutionResult) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO connector_logs (command, stdout, stderr, status, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		result.Command, result.Stdout, result.Stderr, result.Status,
	)
	if err != nil {
		return fmt.Errorf("append connector log: %w", err)
	}
	return nil
}
