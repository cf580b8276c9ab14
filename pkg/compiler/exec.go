package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/hostlists/pkg/constants"
	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/logging"
)

// DefaultCommand is the external hostlist compiler executable.
const DefaultCommand = "hostlist-compiler"

// Exec invokes an external compiler command for each filter list.
// The command is called as `<command> [args...] -c <configuration.json> -o <output>`
// and its combined output is captured for error reporting.
type Exec struct {
	Command string        // compiler executable, DefaultCommand if empty
	Args    []string      // extra arguments placed before the -c/-o pair
	Timeout time.Duration // per-list bound, constants.CompileTimeout if zero
}

// NewExec creates an external compiler invoking the given command.
func NewExec(command string) *Exec {
	if command == "" {
		command = DefaultCommand
	}
	return &Exec{Command: command}
}

// Compile runs the external compiler against dir's configuration.json and
// returns the compiled content. The compiler writes into a temporary file so
// the list directory is never touched on failure.
func (e *Exec) Compile(ctx context.Context, dir string) ([]byte, error) {
	command := e.Command
	if command == "" {
		command = DefaultCommand
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = constants.CompileTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	config := filepath.Join(dir, constants.ConfigurationFile)

	tmp, err := os.CreateTemp("", "hostlists-compile-*.txt")
	if err != nil {
		return nil, pkgerrors.WrapIO("create", "temporary compile output", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	args := make([]string, 0, len(e.Args)+4)
	args = append(args, e.Args...)
	args = append(args, "-c", config, "-o", tmpPath)

	logging.FromContext(ctx).Debug().
		Str("command", command).
		Str("config", config).
		Msg("Invoking external compiler")

	cmd := exec.CommandContext(ctx, command, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &pkgerrors.ProcessError{
			Operation: "compile filter list",
			Command:   command,
			Output:    strings.TrimSpace(output.String()),
			ExitCode:  exitCode,
			Err:       err,
		}
	}

	content, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", tmpPath, err)
	}
	return content, nil
}
