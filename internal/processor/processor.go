package processor

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"battery-analyzer/internal/types"

	"github.com/google/uuid"
)

const (
	// DefaultScript is the processing program used when none is configured
	DefaultScript = "../main.py"

	// SuccessMarker prefixes the output of a successful run
	SuccessMarker = "✅ Processing finished!"
)

// Options configures how the external program is located and started
type Options struct {
	// Interpreter runs Script; when empty Script is executed directly
	Interpreter string
	// Script is resolved relative to the working directory
	Script      string
	Logger      *slog.Logger
}

// Result of a successful run
type Result struct {
	RunID    string        `json:"run_id"`
	Command  []string      `json:"command"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Output is the user-facing text: the success marker followed by standard output.
func (r Result) Output() string {
	return SuccessMarker + "\n\n" + r.Stdout
}

// Processor launches the external processing program. At most one run is in flight at a time.
type Processor struct {
	interpreter string
	script      string
	log         *slog.Logger
	running     atomic.Bool
}

// New returns a Processor for opts, filling in the default script and logger
func New(opts Options) *Processor {
	if opts.Script == "" {
		opts.Script = DefaultScript
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Processor{
		interpreter: opts.Interpreter,
		script:      opts.Script,
		log:         opts.Logger.With("component", "processor"),
	}
}

// Running reports whether a run is currently in flight
func (p *Processor) Running() bool {
	return p.running.Load()
}

// CommandLine returns the full command Run would execute for cfg
func (p *Processor) CommandLine(cfg types.ProcessConfig) []string {
	command := make([]string, 0, 22)
	if p.interpreter != "" {
		command = append(command, p.interpreter)
	}

	command = append(command, p.launchPath())

	return append(command, BuildArgs(cfg)...)
}

// Run validates the folders, starts the external program and waits for it to exit.
func (p *Processor) Run(cfg types.ProcessConfig) (Result, error) {
	if !p.running.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer p.running.Store(false)

	if _, err := os.Stat(cfg.InputFolder); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInputMissing, cfg.InputFolder)
	}

	outputFolder := cfg.EffectiveOutputFolder()

	err := os.MkdirAll(outputFolder, 0755)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOutputCreate, err)
	}

	if _, err := os.Stat(p.script); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrScriptMissing, p.script)
	}

	command := p.CommandLine(cfg)
	result := Result{
		RunID:   uuid.New().String(),
		Command: command,
	}

	log := p.log.With("run_id", result.RunID)
	log.Info("Starting processing script", "input_folder", cfg.InputFolder, "output_folder", outputFolder)

	var stdout, stderr bytes.Buffer

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	result.Duration = time.Since(start)
	result.Stdout = decode(stdout.Bytes())
	result.Stderr = decode(stderr.Bytes())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Info("Processing script finished", "exit_code", exitErr.ExitCode(), "duration", result.Duration)

			return Result{}, &ExternalError{ExitCode: exitErr.ExitCode(), Stderr: result.Stderr}
		}

		return Result{}, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	log.Info("Processing script finished", "exit_code", 0, "duration", result.Duration)

	return result, nil
}

// launchPath keeps a bare script name pointing at the working directory.
// exec would otherwise look it up in PATH when no interpreter runs it.
func (p *Processor) launchPath() string {
	if p.interpreter == "" && filepath.Base(p.script) == p.script {
		return "." + string(filepath.Separator) + p.script
	}

	return p.script
}

func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
