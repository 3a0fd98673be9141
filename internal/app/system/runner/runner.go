// Package runner launches local computer-vision demo scripts as OS
// processes and tracks them by project name.
//
// The registry is explicit, injected state: bootstrap constructs one and
// hands it to the vision feature. Only one process per project name runs
// at a time; starting a running project restarts it.
package runner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"go.uber.org/zap"
)

// Registry tracks spawned demo processes keyed by project name.
type Registry struct {
	scriptsDir string
	python     string
	log        *zap.Logger

	mu    sync.Mutex
	procs map[string]*os.Process

	// launch is replaceable in tests.
	launch func(scriptPath string) (*os.Process, error)
}

// New constructs a Registry that resolves scripts under scriptsDir and
// runs them with the given python interpreter ("python3" when empty).
func New(scriptsDir, python string, logger *zap.Logger) *Registry {
	if python == "" {
		python = "python3"
	}
	r := &Registry{
		scriptsDir: scriptsDir,
		python:     python,
		log:        logger,
		procs:      make(map[string]*os.Process),
	}
	r.launch = r.spawn
	return r
}

// Start resolves <scriptsDir>/<name>.py, stops any instance already
// running under this name, spawns the script detached, and records its
// pid. It returns the new pid.
func (r *Registry) Start(name string) (int, error) {
	path, err := r.resolve(name)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.procs[name]; ok {
		r.kill(name, old)
		delete(r.procs, name)
	}

	proc, err := r.launch(path)
	if err != nil {
		return 0, apierr.Storage(fmt.Sprintf("failed to start project %s", name), err)
	}
	r.procs[name] = proc
	r.log.Info("demo process started",
		zap.String("project", name),
		zap.Int("pid", proc.Pid))

	// Reap in the background so a script that exits on its own leaves
	// the registry once Stop is next attempted or the entry is reused.
	go func() {
		_, _ = proc.Wait()
		r.mu.Lock()
		if cur, ok := r.procs[name]; ok && cur.Pid == proc.Pid {
			delete(r.procs, name)
		}
		r.mu.Unlock()
	}()

	return proc.Pid, nil
}

// Stop kills the tracked process for name. It is a NotFound error when
// nothing is running under that name.
func (r *Registry) Stop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	proc, ok := r.procs[name]
	if !ok {
		return apierr.NotFound("no running process for this project")
	}
	r.kill(name, proc)
	delete(r.procs, name)
	return nil
}

// Running returns the names of all tracked projects.
func (r *Registry) Running() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.procs))
	for name := range r.procs {
		names = append(names, name)
	}
	return names
}

// StopAll kills every tracked process; called on shutdown.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, proc := range r.procs {
		r.kill(name, proc)
		delete(r.procs, name)
	}
}

// resolve maps a project name to a script path, rejecting names that
// would escape the scripts directory.
func (r *Registry) resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", apierr.Validation("invalid project name")
	}
	path := filepath.Join(r.scriptsDir, name+".py")
	if _, err := os.Stat(path); err != nil {
		return "", apierr.NotFound("project not found")
	}
	return path, nil
}

// spawn starts the script in its own process group so Stop can kill the
// script together with anything it forks.
func (r *Registry) spawn(scriptPath string) (*os.Process, error) {
	cmd := exec.Command(r.python, scriptPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Process, nil
}

func (r *Registry) kill(name string, proc *os.Process) {
	// Prefer killing the process group; fall back to the process itself.
	if err := syscall.Kill(-proc.Pid, syscall.SIGKILL); err != nil {
		if err := proc.Kill(); err != nil {
			r.log.Warn("failed to kill demo process",
				zap.String("project", name),
				zap.Int("pid", proc.Pid),
				zap.Error(err))
			return
		}
	}
	r.log.Info("demo process stopped",
		zap.String("project", name),
		zap.Int("pid", proc.Pid))
}
