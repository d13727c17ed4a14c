//go:build !windows

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

func platformShell() []string {
	return []string{"/bin/sh", "-c"}
}

func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func interruptGroup(p *os.Process) error {
	return signalGroup(p, syscall.SIGINT)
}

func killGroup(p *os.Process) error {
	return signalGroup(p, syscall.SIGKILL)
}

// signalGroup signals the whole process group led by p.
func signalGroup(p *os.Process, sig syscall.Signal) error {
	err := syscall.Kill(-p.Pid, sig)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}

func exitStatus(state *os.ProcessState) domain.ExitStatus {
	if state == nil {
		return domain.ExitStatus{Code: -1}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return domain.ExitStatus{Code: -1, Signal: ws.Signal().String()}
	}
	return domain.ExitStatus{Code: state.ExitCode()}
}
