//go:build windows

package process

import (
	"os"
	"os/exec"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

func platformShell() []string {
	return []string{"cmd", "/C"}
}

func setProcessGroup(*exec.Cmd) {}

// interruptGroup kills p; console processes cannot be sent an interrupt.
func interruptGroup(p *os.Process) error {
	return p.Kill()
}

func killGroup(p *os.Process) error {
	return p.Kill()
}

func exitStatus(state *os.ProcessState) domain.ExitStatus {
	if state == nil {
		return domain.ExitStatus{Code: -1}
	}
	return domain.ExitStatus{Code: state.ExitCode()}
}
