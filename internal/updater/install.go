package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vrsetup/scenctl/pkg/types"
)

// InstallPlan is the handoff document between the running binary and the
// freshly downloaded one. The running binary writes it, spawns the new
// binary with the plan path, and exits; the new binary replays the plan.
type InstallPlan struct {
	NewExecutable string `json:"new_executable"`
	OldExecutable string `json:"old_executable"`
	ParentPID     int    `json:"parent_pid"`
	ExpectedSize  int64  `json:"expected_size"`
}

// InstallAndRestart validates the swap, writes the install plan, and
// launches the downloaded binary in apply mode. The caller must exit
// promptly afterwards so the old executable can be replaced.
func InstallAndRestart(newExe, oldExe string) (string, error) {
	newAbs, err := filepath.Abs(newExe)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", newExe, err)
	}
	oldAbs, err := filepath.Abs(oldExe)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", oldExe, err)
	}
	if samePath(newAbs, oldAbs) {
		return "", types.ErrSamePath
	}

	st, err := os.Stat(newAbs)
	if err != nil {
		return "", fmt.Errorf("new executable missing: %w", err)
	}

	plan := InstallPlan{
		NewExecutable: newAbs,
		OldExecutable: oldAbs,
		ParentPID:     os.Getpid(),
		ExpectedSize:  st.Size(),
	}

	planPath, err := writePlan(plan)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(newAbs, "apply-update", "--plan", planPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		os.Remove(planPath)
		return "", fmt.Errorf("launching update helper: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return "", fmt.Errorf("detaching update helper: %w", err)
	}
	return planPath, nil
}

func writePlan(plan InstallPlan) (string, error) {
	f, err := os.CreateTemp("", "scenctl-update-*.json")
	if err != nil {
		return "", fmt.Errorf("creating plan file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing plan file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing plan file: %w", err)
	}
	return f.Name(), nil
}

// ReadPlan loads an install plan written by InstallAndRestart.
func ReadPlan(path string) (InstallPlan, error) {
	var plan InstallPlan
	raw, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("reading plan %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &plan); err != nil {
		return plan, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	if plan.NewExecutable == "" || plan.OldExecutable == "" {
		return plan, fmt.Errorf("plan %s is incomplete", path)
	}
	return plan, nil
}

// samePath compares filesystem paths, case-insensitively on Windows.
func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
