package updater

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/vrsetup/scenctl/pkg/types"
)

// Step names the phase an apply failure happened in.
type Step string

const (
	StepWait    Step = "wait-for-exit"
	StepVerify  Step = "verify-package"
	StepDelete  Step = "delete-old"
	StepCopy    Step = "copy-new"
	StepLaunch  Step = "launch"
	StepCleanup Step = "cleanup"
)

// StepError wraps a failure with the step it happened in, so the
// diagnostic log can say exactly how far the swap got.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// applier runs the swap with intervals that tests shrink to keep fast.
type applier struct {
	pollInterval time.Duration
	maxPolls     int
	settleDelay  time.Duration
	retryDelay   time.Duration
	launch       func(exe string) error
	log          io.Writer
	removePlan   bool
	planPath     string
}

func newApplier(planPath string, log io.Writer) *applier {
	return &applier{
		pollInterval: time.Second,
		maxPolls:     30,
		settleDelay:  2 * time.Second,
		retryDelay:   2 * time.Second,
		launch:       launchDetached,
		log:          log,
		removePlan:   true,
		planPath:     planPath,
	}
}

// Apply replays an install plan: wait for the old process to exit,
// replace the old executable with the downloaded one, relaunch it, and
// clean up the plan file. Progress is appended to a diagnostic log in
// the temp directory; the log survives failures.
func Apply(planPath string) error {
	logFile, err := os.OpenFile(
		filepath.Join(os.TempDir(), "scenctl-update.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logFile = nil
	}
	var sink io.Writer = io.Discard
	if logFile != nil {
		defer logFile.Close()
		sink = logFile
	}

	plan, err := ReadPlan(planPath)
	if err != nil {
		fmt.Fprintf(sink, "[%s] plan unreadable: %v\n", timestamp(), err)
		return err
	}
	return newApplier(planPath, sink).run(plan)
}

func (a *applier) run(plan InstallPlan) error {
	a.logf("update started: %s -> %s (pid %d)", plan.NewExecutable, plan.OldExecutable, plan.ParentPID)

	if err := a.waitForExit(plan.ParentPID); err != nil {
		return a.fail(StepWait, err)
	}
	if err := a.verifyPackage(plan); err != nil {
		return a.fail(StepVerify, err)
	}
	if err := a.deleteOld(plan.OldExecutable); err != nil {
		return a.fail(StepDelete, err)
	}
	if err := a.copyNew(plan); err != nil {
		return a.fail(StepCopy, err)
	}
	if err := a.launch(plan.OldExecutable); err != nil {
		return a.fail(StepLaunch, err)
	}
	a.logf("relaunched %s", plan.OldExecutable)

	if a.removePlan {
		if err := os.Remove(a.planPath); err != nil && !os.IsNotExist(err) {
			// The swap already succeeded; a leftover plan file is
			// worth a log line, not a failure.
			a.logf("cleanup: %v", err)
		}
	}
	a.logf("update completed")
	return nil
}

// waitForExit polls the parent process until it is gone, then waits a
// settle delay for file handles to release. Hitting the poll limit is
// not fatal: the delete step will fail loudly if the binary is still
// locked.
func (a *applier) waitForExit(pid int) error {
	if pid <= 0 {
		time.Sleep(a.settleDelay)
		return nil
	}
	for i := 0; i < a.maxPolls; i++ {
		running, err := process.PidExists(int32(pid))
		if err != nil || !running {
			break
		}
		a.logf("waiting for pid %d (%d/%d)", pid, i+1, a.maxPolls)
		time.Sleep(a.pollInterval)
	}
	time.Sleep(a.settleDelay)
	return nil
}

func (a *applier) verifyPackage(plan InstallPlan) error {
	if samePath(plan.NewExecutable, plan.OldExecutable) {
		return types.ErrSamePath
	}
	st, err := os.Stat(plan.NewExecutable)
	if err != nil {
		return fmt.Errorf("downloaded package missing: %w", err)
	}
	if plan.ExpectedSize > 0 && st.Size() != plan.ExpectedSize {
		return fmt.Errorf("package size %d does not match expected %d", st.Size(), plan.ExpectedSize)
	}
	return nil
}

// deleteOld removes the previous executable, retrying once in case the
// OS still holds the file shortly after process exit.
func (a *applier) deleteOld(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		a.logf("old executable already gone")
		return nil
	}
	if err := os.Remove(path); err != nil {
		a.logf("delete failed, retrying: %v", err)
		time.Sleep(a.retryDelay)
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return fmt.Errorf("old executable still present at %s", path)
	}
	a.logf("old executable deleted")
	return nil
}

func (a *applier) copyNew(plan InstallPlan) error {
	src, err := os.Open(plan.NewExecutable)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(plan.OldExecutable, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return err
	}
	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if plan.ExpectedSize > 0 && written != plan.ExpectedSize {
		return fmt.Errorf("copied %d bytes, expected %d", written, plan.ExpectedSize)
	}
	a.logf("installed %d bytes at %s", written, plan.OldExecutable)
	return nil
}

func (a *applier) fail(step Step, err error) error {
	werr := &StepError{Step: step, Err: err}
	a.logf("FAILED %v", werr)
	return werr
}

func (a *applier) logf(format string, args ...any) {
	fmt.Fprintf(a.log, "[%s] %s\n", timestamp(), fmt.Sprintf(format, args...))
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

func launchDetached(exe string) error {
	cmd := exec.Command(exe)
	cmd.Dir = filepath.Dir(exe)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
