package supervise

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"
)

const helperEnv = "CLANGFMT_SUPERVISE_HELPER"

func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) != "" {
		time.Sleep(200 * time.Millisecond)
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func startHelper(t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), helperEnv+"=1")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestAlive(t *testing.T) {
	if !Alive(os.Getpid()) {
		t.Errorf("own process not alive")
	}
	if Alive(0) || Alive(-1) {
		t.Errorf("non-positive pid alive")
	}
	cmd := startHelper(t)
	pid := cmd.Process.Pid
	if !Alive(pid) {
		t.Errorf("running helper not alive")
	}
	if err := cmd.Wait(); err != nil {
		t.Fatal(err)
	}
	if Alive(pid) {
		t.Errorf("reaped helper still alive")
	}
}

func TestWatchCallsOnExit(t *testing.T) {
	cmd := startHelper(t)
	go cmd.Wait()

	exited := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	go Watch(ctx, cmd.Process.Pid, 10*time.Millisecond, func() { close(exited) })

	select {
	case <-exited:
	case <-ctx.Done():
		t.Fatal("onExit not called")
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Watch(ctx, os.Getpid(), 10*time.Millisecond, func() { t.Error("onExit called for live process") })
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Watch did not return")
	}
}
