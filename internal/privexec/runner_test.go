package privexec

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		CommandTimeout: 10 * time.Second,
		MaxOutputBytes: DefaultMaxOutputBytes,
	}
}

func TestRun_ZeroExit(t *testing.T) {
	r := NewRunner(testConfig(), testLogger())

	res := r.Run(context.Background(), "sh", "-c", "echo hello")
	if !res.Succeeded {
		t.Fatalf("Succeeded = false, want true (launch err: %v)", res.LaunchErr)
	}
	if res.LaunchErr != nil {
		t.Errorf("LaunchErr = %v, want nil", res.LaunchErr)
	}
	if !strings.Contains(res.Stdout, "hello") {
		t.Errorf("Stdout = %q, want it to contain %q", res.Stdout, "hello")
	}
}

func TestRun_NonZeroExitIsNotAFault(t *testing.T) {
	r := NewRunner(testConfig(), testLogger())

	res := r.Run(context.Background(), "sh", "-c", "exit 7")
	if res.Succeeded {
		t.Error("Succeeded = true, want false for exit 7")
	}
	if res.LaunchErr != nil {
		t.Errorf("LaunchErr = %v, want nil: a non-zero exit is a normal outcome", res.LaunchErr)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	r := NewRunner(testConfig(), testLogger())

	res := r.Run(context.Background(), "/nonexistent/definitely-missing-binary")
	if res.Succeeded {
		t.Error("Succeeded = true, want false for missing binary")
	}
	if res.LaunchErr == nil {
		t.Error("LaunchErr = nil, want launch failure reported distinctly")
	}
}

func TestRun_TimeoutIsAFailure(t *testing.T) {
	cfg := testConfig()
	cfg.CommandTimeout = time.Second
	r := NewRunner(cfg, testLogger())

	start := time.Now()
	res := r.Run(context.Background(), "sh", "-c", "sleep 30")
	if res.Succeeded {
		t.Error("Succeeded = true, want false for timed-out command")
	}
	if res.LaunchErr == nil {
		t.Error("LaunchErr = nil, want timeout reported as failure")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run took %v, want the timeout to cut it short", elapsed)
	}
}

func TestRun_ElevationPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.SudoPath = "echo"
	r := NewRunner(cfg, testLogger())

	res := r.Run(context.Background(), "systemctl", "restart", "foo")
	if !res.Succeeded {
		t.Fatalf("Succeeded = false, want true (launch err: %v)", res.LaunchErr)
	}
	if !strings.Contains(res.Stdout, "systemctl restart foo") {
		t.Errorf("Stdout = %q, want the original command after the elevation prefix", res.Stdout)
	}
}

func TestRun_OutputIsBounded(t *testing.T) {
	cfg := testConfig()
	cfg.MaxOutputBytes = 1024
	r := NewRunner(cfg, testLogger())

	res := r.Run(context.Background(), "sh", "-c", "head -c 8192 /dev/zero | tr '\\0' 'x'")
	if !res.Succeeded {
		t.Fatalf("Succeeded = false, want true (launch err: %v)", res.LaunchErr)
	}
	if len(res.Stdout) != 1024 {
		t.Errorf("len(Stdout) = %d, want capped at 1024", len(res.Stdout))
	}
}

func TestLimitedWriter_ReportsAllBytesWritten(t *testing.T) {
	w := newLimitedWriter(4)

	n, err := w.Write([]byte("abcdefgh"))
	if err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if n != 8 {
		t.Errorf("Write() = %d, want 8 so the writer never stalls", n)
	}
	if w.String() != "abcd" {
		t.Errorf("String() = %q, want %q", w.String(), "abcd")
	}
}
