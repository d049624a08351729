package lan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
)

// --- Fake editor ---

type fakeEditor struct {
	files    map[string]string
	writeErr error
	writes   []string // destinations, in order
}

func (f *fakeEditor) ReadText(path string) (string, error) {
	content, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

func (f *fakeEditor) WriteTextPrivileged(_ context.Context, path, content string) error {
	f.writes = append(f.writes, path)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[path] = content
	return nil
}

func (f *fakeEditor) SubstituteLinePrivileged(_ context.Context, path, pattern, replacement string) error {
	return errors.New("not used by lan")
}

// --- Fake prober ---

type fakeProber struct {
	status LinkStatus
	err    error
}

func (f *fakeProber) Probe(_ string) (LinkStatus, error) {
	return f.status, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(editor *fakeEditor, prober *fakeProber) *Manager {
	cfg := Config{}
	cfg.ApplyDefaults()
	return NewManager(cfg, editor, prober, testLogger())
}

// --- Settings ---

func TestSettings_MissingFileMeansDHCP(t *testing.T) {
	m := newTestManager(&fakeEditor{files: map[string]string{}}, &fakeProber{})

	got, err := m.Settings()
	if err != nil {
		t.Fatalf("Settings() = %v, want nil for missing stanza file", err)
	}
	if got.Mode != ModeDHCP || got.Static != nil {
		t.Errorf("Settings() = %+v, want plain dhcp", got)
	}
}

func TestSettings_ReadsFreshFromDisk(t *testing.T) {
	editor := &fakeEditor{files: map[string]string{
		DefaultStanzaPath: "iface eth0 inet dhcp\n",
	}}
	m := newTestManager(editor, &fakeProber{})

	got, err := m.Settings()
	if err != nil {
		t.Fatalf("Settings() = %v", err)
	}
	if got.Mode != ModeDHCP {
		t.Errorf("Mode = %q, want dhcp", got.Mode)
	}

	// A change on disk is visible on the next query without any caching.
	editor.files[DefaultStanzaPath] = "iface eth0 inet static\n    address 192.168.2.10\n    netmask 255.255.255.0\n"

	got, err = m.Settings()
	if err != nil {
		t.Fatalf("Settings() after change = %v", err)
	}
	if got.Mode != ModeStatic {
		t.Errorf("Mode = %q, want static after the file changed", got.Mode)
	}
}

// --- Apply ---

func TestApply_WritesRenderedStanza(t *testing.T) {
	editor := &fakeEditor{files: map[string]string{}}
	m := newTestManager(editor, &fakeProber{})

	settings := Settings{Mode: ModeStatic, Static: &StaticOptions{
		Address: "192.168.2.10",
		Netmask: "255.255.255.0",
		Gateway: "192.168.2.1",
	}}
	if err := m.Apply(context.Background(), settings); err != nil {
		t.Fatalf("Apply() = %v", err)
	}

	if len(editor.writes) != 1 || editor.writes[0] != DefaultStanzaPath {
		t.Fatalf("writes = %v, want one write to %s", editor.writes, DefaultStanzaPath)
	}

	content := editor.files[DefaultStanzaPath]
	for _, line := range []string{
		"iface eth0 inet static",
		"address 192.168.2.10",
		"netmask 255.255.255.0",
		"gateway 192.168.2.1",
	} {
		if !strings.Contains(content, line) {
			t.Errorf("stanza = %q, want it to contain %q", content, line)
		}
	}
}

func TestApply_RejectsInvalidSettingsBeforeWriting(t *testing.T) {
	editor := &fakeEditor{files: map[string]string{}}
	m := newTestManager(editor, &fakeProber{})

	err := m.Apply(context.Background(), Settings{Mode: ModeStatic})
	if err == nil {
		t.Fatal("Apply() = nil, want validation error")
	}
	if len(editor.writes) != 0 {
		t.Errorf("writes = %v, want none for invalid settings", editor.writes)
	}
}

func TestApply_PropagatesWriteFailure(t *testing.T) {
	writeErr := errors.New("mv failed")
	editor := &fakeEditor{files: map[string]string{}, writeErr: writeErr}
	m := newTestManager(editor, &fakeProber{})

	err := m.Apply(context.Background(), Settings{Mode: ModeDHCP})
	if !errors.Is(err, writeErr) {
		t.Errorf("Apply() error = %v, want it to wrap the write failure", err)
	}
}

// --- Status ---

func TestStatus_ReportsLiveState(t *testing.T) {
	prober := &fakeProber{status: LinkStatus{Up: true, Addresses: []string{"192.168.2.10/24"}}}
	m := newTestManager(&fakeEditor{files: map[string]string{}}, prober)

	got, err := m.Status()
	if err != nil {
		t.Fatalf("Status() = %v", err)
	}
	if !got.Up || len(got.Addresses) != 1 {
		t.Errorf("Status() = %+v, want up with one address", got)
	}
}

func TestStatus_PropagatesProbeFailure(t *testing.T) {
	prober := &fakeProber{err: errors.New("link not found")}
	m := newTestManager(&fakeEditor{files: map[string]string{}}, prober)

	if _, err := m.Status(); err == nil {
		t.Error("Status() = nil, want probe error")
	}
}
