package main

import (
	"errors"
	"os"
	"testing"

	"github.com/xolan/tock/internal/osutil"
)

// MockPathProvider redirects the application directory for tests
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

// isolate points the application directory at a temp dir and clears
// environment overrides.
func isolate(t *testing.T, args ...string) {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return dir, nil },
		MkdirAllFn:      os.MkdirAll,
	})
	t.Cleanup(osutil.ResetProvider)

	for _, key := range []string{"TOCK_STORAGE_BACKEND", "TOCK_STORAGE_PATH", "TOCK_LOG_LEVEL", "TOCK_TIMEZONE"} {
		t.Setenv(key, "")
	}

	originalArgs := os.Args
	os.Args = append([]string{"tock"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })
}

func TestRun_Success(t *testing.T) {
	isolate(t, "--version")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigPathFailure(t *testing.T) {
	isolate(t, "status")
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for config path failure, got %d", code)
	}
}

func TestRun_InvalidEnvironment(t *testing.T) {
	isolate(t, "status")
	t.Setenv("TOCK_STORAGE_BACKEND", "postgres")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for invalid backend, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	isolate(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	isolate(t, "--version")

	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
