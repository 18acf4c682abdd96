package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "foliodesk"

// Dir returns the per-user runtime directory holding the daemon socket and
// pid file. XDG_RUNTIME_DIR wins, then /run/user/<uid>; otherwise a private
// /tmp/foliodesk-runtime-<uid> directory is created.
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	if runUserDir := fmt.Sprintf("/run/user/%d", uid); isDir(runUserDir) {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/%s-runtime-%d", appName, uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the daemon IPC socket path.
func SocketPath() (string, error) {
	return file(appName + ".sock")
}

// PIDPath returns the file the running daemon records its pid in.
func PIDPath() (string, error) {
	return file(appName + ".pid")
}

func file(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
