package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// ErrDirectoryNotFound is returned when a folder does not exist or is not a directory
var ErrDirectoryNotFound = errors.New("directory not found")

// execCommand allows tests to intercept OS open/reveal calls
var execCommand = exec.Command

// RequireDirectory returns ErrDirectoryNotFound unless path is an existing directory
func RequireDirectory(fs afero.Fs, path string) error {
	if path == "" {
		return errors.Mark(errors.New("folder path is empty"), ErrDirectoryNotFound)
	}
	info, err := fs.Stat(path)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "stat %s", path), ErrDirectoryNotFound)
	}
	if !info.IsDir() {
		return errors.Mark(errors.Newf("%s is not a directory", path), ErrDirectoryNotFound)
	}
	return nil
}

// SameDirectory reports whether a and b resolve to the same absolute path
func SameDirectory(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if evalA, err := filepath.EvalSymlinks(absA); err == nil {
		absA = evalA
	}
	if evalB, err := filepath.EvalSymlinks(absB); err == nil {
		absB = evalB
	}
	return absA == absB
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(fs afero.Fs, dirPath string) error {
	exists, err := afero.DirExists(fs, dirPath)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return fs.MkdirAll(dirPath, DefaultDirPermissions)
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return execCommand(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return execCommand(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		// File selection is not standardized on Linux, so open the parent directory
		return OpenFolder(filepath.Dir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenFolder opens a directory in the system file manager
func OpenFolder(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("folder does not exist: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", dirPath)
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return execCommand(OpenCommand, absPath).Run()
	case OSWindows:
		// explorer.exe exits with status 1 even on success
		_ = execCommand(ExplorerCommand, absPath).Run()
		return nil
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFolderLinux tries xdg-open first and falls back to common file managers
func openFolderLinux(dir string) error {
	if err := execCommand(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return execCommand(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
