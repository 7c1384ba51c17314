package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	testDir := "/tmp/test_dir"

	exists, _ := afero.DirExists(fs, testDir)
	if exists {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(fs, testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	exists, _ = afero.DirExists(fs, testDir)
	if !exists {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(fs, testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestRequireDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/replays", 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := afero.WriteFile(fs, "/replays/clip.mp4", []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"/replays", false},
		{"/replays/clip.mp4", true},
		{"/missing", true},
		{"", true},
	}

	for _, test := range tests {
		err := RequireDirectory(fs, test.path)
		if test.wantErr {
			if !errors.Is(err, ErrDirectoryNotFound) {
				t.Errorf("RequireDirectory(%q): expected ErrDirectoryNotFound, got %v", test.path, err)
			}
		} else if err != nil {
			t.Errorf("RequireDirectory(%q): expected no error, got %v", test.path, err)
		}
	}
}

func TestSameDirectory(t *testing.T) {
	tempDir := t.TempDir()
	other := filepath.Join(tempDir, "other")
	if err := os.Mkdir(other, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	if !SameDirectory(tempDir, tempDir+string(filepath.Separator)) {
		t.Error("Expected trailing separator to resolve to same directory")
	}
	if !SameDirectory(tempDir, filepath.Join(other, "..")) {
		t.Error("Expected parent reference to resolve to same directory")
	}
	if SameDirectory(tempDir, other) {
		t.Error("Expected different directories to differ")
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFolder_NotAFolder(t *testing.T) {
	tempFile, err := os.CreateTemp("", "test_file_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	if err := OpenFolder(tempFile.Name()); err == nil {
		t.Error("Expected error when opening a file as folder, got nil")
	}
}

func TestOpenFolder_UsesSystemCommand(t *testing.T) {
	var calls [][]string
	execCommand = func(name string, arg ...string) *exec.Cmd {
		calls = append(calls, append([]string{name}, arg...))
		// Re-run the test binary with no tests selected; it exits 0
		return exec.Command(os.Args[0], "-test.run=^$")
	}
	defer func() { execCommand = exec.Command }()

	tempDir := t.TempDir()
	if err := OpenFolder(tempDir); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("Expected 1 command, got %d: %v", len(calls), calls)
	}
	abs, _ := filepath.Abs(tempDir)
	args := calls[0]
	if args[len(args)-1] != abs {
		t.Errorf("Expected folder %s as last argument, got %v", abs, args)
	}
}
