package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ytget/merge-replays/internal/merge"
	"github.com/ytget/merge-replays/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.FFmpegPath != merge.FFmpegCommand {
		t.Errorf("Expected ffmpeg path %s, got %s", merge.FFmpegCommand, cfg.FFmpegPath)
	}
	if cfg.ContainerExt != ".mp4" || cfg.AudioExt != ".m4a" {
		t.Errorf("Expected .mp4/.m4a, got %s/%s", cfg.ContainerExt, cfg.AudioExt)
	}
	if cfg.PrimaryTrackTitle != "Game Audio" || cfg.SecondaryTrackTitle != "Microphone Track" {
		t.Errorf("Unexpected default titles: %q, %q", cfg.PrimaryTrackTitle, cfg.SecondaryTrackTitle)
	}
	if cfg.DeleteOriginals {
		t.Error("Expected delete originals to default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("Expected file name %s, got %s", ConfigFileName, path)
	}
	if filepath.Base(filepath.Dir(path)) != AppDirName {
		t.Errorf("Expected parent dir %s, got %s", AppDirName, path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, status, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != StatusMissing {
		t.Errorf("Expected status %s, got %s", StatusMissing, status)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := writeConfig(t, "source_folder: [unterminated\n  : :")

	cfg, status, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != StatusCorrupt {
		t.Errorf("Expected status %s, got %s", StatusCorrupt, status)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadReadError(t *testing.T) {
	// A directory cannot be read as a file
	_, _, err := Load(t.TempDir())
	if err == nil {
		t.Error("Expected error when path is a directory")
	}
}

func TestLoadValidFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	path := writeConfig(t, "source_folder: "+src+"\n"+
		"dest_folder: "+dst+"\n"+
		"delete_originals: true\n"+
		"ffmpeg_path: /opt/ffmpeg/bin/ffmpeg\n"+
		"secondary_track_title: Voice\n")

	cfg, status, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != StatusLoaded {
		t.Errorf("Expected status %s, got %s", StatusLoaded, status)
	}
	if cfg.SourceFolder != src || cfg.DestFolder != dst {
		t.Errorf("Expected folders %s -> %s, got %s -> %s", src, dst, cfg.SourceFolder, cfg.DestFolder)
	}
	if !cfg.DeleteOriginals {
		t.Error("Expected delete originals to be true")
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Expected custom ffmpeg path, got %s", cfg.FFmpegPath)
	}
	if cfg.SecondaryTrackTitle != "Voice" {
		t.Errorf("Expected secondary title Voice, got %s", cfg.SecondaryTrackTitle)
	}
	// Unset keys keep defaults
	if cfg.PrimaryTrackTitle != merge.DefaultPrimaryTitle {
		t.Errorf("Expected default primary title, got %s", cfg.PrimaryTrackTitle)
	}
	if cfg.ContainerExt != model.DefaultContainerExt {
		t.Errorf("Expected default container ext, got %s", cfg.ContainerExt)
	}
	if len(cfg.DroppedFolders) != 0 {
		t.Errorf("Expected no dropped folders, got %v", cfg.DroppedFolders)
	}
}

func TestLoadDropsMissingFolders(t *testing.T) {
	dst := t.TempDir()
	gone := filepath.Join(t.TempDir(), "deleted")
	path := writeConfig(t, "source_folder: "+gone+"\ndest_folder: "+dst+"\n")

	cfg, status, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != StatusLoaded {
		t.Errorf("Expected status %s, got %s", StatusLoaded, status)
	}
	if cfg.SourceFolder != "" {
		t.Errorf("Expected missing source folder to be dropped, got %s", cfg.SourceFolder)
	}
	if cfg.DestFolder != dst {
		t.Errorf("Expected dest folder %s, got %s", dst, cfg.DestFolder)
	}
	if !reflect.DeepEqual(cfg.DroppedFolders, []string{gone}) {
		t.Errorf("Expected dropped folders [%s], got %v", gone, cfg.DroppedFolders)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ConfigFileName)

	cfg := Default()
	cfg.SourceFolder = t.TempDir()
	cfg.DestFolder = t.TempDir()
	cfg.DeleteOriginals = true
	cfg.PrimaryTrackTitle = "Game"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temp file to be renamed away")
	}

	loaded, status, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if status != StatusLoaded {
		t.Errorf("Expected status %s, got %s", StatusLoaded, status)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}

func TestSaveOmitsDroppedFolders(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := Default()
	cfg.DroppedFolders = []string{"/gone"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "/gone") {
		t.Errorf("Expected dropped folders not to be persisted, got:\n%s", data)
	}
	if !strings.Contains(string(data), "delete_originals: false") {
		t.Errorf("Expected delete_originals key, got:\n%s", data)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty container ext", func(c *Config) { c.ContainerExt = "" }, "container_ext is required"},
		{"no dot", func(c *Config) { c.AudioExt = "m4a" }, "audio_ext must look like"},
		{"only dot", func(c *Config) { c.AudioExt = "." }, "audio_ext must look like"},
		{"separator", func(c *Config) { c.ContainerExt = "./x" }, "must not contain path separators"},
		{"same ext", func(c *Config) { c.AudioExt = c.ContainerExt }, "must differ"},
		{"no ffmpeg", func(c *Config) { c.FFmpegPath = "" }, "ffmpeg_path is required"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(&cfg)
			err := cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got %v", test.wantErr, err)
			}
		})
	}
}

func TestBatchAndMergeOptions(t *testing.T) {
	cfg := Default()
	cfg.SourceFolder = "/in"
	cfg.DestFolder = "/out"
	cfg.DeleteOriginals = true
	cfg.AudioExt = ".aac"

	batch := cfg.Batch()
	expected := model.Configuration{
		SourceFolder:    "/in",
		DestFolder:      "/out",
		DeleteOriginals: true,
		ContainerExt:    ".mp4",
		AudioExt:        ".aac",
	}
	if batch != expected {
		t.Errorf("Expected %+v, got %+v", expected, batch)
	}

	opts := cfg.MergeOptions()
	if opts.FFmpegPath != cfg.FFmpegPath || opts.PrimaryTitle != cfg.PrimaryTrackTitle || opts.SecondaryTitle != cfg.SecondaryTrackTitle {
		t.Errorf("Unexpected merge options %+v", opts)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	for _, key := range Keys() {
		value := "x"
		if key == "delete_originals" {
			value = "yes"
		}
		if err := cfg.Set(key, value); err != nil {
			t.Errorf("Set(%s): unexpected error %v", key, err)
		}
	}
	if !cfg.DeleteOriginals {
		t.Error("Expected delete_originals to be true")
	}
	if cfg.SourceFolder != "x" || cfg.SecondaryTrackTitle != "x" {
		t.Errorf("Expected values to be set, got %+v", cfg)
	}

	if err := cfg.Set("delete_originals", "maybe"); err == nil {
		t.Error("Expected error for invalid boolean")
	}
	if err := cfg.Set("volume", "11"); err == nil {
		t.Error("Expected error for unknown key")
	}
}
