package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ytget/merge-replays/internal/merge"
	"github.com/ytget/merge-replays/internal/model"
	"github.com/ytget/merge-replays/internal/platform"
)

// LoadStatus reports what Load found at the config path
type LoadStatus string

const (
	StatusLoaded  LoadStatus = "loaded"
	StatusMissing LoadStatus = "missing"
	StatusCorrupt LoadStatus = "corrupt"
)

// File locations
const (
	AppDirName     = "merge-replays"
	ConfigFileName = "config.yaml"
)

// Config is the persisted preference file
type Config struct {
	SourceFolder        string `yaml:"source_folder"`
	DestFolder          string `yaml:"dest_folder"`
	DeleteOriginals     bool   `yaml:"delete_originals"`
	FFmpegPath          string `yaml:"ffmpeg_path,omitempty"`
	ContainerExt        string `yaml:"container_ext,omitempty"`
	AudioExt            string `yaml:"audio_ext,omitempty"`
	PrimaryTrackTitle   string `yaml:"primary_track_title,omitempty"`
	SecondaryTrackTitle string `yaml:"secondary_track_title,omitempty"`

	// Folders dropped by Load because they no longer exist
	DroppedFolders []string `yaml:"-"`
}

// Default returns a config with every tool setting filled in
func Default() Config {
	return Config{
		FFmpegPath:          merge.FFmpegCommand,
		ContainerExt:        model.DefaultContainerExt,
		AudioExt:            model.DefaultAudioExt,
		PrimaryTrackTitle:   merge.DefaultPrimaryTitle,
		SecondaryTrackTitle: merge.DefaultSecondaryTitle,
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving user config dir")
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// Load reads the config file at path. A missing file yields defaults with
// StatusMissing; unparsable content yields defaults with StatusCorrupt and a
// nil error. Only I/O failures are returned as errors.
func Load(path string) (Config, LoadStatus, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, StatusMissing, nil
	}
	if err != nil {
		return cfg, StatusMissing, errors.Wrapf(err, "reading config %s", path)
	}

	var stored Config
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return cfg, StatusCorrupt, nil
	}

	cfg.merge(stored)
	return cfg, StatusLoaded, nil
}

// merge copies set values from stored, skipping folders that are gone
func (c *Config) merge(stored Config) {
	if stored.SourceFolder != "" {
		if isDir(stored.SourceFolder) {
			c.SourceFolder = stored.SourceFolder
		} else {
			c.DroppedFolders = append(c.DroppedFolders, stored.SourceFolder)
		}
	}
	if stored.DestFolder != "" {
		if isDir(stored.DestFolder) {
			c.DestFolder = stored.DestFolder
		} else {
			c.DroppedFolders = append(c.DroppedFolders, stored.DestFolder)
		}
	}
	c.DeleteOriginals = stored.DeleteOriginals

	if stored.FFmpegPath != "" {
		c.FFmpegPath = stored.FFmpegPath
	}
	if stored.ContainerExt != "" {
		c.ContainerExt = stored.ContainerExt
	}
	if stored.AudioExt != "" {
		c.AudioExt = stored.AudioExt
	}
	if stored.PrimaryTrackTitle != "" {
		c.PrimaryTrackTitle = stored.PrimaryTrackTitle
	}
	if stored.SecondaryTrackTitle != "" {
		c.SecondaryTrackTitle = stored.SecondaryTrackTitle
	}
}

// Save writes cfg atomically using a temp file and rename
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := platform.CreateDirectoryIfNotExists(afero.NewOsFs(), filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "creating config dir for %s", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "writing temp config %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "renaming temp config to %s", path)
	}
	return nil
}

// Validate checks the tool settings. Folders are checked when a batch starts.
func (c Config) Validate() error {
	var errs []string

	for _, ext := range []struct{ key, value string }{
		{"container_ext", c.ContainerExt},
		{"audio_ext", c.AudioExt},
	} {
		switch {
		case ext.value == "":
			errs = append(errs, ext.key+" is required")
		case !strings.HasPrefix(ext.value, ".") || len(ext.value) < 2:
			errs = append(errs, ext.key+" must look like \".ext\", got "+ext.value)
		case strings.ContainsAny(ext.value, `/\`):
			errs = append(errs, ext.key+" must not contain path separators")
		}
	}
	if c.ContainerExt != "" && c.ContainerExt == c.AudioExt {
		errs = append(errs, "container_ext and audio_ext must differ")
	}
	if c.FFmpegPath == "" {
		errs = append(errs, "ffmpeg_path is required")
	}

	if len(errs) > 0 {
		return errors.Newf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Batch returns the part of the config the batch runner reads
func (c Config) Batch() model.Configuration {
	return model.Configuration{
		SourceFolder:    c.SourceFolder,
		DestFolder:      c.DestFolder,
		DeleteOriginals: c.DeleteOriginals,
		ContainerExt:    c.ContainerExt,
		AudioExt:        c.AudioExt,
	}
}

// MergeOptions returns the merge service options
func (c Config) MergeOptions() merge.Options {
	return merge.Options{
		FFmpegPath:     c.FFmpegPath,
		PrimaryTitle:   c.PrimaryTrackTitle,
		SecondaryTitle: c.SecondaryTrackTitle,
	}
}

// Set assigns a value by its YAML key
func (c *Config) Set(key, value string) error {
	switch key {
	case "source_folder":
		c.SourceFolder = value
	case "dest_folder":
		c.DestFolder = value
	case "delete_originals":
		switch strings.ToLower(value) {
		case "true", "yes", "1", "on":
			c.DeleteOriginals = true
		case "false", "no", "0", "off":
			c.DeleteOriginals = false
		default:
			return errors.Newf("invalid boolean %q for %s", value, key)
		}
	case "ffmpeg_path":
		c.FFmpegPath = value
	case "container_ext":
		c.ContainerExt = value
	case "audio_ext":
		c.AudioExt = value
	case "primary_track_title":
		c.PrimaryTrackTitle = value
	case "secondary_track_title":
		c.SecondaryTrackTitle = value
	default:
		return errors.Newf("unknown config key %q", key)
	}
	return nil
}

// Keys lists the settable YAML keys in file order
func Keys() []string {
	return []string{
		"source_folder",
		"dest_folder",
		"delete_originals",
		"ffmpeg_path",
		"container_ext",
		"audio_ext",
		"primary_track_title",
		"secondary_track_title",
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
