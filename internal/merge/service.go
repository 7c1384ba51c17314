package merge

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ytget/merge-replays/internal/model"
)

// FFmpeg constants for the dual-audio remux
const (
	// Executable
	FFmpegCommand = "ffmpeg"
	VersionFlag   = "-version"
	LogLevel      = "error"

	// Stream selectors: video and first audio of input 0, first audio of input 1
	VideoStream     = "v:0"
	PrimaryAudio    = "a:0"
	SecondaryAudio  = "a:0"
	StreamCopyCodec = "copy"

	// Dispositions
	DispositionDefault = "default"
	DispositionNone    = "0"

	// Track titles
	DefaultPrimaryTitle   = "Game Audio"
	DefaultSecondaryTitle = "Microphone Track"
)

// Options configures the merge service
type Options struct {
	FFmpegPath     string // defaults to "ffmpeg" on PATH
	PrimaryTitle   string // title of the container's audio track
	SecondaryTitle string // title of the audio file's track
}

// Service runs ffmpeg for replay pairs
type Service struct {
	fs   afero.Fs
	opts Options
}

// execCommandContext allows tests to replace the ffmpeg process
var execCommandContext = exec.CommandContext

// lookPath allows tests to fake a missing binary
var lookPath = exec.LookPath

// NewService creates a new merge service. Partial outputs are removed through fs.
func NewService(fs afero.Fs, opts Options) *Service {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = FFmpegCommand
	}
	if opts.PrimaryTitle == "" {
		opts.PrimaryTitle = DefaultPrimaryTitle
	}
	if opts.SecondaryTitle == "" {
		opts.SecondaryTitle = DefaultSecondaryTitle
	}
	return &Service{fs: fs, opts: opts}
}

// FFmpegPath returns the configured ffmpeg binary
func (s *Service) FFmpegPath() string {
	return s.opts.FFmpegPath
}

// CheckAvailable verifies ffmpeg is installed by running a version query
func (s *Service) CheckAvailable(ctx context.Context) (string, error) {
	path, err := lookPath(s.opts.FFmpegPath)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "look up %s", s.opts.FFmpegPath), ErrToolMissing)
	}

	cmd := execCommandContext(ctx, path, VersionFlag)
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "%s %s", path, VersionFlag), ErrToolMissing)
	}

	version := firstLine(string(out))
	if version == "" {
		return "", errors.Mark(ErrEmptyVersion, ErrToolMissing)
	}
	return version, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments (without the binary)
func (s *Service) BuildFFmpegArgs(pair model.FilePair, outputPath string) []string {
	container := ffmpeg.Input(pair.ContainerPath)
	audio := ffmpeg.Input(pair.AudioPath)

	return ffmpeg.Output(
		[]*ffmpeg.Stream{
			container.Get(VideoStream),
			container.Get(PrimaryAudio),
			audio.Get(SecondaryAudio),
		},
		outputPath,
		ffmpeg.KwArgs{
			"c:v":             StreamCopyCodec,
			"c:a":             StreamCopyCodec,
			"metadata:s:a:0":  "title=" + s.opts.PrimaryTitle,
			"metadata:s:a:1":  "title=" + s.opts.SecondaryTitle,
			"disposition:a:0": DispositionDefault,
			"disposition:a:1": DispositionNone,
		},
	).
		GlobalArgs("-hide_banner", "-nostdin", "-loglevel", LogLevel).
		OverWriteOutput().
		GetArgs()
}

// Merge runs ffmpeg for one pair and reports the outcome
func (s *Service) Merge(ctx context.Context, pair model.FilePair, outputPath string) model.MergeResult {
	result := model.MergeResult{Pair: pair, OutputPath: outputPath}

	if samePath(outputPath, pair.ContainerPath) || samePath(outputPath, pair.AudioPath) {
		err := errors.Mark(errors.Newf("refusing to overwrite input %s", outputPath), ErrSameAsInput)
		result.Error = err.Error()
		return result
	}

	args := s.BuildFFmpegArgs(pair, outputPath)
	cmd := execCommandContext(ctx, s.opts.FFmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(started)

	if err != nil {
		result.Error = diagnostic(stderr.String(), err)
		log.Printf("ffmpeg failed for %s: %v", pair.ContainerName(), err)

		// Remove partial output file
		if rmErr := s.fs.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("Failed to remove partial output %s: %v", outputPath, rmErr)
		}
		return result
	}

	result.Succeeded = true
	return result
}

// MergeError converts a failed result into an error marked ErrMergeFailed
func MergeError(result model.MergeResult) error {
	if result.Succeeded {
		return nil
	}
	return errors.Mark(errors.Newf("merge %s: %s", result.Pair.ContainerName(), result.Error), ErrMergeFailed)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
