package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"m8org/internal/config"
	"m8org/internal/fileutil"
	"m8org/internal/logging"
	"m8org/internal/media/ffprobe"
	"m8org/internal/services"
)

// Converter produces output from input. Implementations create the output's
// parent directories.
type Converter interface {
	Convert(ctx context.Context, input, output string) error
}

const (
	outputTailLimit = 512
	waitDelay       = 2 * time.Second
)

// Codec maps a PCM bit depth to the ffmpeg encoder name.
func Codec(bitDepth int) (string, error) {
	switch bitDepth {
	case 8:
		return "pcm_u8", nil
	case 16:
		return "pcm_s16le", nil
	case 24:
		return "pcm_s24le", nil
	case 32:
		return "pcm_s32le", nil
	default:
		return "", fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}

// FFmpeg converts with an ffmpeg binary.
type FFmpeg struct {
	Binary     string
	Codec      string
	SampleRate int
	Timeout    time.Duration
	// FFprobe, when set, is the ffprobe binary used to verify each output.
	FFprobe string
	Logger  *slog.Logger
}

// NewFFmpeg builds a converter from the convert section of cfg.
func NewFFmpeg(cfg *config.Config, logger *slog.Logger) (*FFmpeg, error) {
	codec, err := Codec(cfg.Convert.BitDepth)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "convert", "codec", "convert.bit_depth", err)
	}
	conv := &FFmpeg{
		Binary:     cfg.Convert.FFmpegPath,
		Codec:      codec,
		SampleRate: cfg.Convert.SampleRate,
		Timeout:    time.Duration(cfg.Convert.TimeoutSeconds) * time.Second,
		Logger:     logging.NewComponentLogger(logger, "convert"),
	}
	if cfg.Convert.Verify {
		conv.FFprobe = cfg.Convert.FFprobePath
	}
	return conv, nil
}

// Args returns the ffmpeg argument list for one conversion.
func (f *FFmpeg) Args(input, output string) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", input, "-acodec", f.Codec}
	if f.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(f.SampleRate))
	}
	return append(args, output)
}

// Convert runs ffmpeg for a single file. ffmpeg writes to a hidden sibling
// of output that is renamed into place only after a successful (and, when
// enabled, verified) conversion, so a failure never touches a file already
// at output.
func (f *FFmpeg) Convert(ctx context.Context, input, output string) error {
	if err := fileutil.EnsureParentDir(output); err != nil {
		return services.Wrap(services.ErrTransient, "convert", "mkdir", "", err)
	}

	runCtx := ctx
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	binary := strings.TrimSpace(f.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	partial := partialPath(output)
	args := f.Args(input, partial)
	logger := logging.WithContext(ctx, f.Logger)
	logger.Debug("running ffmpeg", logging.String("command", binary+" "+strings.Join(args, " ")))

	var combined bytes.Buffer
	cmd := exec.CommandContext(runCtx, binary, args...)
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	cmd.WaitDelay = waitDelay
	started := time.Now()
	if err := cmd.Run(); err != nil {
		_ = fileutil.RemovePartial(partial)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "convert", "ffmpeg", fmt.Sprintf("timed out after %s", f.Timeout), err)
		}
		return services.Wrap(services.ErrExternalTool, "convert", "ffmpeg", tail(combined.String()), err)
	}
	logger.Debug("ffmpeg finished", logging.Duration("elapsed", time.Since(started)))

	if f.FFprobe != "" {
		if err := f.verify(ctx, partial); err != nil {
			_ = fileutil.RemovePartial(partial)
			return err
		}
	}
	if err := os.Rename(partial, output); err != nil {
		_ = fileutil.RemovePartial(partial)
		return services.Wrap(services.ErrTransient, "convert", "rename", "", err)
	}
	return nil
}

// partialPath keeps the extension so ffmpeg still picks the right muxer.
func partialPath(output string) string {
	dir, base := filepath.Split(output)
	ext := filepath.Ext(base)
	return filepath.Join(dir, "."+strings.TrimSuffix(base, ext)+".partial"+ext)
}

func (f *FFmpeg) verify(ctx context.Context, output string) error {
	result, err := ffprobe.Inspect(ctx, f.FFprobe, output)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "convert", "ffprobe", "", err)
	}
	stream, ok := result.FirstAudio()
	if !ok {
		return services.Wrap(services.ErrValidation, "convert", "verify", "output has no audio stream", nil)
	}
	if stream.CodecName != f.Codec {
		return services.Wrap(services.ErrValidation, "convert", "verify",
			fmt.Sprintf("output codec %s, expected %s", stream.CodecName, f.Codec), nil)
	}
	if f.SampleRate > 0 && stream.SampleRateHz() != f.SampleRate {
		return services.Wrap(services.ErrValidation, "convert", "verify",
			fmt.Sprintf("output sample rate %d, expected %d", stream.SampleRateHz(), f.SampleRate), nil)
	}
	return nil
}

func tail(output string) string {
	output = strings.TrimSpace(output)
	if len(output) <= outputTailLimit {
		return output
	}
	return "..." + output[len(output)-outputTailLimit:]
}
