package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"m8org/internal/config"
	"m8org/internal/services"
)

// Requirements lists the binaries a run needs. ffprobe is only required when
// converted files are verified.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Convert.FFmpegPath,
			Description: "Converts samples to PCM WAV",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Convert.FFprobePath,
			Description: "Verifies converted samples",
			Optional:    !cfg.Convert.Verify,
		},
	}
}

// ResolveFFmpeg returns the absolute path of the configured ffmpeg binary.
func ResolveFFmpeg(cfg *config.Config) (string, error) {
	return resolveTool("ffmpeg", cfg.Convert.FFmpegPath)
}

// ResolveFFprobe returns the absolute path of the configured ffprobe binary.
func ResolveFFprobe(cfg *config.Config) (string, error) {
	return resolveTool("ffprobe", cfg.Convert.FFprobePath)
}

func resolveTool(name, command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		command = name
	}
	resolved, err := exec.LookPath(command)
	if err != nil {
		return "", services.Wrap(
			services.ErrConfiguration,
			"deps",
			"resolve "+name,
			fmt.Sprintf("binary %q not found; install it or set convert.%s_path", command, name),
			err,
		)
	}
	return resolved, nil
}
