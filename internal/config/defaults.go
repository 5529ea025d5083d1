package config

const (
	defaultStateDir         = "~/.local/share/m8org"
	defaultSplitPunctuation = "-_.,+&"
	defaultFillPunctuation  = "'`\"()[]{}!?#"
	defaultJoinSep          = "_"
	defaultWordFormat       = "lower"
	defaultTargetExtension  = ".wav"
	defaultMaxFileLength    = 32
	defaultMaxDirLength     = 24
	defaultMaxOutputLength  = 127
	defaultOverlongPolicy   = "prompt"
	defaultFFmpegPath       = "ffmpeg"
	defaultFFprobePath      = "ffprobe"
	defaultBitDepth         = 16
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	envSourceDir            = "M8ORG_SOURCE_DIR"
	envDestDir              = "M8ORG_DEST_DIR"
)

// Default returns a Config populated with repository defaults. The source
// and destination directories have no default and must be configured.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Files: Files{
			Extensions: []string{"wav", "aif", "aiff", "flac", "mp3", "ogg"},
		},
		Naming: Naming{
			SplitPunctuation:   defaultSplitPunctuation,
			FillPunctuation:    defaultFillPunctuation,
			StrikeWords:        []string{"loop", "sample", "oneshot"},
			JoinSep:            defaultJoinSep,
			WordFormat:         defaultWordFormat,
			DupesEliminatePath: true,
			TargetExtension:    defaultTargetExtension,
		},
		Limits: Limits{
			MaxFileLength:   defaultMaxFileLength,
			MaxDirLength:    defaultMaxDirLength,
			MaxOutputLength: defaultMaxOutputLength,
			OverlongPolicy:  defaultOverlongPolicy,
		},
		Convert: Convert{
			FFmpegPath:   defaultFFmpegPath,
			FFprobePath:  defaultFFprobePath,
			BitDepth:     defaultBitDepth,
			SkipExisting: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
