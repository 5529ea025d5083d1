package shortener

import (
	"strings"

	"m8org/internal/config"
	"m8org/internal/textutil"
)

const untitledStem = "untitled"

// Options holds the fixed naming rules for a run.
type Options struct {
	Punctuation textutil.Punctuation
	Strike      textutil.StrikeFilter
	Format      textutil.WordFormat
	Separator   string
	// EliminateEmpty allows de-duplication to remove every word of a folder,
	// dropping the folder from the output. When false an emptied folder keeps
	// its strike-filtered words instead.
	EliminateEmpty  bool
	TargetExtension string
	MaxFileLength   int
	MaxDirLength    int
	MaxOutputLength int
}

// OptionsFromConfig derives shortening options from validated configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	format, err := textutil.ParseWordFormat(cfg.Naming.WordFormat)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Punctuation:     textutil.NewPunctuation(cfg.Naming.SplitPunctuation, cfg.Naming.FillPunctuation),
		Strike:          textutil.NewStrikeFilter(cfg.Naming.StrikeWords),
		Format:          format,
		Separator:       cfg.Naming.JoinSep,
		EliminateEmpty:  cfg.Naming.DupesEliminatePath,
		TargetExtension: cfg.Naming.TargetExtension,
		MaxFileLength:   cfg.Limits.MaxFileLength,
		MaxDirLength:    cfg.Limits.MaxDirLength,
		MaxOutputLength: cfg.Limits.MaxOutputLength,
	}, nil
}

// Shortener rewrites relative sample paths. It is not pure: every folder word
// it accepts is reserved in its WordSet for the rest of the run.
type Shortener struct {
	opts  Options
	words *WordSet
}

// New constructs a Shortener. A nil words argument starts a fresh run.
func New(opts Options, words *WordSet) *Shortener {
	if words == nil {
		words = NewWordSet()
	}
	return &Shortener{opts: opts, words: words}
}

// NewFromConfig builds a Shortener with an empty word set.
func NewFromConfig(cfg *config.Config) (*Shortener, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(opts, nil), nil
}

// Words exposes the run's reserved word set.
func (s *Shortener) Words() *WordSet {
	return s.words
}

// Reset clears the reserved words so the next call starts a new run.
func (s *Shortener) Reset() {
	s.words.Reset()
}

// Shorten converts a forward-slash relative path into its short form. The
// first segment is the library root folder, the last is the filename and
// anything in between is an intermediate folder. Empty folders are dropped;
// the result is never an error, however degenerate the input.
func (s *Shortener) Shorten(relative string) string {
	// The source extension is discarded; every output gets the target one.
	stem, _ := textutil.SplitExt(relative)
	parts := strings.Split(s.opts.Punctuation.Clean(stem), "/")

	file := parts[len(parts)-1]
	out := make([]string, 0, len(parts))
	if len(parts) > 1 {
		// The root folder reserves its words before any intermediate folder.
		out = appendSegment(out, s.folder(parts[0]))
		for _, folder := range parts[1 : len(parts)-1] {
			out = appendSegment(out, s.folder(folder))
		}
	}
	out = appendSegment(out, s.file(file))
	return strings.Join(out, "/")
}

// Overlong reports whether path reaches the whole-path ceiling and needs
// outside help before it can be used.
func (s *Shortener) Overlong(path string) bool {
	return textutil.Length(path) >= s.opts.MaxOutputLength
}

// MaxOutputLength returns the exclusive whole-path ceiling.
func (s *Shortener) MaxOutputLength() int {
	return s.opts.MaxOutputLength
}

func (s *Shortener) folder(segment string) string {
	words := s.opts.Strike.Apply(textutil.Fields(segment))
	deduped := s.words.Dedup(words)
	if s.opts.EliminateEmpty || len(deduped) > 0 {
		words = deduped
	}
	joined := strings.Join(s.opts.Format.ApplyAll(words), s.opts.Separator)
	return textutil.Truncate(joined, s.opts.MaxDirLength)
}

func (s *Shortener) file(stem string) string {
	joined := strings.Join(s.opts.Format.ApplyAll(textutil.Fields(stem)), s.opts.Separator)
	if joined == "" {
		joined = s.opts.Format.Apply(untitledStem)
	}
	ext := s.opts.TargetExtension
	return textutil.Truncate(joined, s.opts.MaxFileLength-textutil.Length(ext)) + ext
}

func appendSegment(parts []string, segment string) []string {
	if strings.TrimSpace(segment) == "" {
		return parts
	}
	return append(parts, segment)
}
