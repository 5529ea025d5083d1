package shortener

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"m8org/internal/config"
	"m8org/internal/textutil"
)

func testOptions() Options {
	return Options{
		Punctuation:     textutil.NewPunctuation("-_", "()"),
		Strike:          textutil.NewStrikeFilter([]string{"loop"}),
		Format:          textutil.FormatLower,
		Separator:       "_",
		EliminateEmpty:  true,
		TargetExtension: ".wav",
		MaxFileLength:   64,
		MaxDirLength:    64,
		MaxOutputLength: 127,
	}
}

func TestShortenWorkedExample(t *testing.T) {
	s := New(testOptions(), nil)

	if got := s.Shorten("Drum Loops/Kick-Drum (1).wav"); got != "drum/kick_drum_1.wav" {
		t.Fatalf("first file = %q", got)
	}
	for _, word := range []string{"drum", "drums"} {
		if !s.Words().Contains(word) {
			t.Fatalf("expected %q reserved after the root folder", word)
		}
	}
	if s.Words().Contains("kick") {
		t.Fatal("filename words must not be reserved")
	}

	// The root folder is emptied by de-duplication and omitted.
	if got := s.Shorten("Drum Loops/Snare Drums.wav"); got != "snare_drums.wav" {
		t.Fatalf("second file = %q", got)
	}
}

func TestShortenUpperCasePluralBlocksLaterSingular(t *testing.T) {
	s := New(testOptions(), nil)

	if got := s.Shorten("DRUMS/kick.wav"); got != "drums/kick.wav" {
		t.Fatalf("first file = %q", got)
	}
	if got := s.Shorten("Drum Kit/snare.wav"); got != "kit/snare.wav" {
		t.Fatalf("second file = %q", got)
	}
}

func TestShortenFillDeletesWithoutSpace(t *testing.T) {
	s := New(testOptions(), nil)
	if got := s.Shorten("Drum Loops/Kick-Drum(1).wav"); got != "drum/kick_drum1.wav" {
		t.Fatalf("got %q", got)
	}
}

func TestShortenKeepsEmptiedFolderWhenEliminationDisabled(t *testing.T) {
	opts := testOptions()
	opts.EliminateEmpty = false
	s := New(opts, nil)

	s.Shorten("Drum Loops/Kick.wav")
	if got := s.Shorten("Drum Loops/Snare.wav"); got != "drum/snare.wav" {
		t.Fatalf("got %q", got)
	}
	// A partially de-duplicated folder still loses the repeated words.
	if got := s.Shorten("Drum Kits/Hat.wav"); got != "kits/hat.wav" {
		t.Fatalf("got %q", got)
	}
}

func TestShortenOrderSensitivity(t *testing.T) {
	a := "Pack A/Drum Kit/a.wav"
	b := "Pack B/Drum Bass/b.wav"

	ab := New(testOptions(), nil)
	gotA1 := ab.Shorten(a)
	gotB1 := ab.Shorten(b)

	ba := New(testOptions(), nil)
	gotB2 := ba.Shorten(b)
	gotA2 := ba.Shorten(a)

	if gotA1 != "pack_a/drum_kit/a.wav" || gotB1 != "b/bass/b.wav" {
		t.Fatalf("A then B = %q, %q", gotA1, gotB1)
	}
	if gotB2 != "pack_b/drum_bass/b.wav" || gotA2 != "a/kit/a.wav" {
		t.Fatalf("B then A = %q, %q", gotB2, gotA2)
	}
	if len(gotB1) >= len(gotB2) {
		t.Fatalf("B processed second should be shorter: %q vs %q", gotB1, gotB2)
	}
}

func TestShortenDropsEmptyIntermediateFolders(t *testing.T) {
	s := New(testOptions(), nil)
	if got := s.Shorten("Pack/Loops/Deep/Loop Kit/hit.wav"); got != "pack/deep/kit/hit.wav" {
		t.Fatalf("got %q", got)
	}
	if got := s.Shorten("Pack/Deep/hit.wav"); got != "hit.wav" {
		t.Fatalf("fully reserved folders should vanish, got %q", got)
	}
}

func TestShortenIntermediateFoldersReserveLeftToRight(t *testing.T) {
	s := New(testOptions(), nil)
	if got := s.Shorten("Kits/Kit Drums/Drum Hits/hit.wav"); got != "kits/drums/hits/hit.wav" {
		t.Fatalf("got %q", got)
	}
}

func TestShortenDirectoryCeiling(t *testing.T) {
	opts := testOptions()
	opts.MaxDirLength = 5
	s := New(opts, nil)
	if got := s.Shorten("Acoustic Drums/Brush Kit/x.wav"); got != "acous/brush/x.wav" {
		t.Fatalf("got %q", got)
	}
}

func TestShortenFileCeilingForcesExtension(t *testing.T) {
	opts := testOptions()
	opts.MaxFileLength = 10
	s := New(opts, nil)
	got := s.Shorten("Pack/Long Sample Name.aif")
	if got != "pack/long_s.wav" {
		t.Fatalf("got %q", got)
	}
}

func TestShortenSingleSegmentIsFilenameOnly(t *testing.T) {
	s := New(testOptions(), nil)
	if got := s.Shorten("Kick Drum.aiff"); got != "kick_drum.wav" {
		t.Fatalf("got %q", got)
	}
	if s.Words().Len() != 0 {
		t.Fatalf("a bare filename must not reserve words, got %d", s.Words().Len())
	}
}

func TestShortenEmptyStem(t *testing.T) {
	s := New(testOptions(), nil)
	if got := s.Shorten("Pack/().wav"); got != "pack/untitled.wav" {
		t.Fatalf("got %q", got)
	}
}

func TestShortenTitleFormat(t *testing.T) {
	opts := testOptions()
	opts.Format = textutil.FormatTitle
	opts.Separator = "-"
	s := New(opts, nil)
	if got := s.Shorten("deep house/KICK one.wav"); got != "Deep-House/Kick-One.wav" {
		t.Fatalf("got %q", got)
	}
}

func TestShortenResetStartsNewRun(t *testing.T) {
	s := New(testOptions(), nil)
	first := s.Shorten("Drums/kick.wav")
	s.Reset()
	if again := s.Shorten("Drums/kick.wav"); again != first {
		t.Fatalf("expected %q after reset, got %q", first, again)
	}
}

func TestOverlong(t *testing.T) {
	opts := testOptions()
	opts.MaxOutputLength = 10
	s := New(opts, nil)
	if !s.Overlong("abcdefghij") {
		t.Fatal("a path equal to the ceiling is overlong")
	}
	if s.Overlong("abcdefghi") {
		t.Fatal("a path under the ceiling is not overlong")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Naming.WordFormat = "upper"
	s, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if got := s.Shorten("Drum Loops/kick.wav"); !strings.HasSuffix(got, "KICK"+cfg.Naming.TargetExtension) {
		t.Fatalf("expected upper-case filename, got %q", got)
	}

	cfg.Naming.WordFormat = "sarcastic"
	if _, err := NewFromConfig(&cfg); err == nil {
		t.Fatal("expected error for unknown word format")
	}
}

var pathVocabulary = []string{"Drum", "drums", "Kit", "Loop", "loops", "bus", "Bass", "One", "Shot", "x"}

func TestShortenSegmentCeilings(t *testing.T) {
	opts := testOptions()
	opts.MaxDirLength = 6
	opts.MaxFileLength = 9

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("folders and filenames respect their ceilings", prop.ForAll(
		func(segments [][]int) bool {
			s := New(opts, nil)
			parts := make([]string, 0, len(segments)+1)
			for _, seg := range segments {
				words := make([]string, len(seg))
				for i, idx := range seg {
					words[i] = pathVocabulary[idx]
				}
				parts = append(parts, strings.Join(words, " "))
			}
			parts = append(parts, "One Shot Bass.flac")
			out := strings.Split(s.Shorten(strings.Join(parts, "/")), "/")
			for _, folder := range out[:len(out)-1] {
				if folder == "" || textutil.Length(folder) > opts.MaxDirLength {
					return false
				}
			}
			file := out[len(out)-1]
			return strings.HasSuffix(file, ".wav") && textutil.Length(file) <= opts.MaxFileLength
		},
		gen.SliceOf(gen.SliceOf(gen.IntRange(0, len(pathVocabulary)-1))),
	))

	properties.TestingRun(t)
}
