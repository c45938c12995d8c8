package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

const (
	// Placeholders substituted in NarratorConfig.Args
	OutputPlaceholder   = "{output}"
	LanguagePlaceholder = "{lang}"

	DefaultNarrationBin      = "gtts-cli"
	DefaultNarrationLanguage = "en"
)

// DefaultNarrationArgs reads the script from stdin and writes an mp3
var DefaultNarrationArgs = []string{"--lang", LanguagePlaceholder, "--output", OutputPlaceholder, "-"}

// Synthesizer turns script text into an audio file at outputPath
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) error
}

// NarratorConfig configures the command-line text-to-speech engine
type NarratorConfig struct {
	Logger   *slog.Logger
	Runner   Runner
	Bin      string
	Args     []string
	Language string
}

// Narrator drives a text-to-speech command, feeding the script on stdin
type Narrator struct {
	logger   *slog.Logger
	runner   Runner
	bin      string
	args     []string
	language string
}

// NewNarrator creates a Narrator, filling unset fields with defaults
func NewNarrator(cfg *NarratorConfig) *Narrator {
	n := &Narrator{
		logger:   cfg.Logger,
		runner:   cfg.Runner,
		bin:      cfg.Bin,
		args:     cfg.Args,
		language: cfg.Language,
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	if n.runner == nil {
		n.runner = ExecRunner{}
	}
	if n.bin == "" {
		n.bin = DefaultNarrationBin
	}
	if len(n.args) == 0 {
		n.args = DefaultNarrationArgs
	}
	if n.language == "" {
		n.language = DefaultNarrationLanguage
	}
	return n
}

// Synthesize writes narration for text to outputPath, replacing any existing file
func (n *Narrator) Synthesize(ctx context.Context, text, outputPath string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: no text to speak", domain.ErrSynthesis)
	}

	// A stale file must not pass the existence check below.
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", domain.ErrSynthesis, err)
	}

	args := n.expandArgs(outputPath)
	n.logger.Debug("Synthesizing narration",
		slog.String("bin", n.bin),
		slog.String("output", outputPath),
		slog.Int("text_length", len(text)),
	)

	if _, err := n.runner.Run(ctx, strings.NewReader(text), n.bin, args...); err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			n.logger.Error("Narration engine failed",
				slog.String("bin", n.bin),
				slog.String("output", cmdErr.Tail(2048)),
			)
		}
		return fmt.Errorf("%w: %w", domain.ErrSynthesis, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("%w: engine produced no audio: %v", domain.ErrSynthesis, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: engine produced empty audio", domain.ErrSynthesis)
	}

	return nil
}

func (n *Narrator) expandArgs(outputPath string) []string {
	r := strings.NewReplacer(OutputPlaceholder, outputPath, LanguagePlaceholder, n.language)
	args := make([]string, len(n.args))
	for i, arg := range n.args {
		args[i] = r.Replace(arg)
	}
	return args
}
