package movie

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

const (
	// VideoCodec and AudioCodec are used for every composed movie
	VideoCodec = "libx264"
	AudioCodec = "aac"

	// Generated background geometry
	BackgroundSize     = "1280x720"
	BackgroundDuration = 10

	// CaptionLength is the number of script characters burned into a background
	CaptionLength = 40

	// PreviewTimestamp is where preview frames are grabbed from
	PreviewTimestamp = "00:00:02.000"
)

// Runner executes an external binary and returns its combined output
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error)
}

// ExecRunner runs binaries through os/exec
type ExecRunner struct{}

// Run executes name with args, killing the process when ctx is done.
// A failed run returns a *domain.CommandError holding the output.
func (ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var output strings.Builder
	cmd.Stdin = stdin
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return output.String(), &domain.CommandError{
			Name:   filepath.Base(name),
			Output: output.String(),
			Err:    err,
		}
	}
	return output.String(), nil
}

// concatArgs joins the manifest entries and muxes in the narration track
func concatArgs(manifestPath, narrationPath, outputPath string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-i", narrationPath,
		"-c:v", VideoCodec,
		"-c:a", AudioCodec,
		"-shortest",
		outputPath,
	}
}

// backgroundArgs renders a solid color clip with a centered caption
func backgroundArgs(color Color, text, narrationPath, outputPath string) []string {
	source := fmt.Sprintf("color=c=%s:s=%s:d=%d", color, BackgroundSize, BackgroundDuration)
	drawtext := fmt.Sprintf(
		"drawtext=text=%s:fontcolor=white:fontsize=48:x=(w-text_w)/2:y=(h-text_h)/2",
		escapeDrawtext(caption(text)),
	)
	return []string{
		"-y",
		"-f", "lavfi",
		"-i", source,
		"-i", narrationPath,
		"-vf", drawtext,
		"-c:v", VideoCodec,
		"-c:a", AudioCodec,
		"-shortest",
		outputPath,
	}
}

// frameArgs grabs a single JPEG frame at PreviewTimestamp
func frameArgs(moviePath, previewPath string) []string {
	return []string{
		"-y",
		"-i", moviePath,
		"-ss", PreviewTimestamp,
		"-vframes", "1",
		previewPath,
	}
}

// caption returns the first CaptionLength characters of text
func caption(text string) string {
	runes := []rune(text)
	if len(runes) > CaptionLength {
		runes = runes[:CaptionLength]
	}
	return string(runes)
}

var (
	// drawtext expansion: %{...} sequences and backslashes
	expansionEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`)
	// option value inside the filter arguments
	optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)
	// filtergraph description
	graphEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `[`, `\[`, `]`, `\]`, `,`, `\,`, `;`, `\;`)
)

// escapeDrawtext escapes text for the three parsing levels it passes through
func escapeDrawtext(text string) string {
	return graphEscaper.Replace(optionEscaper.Replace(expansionEscaper.Replace(text)))
}

var manifestEscaper = strings.NewReplacer(`'`, `'\''`)

// manifestLine formats one concat demuxer entry
func manifestLine(path string) string {
	return "file '" + manifestEscaper.Replace(path) + "'\n"
}
