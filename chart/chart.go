// Package chart renders the single-bar impact chart.
//
// The image is drawn with gonum/plot: one teal bar labeled "Impact Score" on
// a y-axis fixed to 0–100. Render writes it to a fixed path, replacing the
// chart of the previous prediction. TextBar draws the same bar for the
// terminal.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	sippErrors "github.com/ezoic/sipp/pkg/errors"
	"github.com/ezoic/sipp/pkg/log"
)

// Axis range and labels.
const (
	YMin     = 0.0
	YMax     = 100.0
	BarLabel = "Impact Score"
	Title    = "District Project Impact"
)

// Teal is the bar color.
var Teal = color.RGBA{R: 0, G: 128, B: 128, A: 255}

// Renderer writes the chart image to Path.
type Renderer struct {
	Path   string
	Width  vg.Length
	Height vg.Length

	logger log.Logger
}

// NewRenderer returns a 4x3 inch renderer writing to path. The image format
// follows the extension (png when there is none).
func NewRenderer(path string) *Renderer {
	return &Renderer{
		Path:   path,
		Width:  4 * vg.Inch,
		Height: 3 * vg.Inch,
		logger: log.GetLoggerWithName("chart"),
	}
}

// New builds the plot for score.
func New(score float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.Y.Label.Text = BarLabel

	bars, err := plotter.NewBarChart(plotter.Values{score}, vg.Points(60))
	if err != nil {
		return nil, sippErrors.Wrap(err, "failed to create bar chart")
	}
	bars.Color = Teal
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(BarLabel)
	p.Y.Min = YMin
	p.Y.Max = YMax

	return p, nil
}

// Format returns the image format implied by path.
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

// Encode writes the chart for score to w in the given format.
func (r *Renderer) Encode(w io.Writer, score float64, format string) error {
	p, err := New(score)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(r.Width, r.Height, format)
	if err != nil {
		return sippErrors.Wrapf(err, "unsupported chart format %q", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return sippErrors.Wrap(err, "failed to write chart")
	}
	return nil
}

// Render draws the chart for score and replaces the file at r.Path.
func (r *Renderer) Render(score float64) error {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := r.Encode(tmp, score, Format(r.Path)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, r.Path); err != nil {
		return fmt.Errorf("failed to replace chart: %w", err)
	}

	if r.logger != nil {
		r.logger.Debug("Chart rendered",
			log.OperationKey, log.OperationRender,
			log.PathKey, r.Path,
			log.ScoreKey, score,
		)
	}
	return nil
}

// TextBar draws score on a width-cell track scaled to YMin–YMax. Scores
// outside the range are clamped.
func TextBar(score float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := (score - YMin) / (YMax - YMin)
	if math.IsNaN(frac) {
		frac = 0
	}
	frac = math.Max(0, math.Min(1, frac))

	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
