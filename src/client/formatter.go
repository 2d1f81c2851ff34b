package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/apimgr/ipweather/src/models"
)

// Formatter handles output formatting
type Formatter struct {
	Format string
	Color  bool
	label  lipgloss.Style
}

// NewFormatter creates a new formatter. When color is set, report labels are
// styled for out regardless of whether out is a terminal.
func NewFormatter(format string, color bool, out io.Writer) *Formatter {
	f := &Formatter{Format: format, Color: color}
	if color {
		renderer := lipgloss.NewRenderer(out)
		renderer.SetColorProfile(termenv.ANSI256)
		// Dracula cyan
		f.label = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("117"))
	}
	return f
}

// FormatSnapshot renders the full report in the configured format
func (f *Formatter) FormatSnapshot(s models.Snapshot) (string, error) {
	switch f.Format {
	case "json":
		return f.FormatJSON(s)
	default:
		return f.FormatText(s), nil
	}
}

// FormatText renders the nine-line report. Apparent temperature carries no
// unit because the upstream does not report one.
func (f *Formatter) FormatText(s models.Snapshot) string {
	c := s.Weather.Current
	u := s.Weather.Units

	var sb strings.Builder
	f.line(&sb, "Location:", fmt.Sprintf("%s, %s", s.Location.City, s.Location.Country))
	f.line(&sb, "Time:", fmt.Sprintf("%s (%s)", c.Time, c.DayLabel()))
	f.line(&sb, "Temperature:", withUnit(c.Temperature, u.Temperature))
	f.line(&sb, "Relative Humidity:", withUnit(c.RelativeHumidity, u.RelativeHumidity))
	f.line(&sb, "Apparent Temperature:", formatValue(c.ApparentTemperature))
	f.line(&sb, "Precipitation:", withUnit(c.Precipitation, u.Precipitation))
	f.line(&sb, "Rain:", withUnit(c.Rain, u.Rain))
	f.line(&sb, "Showers:", withUnit(c.Showers, u.Showers))
	f.line(&sb, "Snowfall:", withUnit(c.Snowfall, u.Snowfall))
	return sb.String()
}

// FormatJSON formats data as indented JSON with a trailing newline
func (f *Formatter) FormatJSON(data interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return string(jsonData) + "\n", nil
}

func (f *Formatter) line(sb *strings.Builder, label, value string) {
	if f.Color {
		label = f.label.Render(label)
	}
	sb.WriteString(label)
	sb.WriteString(" ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

func withUnit(v float64, unit string) string {
	return formatValue(v) + " " + unit
}

// useColor decides whether styled output goes to out
func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
