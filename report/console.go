package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/hk"
	"golang.org/x/term"
)

// Config holds output parameters for console rendering.
type Config struct {
	// LineWidth is the usable line length in character positions.
	LineWidth int
	// Bins is the number of histogram bins over the opinion interval [0,1].
	Bins int
}

// ConfigFromTerminal is a simple helper for creating a rendering Config.
// It checks whether stdout is a terminal, and if so it reads the terminal's
// width and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{Bins: 20}
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err != nil {
			config.LineWidth = 65
		} else if w > 65 {
			config.LineWidth = w - 10
		} else if w > 30 {
			config.LineWidth = w - 5
		} else {
			config.LineWidth = 30
		}
	} else {
		config.LineWidth = 65
	}
	T().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}

// Console renders model state as text with a fixed width font, using colors
// to set off headings and bars.
type Console struct {
	config  *Config
	heading *color.Color
	bar     *color.Color
	comment *color.Color
}

// NewConsole creates a console renderer. A nil config is filled in from the
// current terminal's properties.
func NewConsole(config *Config) *Console {
	if config == nil {
		config = ConfigFromTerminal()
	}
	if config.Bins <= 0 {
		config.Bins = 20
	}
	if config.LineWidth < 30 {
		config.LineWidth = 30
	}
	return &Console{
		config:  config,
		heading: color.New(color.FgRed, color.Bold),
		bar:     color.New(color.FgBlue),
		comment: color.New(color.Faint),
	}
}

// Render writes a summary of the model state to w: the run header, an
// opinion histogram aggregated from the opinion tree, and the cluster table.
func (c *Console) Render(w io.Writer, m *hk.Model) error {
	c.heading.Fprintf(w, "Hegselmann-Krause, %d agents, %s updates\n", m.N(), m.Policy())
	c.comment.Fprintf(w, "%d sweeps, accumulated change %.6f\n\n", m.Sweeps(), m.AccumulatedChange())
	if err := c.renderHistogram(w, m); err != nil {
		return err
	}
	return c.renderClusters(w, m)
}

// renderHistogram draws one bar per opinion bin. Bin counts come from the
// model's opinion tree, so clusters of identical opinions are cheap to
// aggregate.
func (c *Console) renderHistogram(w io.Writer, m *hk.Model) error {
	bins := make([]int, c.config.Bins)
	m.Opinions().ForEachEntry(func(key float64, mult int) bool {
		slot := int(key * float64(len(bins)))
		if slot < 0 {
			slot = 0
		}
		if slot >= len(bins) {
			slot = len(bins) - 1
		}
		bins[slot] += mult
		return true
	})
	maxCount := 0
	for _, n := range bins {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		return nil
	}
	width := c.config.LineWidth - 18 // label + count columns
	for i, n := range bins {
		lo := float64(i) / float64(len(bins))
		bar := strings.Repeat("█", n*width/maxCount)
		if _, err := fmt.Fprintf(w, "%5.2f  ", lo); err != nil {
			return err
		}
		c.bar.Fprint(w, bar)
		if _, err := fmt.Fprintf(w, " %d\n", n); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return nil
}

func (c *Console) renderClusters(w io.Writer, m *hk.Model) error {
	clusters := m.Clusters()
	c.heading.Fprintf(w, "%d cluster(s)\n", len(clusters))
	for _, cl := range clusters {
		share := float64(cl.Size) / float64(m.N()) * 100
		if _, err := fmt.Fprintf(w, "  at %.4f: %4d agents (%5.1f%%)\n",
			cl.Opinion, cl.Size, share); err != nil {
			return err
		}
	}
	return nil
}
