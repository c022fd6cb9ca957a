package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding of a report.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (use text, json or yaml)", s)
	}
}

// Summary is the machine-readable form of a categorized report.
type Summary struct {
	Start      time.Time
	End        time.Time
	Categories []CategoryTotal
	Work       time.Duration
	Slacking   time.Duration
}

// Summary aggregates the window without rendering it.
func (r *Reports) Summary() Summary {
	work, slacking := r.window.Totals()
	return Summary{
		Start:      r.window.Start(),
		End:        r.window.End(),
		Categories: r.Categories(),
		Work:       work,
		Slacking:   slacking,
	}
}

type summaryDoc struct {
	Start           string        `json:"start" yaml:"start"`
	End             string        `json:"end" yaml:"end"`
	Categories      []categoryDoc `json:"categories" yaml:"categories"`
	WorkMinutes     int64         `json:"work_minutes" yaml:"work_minutes"`
	SlackingMinutes int64         `json:"slacking_minutes" yaml:"slacking_minutes"`
	Work            string        `json:"work" yaml:"work"`
	Slacking        string        `json:"slacking" yaml:"slacking"`
}

type categoryDoc struct {
	Name          string `json:"name" yaml:"name"`
	Uncategorized bool   `json:"uncategorized,omitempty" yaml:"uncategorized,omitempty"`
	Minutes       int64  `json:"minutes" yaml:"minutes"`
	Duration      string `json:"duration" yaml:"duration"`
}

func (s Summary) doc() summaryDoc {
	doc := summaryDoc{
		Start:           s.Start.Format(time.RFC3339),
		End:             s.End.Format(time.RFC3339),
		Categories:      make([]categoryDoc, 0, len(s.Categories)),
		WorkMinutes:     Minutes(s.Work),
		SlackingMinutes: Minutes(s.Slacking),
		Work:            FormatDuration(s.Work),
		Slacking:        FormatDuration(s.Slacking),
	}
	for _, c := range s.Categories {
		doc.Categories = append(doc.Categories, categoryDoc{
			Name:          c.Label(),
			Uncategorized: c.Uncategorized,
			Minutes:       Minutes(c.Duration),
			Duration:      FormatDuration(c.Duration),
		})
	}
	return doc
}

// WriteSummary encodes the summary of the window as JSON or YAML.
func (r *Reports) WriteSummary(w io.Writer, format Format) error {
	doc := r.Summary().doc()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = sonic.MarshalIndent(doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("summary cannot be written as %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	_, err = w.Write(data)
	return err
}
