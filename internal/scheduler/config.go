package scheduler

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
)

// Options tunes a sync run. The YAML file is optional; zero values fall
// back to provider defaults (full page of New York events).
type Options struct {
	IntervalMinutes int    `yaml:"interval_minutes"`
	Keyword         string `yaml:"keyword"`
	PageSize        int    `yaml:"page_size"`
	Page            int    `yaml:"page"`
	LookaheadDays   int    `yaml:"lookahead_days"`
}

// LoadOptions reads the sync tuning file. A missing path returns
// defaults without error.
func LoadOptions(path string) (Options, error) {
	var o Options
	if path == "" {
		return o, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("read sync config: %w", err)
	}
	if err := yaml.Unmarshal(b, &o); err != nil {
		return o, fmt.Errorf("parse sync config: %w", err)
	}
	return o, nil
}

// SyncOptions converts the file options into the provider fetch shape,
// bounding the date range when a lookahead is configured.
func (o Options) SyncOptions(now time.Time) providers.SyncOptions {
	opts := providers.SyncOptions{
		Keyword:  o.Keyword,
		PageSize: o.PageSize,
		Page:     o.Page,
	}
	if o.LookaheadDays > 0 {
		opts.StartDateTime = now.UTC().Format("2006-01-02T15:04:05Z")
		opts.EndDateTime = now.UTC().AddDate(0, 0, o.LookaheadDays).Format("2006-01-02T15:04:05Z")
	}
	return opts
}
