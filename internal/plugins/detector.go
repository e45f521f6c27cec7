package plugins

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"beetbridge/internal/decision"
	"beetbridge/internal/logging"
)

// FetchFunc supplies a fresh `beet config` dump. The collaborator that owns
// process invocation provides it; this package only parses text.
type FetchFunc func(ctx context.Context) (string, error)

// Detector caches the enabled plugin set for a TTL.
type Detector struct {
	fetch  FetchFunc
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu        sync.Mutex
	cached    map[string]struct{}
	fetchedAt time.Time
}

// Option customizes detector construction.
type Option func(*Detector)

// WithClock overrides the time source, used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDetector builds a detector around the supplied fetch function.
func NewDetector(fetch FetchFunc, ttl time.Duration, logger *slog.Logger, opts ...Option) *Detector {
	detector := &Detector{
		fetch:  fetch,
		ttl:    ttl,
		now:    time.Now,
		logger: logging.NewComponentLogger(logger, "plugins"),
	}
	for _, opt := range opts {
		opt(detector)
	}
	return detector
}

// Enabled returns the set of enabled plugin names, refreshing when the
// cached set is older than the TTL.
func (d *Detector) Enabled(ctx context.Context) (map[string]struct{}, error) {
	return d.enabled(ctx, false)
}

// Refresh discards the cache and fetches a fresh plugin set.
func (d *Detector) Refresh(ctx context.Context) (map[string]struct{}, error) {
	return d.enabled(ctx, true)
}

func (d *Detector) enabled(ctx context.Context, force bool) (map[string]struct{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !force && d.cached != nil && d.now().Sub(d.fetchedAt) < d.ttl {
		return copySet(d.cached), nil
	}

	dump, err := d.fetch(ctx)
	if err != nil {
		// A stale set beats an error when one exists.
		if d.cached != nil {
			d.logger.Warn("plugin refresh failed, serving stale set", logging.Error(err))
			return copySet(d.cached), nil
		}
		return nil, err
	}

	plugins := ParseConfigDump(dump)
	d.cached = plugins
	d.fetchedAt = d.now()
	d.logger.Debug("detected plugins", logging.Int("count", len(plugins)))
	return copySet(plugins), nil
}

// Has reports whether a plugin is enabled.
func (d *Detector) Has(ctx context.Context, name string) (bool, error) {
	plugins, err := d.Enabled(ctx)
	if err != nil {
		return false, err
	}
	_, ok := plugins[strings.ToLower(strings.TrimSpace(name))]
	return ok, nil
}

// MetadataSources returns the available providers in priority order.
// MusicBrainz is beets' built-in default and always listed first.
func (d *Detector) MetadataSources(ctx context.Context) ([]decision.Source, error) {
	sources := []decision.Source{decision.SourceMusicBrainz}
	hasDiscogs, err := d.Has(ctx, "discogs")
	if err != nil {
		return sources, err
	}
	if hasDiscogs {
		sources = append(sources, decision.SourceDiscogs)
	}
	return sources, nil
}

var singleLinePluginsPattern = regexp.MustCompile(`(?m)^plugins:[ \t]*(\S.*)$`)

// ParseConfigDump extracts the enabled plugin set from `beet config`
// output. Both the single-line form ("plugins: a b c") and the YAML list
// form are recognized.
func ParseConfigDump(dump string) map[string]struct{} {
	plugins := make(map[string]struct{})
	if strings.TrimSpace(dump) == "" {
		return plugins
	}

	if m := singleLinePluginsPattern.FindStringSubmatch(dump); m != nil {
		value := strings.TrimSpace(m[1])
		if value != "" && !strings.HasPrefix(value, "[") {
			for _, name := range strings.FieldsFunc(value, func(r rune) bool { return r == ' ' || r == '\t' || r == ',' }) {
				addPlugin(plugins, name)
			}
		}
	}

	inSection := false
	for _, line := range strings.Split(dump, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "plugins:") {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(stripped, "-") || strings.HasPrefix(stripped, "*") {
			name := strings.TrimSpace(strings.TrimLeft(stripped, "-* "))
			if name != "" && !strings.HasSuffix(name, ":") {
				addPlugin(plugins, name)
			}
			continue
		}
		// Another top-level key ends the section.
		if stripped != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			inSection = false
		}
	}

	return plugins
}

// Names returns the sorted plugin names of a set, for display.
func Names(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addPlugin(set map[string]struct{}, name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" {
		set[name] = struct{}{}
	}
}

func copySet(set map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for key := range set {
		out[key] = struct{}{}
	}
	return out
}
