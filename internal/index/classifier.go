package index

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/models"
)

// Classifier decides whether a label marks an entrance or names a room,
// using the configured marker vocabulary and room pattern rules.
type Classifier struct {
	keywords   []string
	rooms      []*regexp.Regexp
	excludes   []*regexp.Regexp
	fontRanges []config.FontSizeRange
	minLen     int
	maxLen     int
}

// NewClassifier compiles the marker rules. Pattern matching is
// case-insensitive. Returns an error for an invalid pattern.
func NewClassifier(rules *config.MarkerConfig) (*Classifier, error) {
	c := &Classifier{
		fontRanges: rules.FontSizeRanges,
		minLen:     rules.MinTextLength,
		maxLen:     rules.MaxTextLength,
	}
	for _, kw := range rules.EntranceKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			c.keywords = append(c.keywords, kw)
		}
	}
	var err error
	if c.rooms, err = compileAll(rules.RoomPatterns); err != nil {
		return nil, fmt.Errorf("room pattern: %w", err)
	}
	if c.excludes, err = compileAll(rules.ExcludePatterns); err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}
	return c, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// IsEntrance reports whether the text contains an entrance keyword,
// case-insensitive. Entrance classification runs before the room check.
func (c *Classifier) IsEntrance(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsRoom reports whether the label names a room: length within bounds, font
// size inside a configured range, no exclude pattern hit, and at least one
// room pattern match. A label without a reported font size passes the font
// check, so sources that cannot measure text are still usable.
func (c *Classifier) IsRoom(l models.Label) bool {
	text := strings.TrimSpace(l.Text)
	if len(text) < c.minLen || (c.maxLen > 0 && len(text) > c.maxLen) {
		return false
	}
	if !c.fontSizeOK(l.FontSize) {
		return false
	}
	for _, re := range c.excludes {
		if re.MatchString(text) {
			return false
		}
	}
	for _, re := range c.rooms {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (c *Classifier) fontSizeOK(size float64) bool {
	if len(c.fontRanges) == 0 || size <= 0 {
		return true
	}
	for _, r := range c.fontRanges {
		if r.Contains(size) {
			return true
		}
	}
	return false
}
