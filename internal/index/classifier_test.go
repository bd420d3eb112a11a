package index

import (
	"testing"

	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/models"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	c, err := NewClassifier(&cfg.Markers)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestClassifier_IsEntrance(t *testing.T) {
	c := defaultClassifier(t)
	tests := []struct {
		text string
		want bool
	}{
		{"Indgang", true},
		{"INDGANG A", true},
		{"Hovedindgang", true}, // containment, not equality
		{"Entrance", true},
		{"entry", true},
		{"A.1.10", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.IsEntrance(tt.text); got != tt.want {
			t.Errorf("IsEntrance(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestClassifier_IsRoom(t *testing.T) {
	c := defaultClassifier(t)
	tests := []struct {
		text     string
		fontSize float64
		want     bool
	}{
		{"A.1.10", 3.4, true},
		{"PH-D1", 3.4, true},
		{"01_02", 3.4, true},
		{"A101", 3.4, true},
		{"202A", 3.4, true},
		{"PH-D1.11_01", 49.2, true}, // second configured font window
		{"a.1.10", 3.4, true},       // patterns are case-insensitive
		{"12.5m2", 3.4, false},      // area measurement excluded
		{"3.14159", 3.4, false},     // bare number excluded
		{"scale", 3.4, false},       // technical term excluded
		{"A.1.10", 12.0, false},     // outside both font windows
		{"THIS LABEL IS FAR TOO LONG", 3.4, false},
		{"", 3.4, false},
	}
	for _, tt := range tests {
		l := models.Label{Text: tt.text, FontSize: tt.fontSize}
		if got := c.IsRoom(l); got != tt.want {
			t.Errorf("IsRoom(%q, %v) = %v, want %v", tt.text, tt.fontSize, got, tt.want)
		}
	}
}

func TestClassifier_IsRoom_unknownFontSize(t *testing.T) {
	c := defaultClassifier(t)
	// A source that cannot measure text reports zero; the font check must not reject it.
	if !c.IsRoom(models.Label{Text: "A.1.10"}) {
		t.Error("label without font size should pass the font check")
	}
}

func TestNewClassifier_badPattern(t *testing.T) {
	rules := config.MarkerConfig{RoomPatterns: []string{"("}}
	if _, err := NewClassifier(&rules); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
