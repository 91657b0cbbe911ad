package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredKeepsVersionShape(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got := Colored(); got != Version {
		t.Fatalf("Colored without color = %q, want %q", got, Version)
	}
}
