package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_StartStop(t *testing.T) {
	defer func(c bool) { Colors = c }(Colors)
	Colors = false

	var buf bytes.Buffer
	s := NewSpinner(&buf, "loading", time.Millisecond, false)
	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop("done\n")
	// A second stop is ignored.
	s.Stop("again\n")

	out := buf.String()
	assert.Contains(t, out, "loading")
	assert.True(t, strings.HasSuffix(out, "done\n"))
	assert.NotContains(t, out, "again")
}
