package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReportOutputOnly(t *testing.T) {
	got := RenderReport("", "hello\nworld\n")
	assert.Contains(t, got, "Output")
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "world")
	assert.NotContains(t, got, "Errors")
}

func TestRenderReportWithErrors(t *testing.T) {
	got := RenderReport("bad thing\n", "partial\n")
	assert.Contains(t, got, "Errors")
	assert.Contains(t, got, "bad thing")
	assert.Contains(t, got, "partial")
	assert.Less(t, strings.Index(got, "bad thing"), strings.Index(got, "partial"))
}

func TestRenderReportSingleCharErrorsHidden(t *testing.T) {
	got := RenderReport("\n", "")
	assert.NotContains(t, got, "Errors")
	assert.Contains(t, got, "(no output)")
}

func TestListing(t *testing.T) {
	got := Listing([]string{"print 1", "print 2"})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if assert.Len(t, lines, 2) {
		assert.Contains(t, lines[0], "1")
		assert.True(t, strings.HasSuffix(lines[0], "  print 1"))
		assert.True(t, strings.HasSuffix(lines[1], "  print 2"))
	}
	assert.Contains(t, Listing(nil), "(empty buffer)")
}

func TestMessages(t *testing.T) {
	assert.Contains(t, Success("saved"), "saved")
	assert.Contains(t, Error("failed"), "failed")
	assert.Contains(t, FileLabel("No File Selected"), "[No File Selected]")
	assert.Contains(t, Header("Yaj"), "Yaj")
	assert.Contains(t, Dim("hint"), "hint")
}
