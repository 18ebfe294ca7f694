package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Program
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			want: Program{Input: "pong.ch8", Keymap: "qwerty", Size: "normal", Scale: 20, InstructionsPerSecond: 700},
		},
		{
			name: "colemak large",
			args: []string{"-keymap", "Colemak", "-size", "LARGE", "pong.ch8"},
			want: Program{Input: "pong.ch8", Keymap: "colemak", Size: "large", Scale: 30, InstructionsPerSecond: 700},
		},
		{
			name: "rate and logging",
			args: []string{"-ips", "1000", "-debug", "-q", "-size", "small", "rom.bin"},
			want: Program{Input: "rom.bin", Keymap: "qwerty", Size: "small", Scale: 10, InstructionsPerSecond: 1000, Debug: true, Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags("chopper", tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Version(t *testing.T) {
	opts, err := ParseFlags("chopper", []string{"-version"})
	assert.NoError(t, err)
	assert.True(t, opts.Version)
}

func TestParseFlags_Usage(t *testing.T) {
	tests := [][]string{
		{},
		{"a.ch8", "b.ch8"},
		{"-unknown", "a.ch8"},
		{"-h"},
	}

	for _, args := range tests {
		_, err := ParseFlags("chopper", args)
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))

		var buf bytes.Buffer
		usageErr.ShowUsage(&buf)
		assert.True(t, strings.HasPrefix(buf.String(), "usage: chopper [options] <CHIP-8 program>"))
		assert.True(t, strings.Contains(buf.String(), "-keymap"))
	}
}

func TestParseFlags_InvalidValues(t *testing.T) {
	tests := [][]string{
		{"-keymap", "dvorak", "a.ch8"},
		{"-size", "huge", "a.ch8"},
		{"-ips", "0", "a.ch8"},
	}

	for _, args := range tests {
		_, err := ParseFlags("chopper", args)
		assert.True(t, err != nil)
		var usageErr *UsageError
		assert.False(t, errors.As(err, &usageErr))
	}
}

func TestCreateLoggerWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := CreateLoggerWithOutput(&buf, false, true)
	logger.Info("hidden")
	logger.Error("shown")

	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))
}
