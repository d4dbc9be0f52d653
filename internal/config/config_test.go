package config

import (
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/videos", "/media/videos"},
		{"single trailing slash", "/media/videos/", "/media/videos"},
		{"multiple trailing slashes", "/media/videos///", "/media/videos"},
		{"root path", "/", "/"},
		{"relative path", "videos", "videos"},
		{"double quoted", `"/media/my videos"`, "/media/my videos"},
		{"single quoted with newline", "'/media/videos'\n", "/media/videos"},
		{"surrounding spaces", "  /media/videos  ", "/media/videos"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPromptInputDir(t *testing.T) {
	var out strings.Builder
	dir, err := PromptInputDir(strings.NewReader("\"/tmp/clips/\"\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/clips", dir)
	assert.Contains(t, out.String(), "Enter the path to the folder containing videos")
}

func TestPromptInputDir_NoTrailingNewline(t *testing.T) {
	var out strings.Builder
	dir, err := PromptInputDir(strings.NewReader("/tmp/clips"), &out)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/clips", dir)
}

func TestPromptInputDir_Empty(t *testing.T) {
	var out strings.Builder
	_, err := PromptInputDir(strings.NewReader("   \n"), &out)
	assert.Error(t, err)
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresInputDir(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "empty InputDir should fail outside check mode")

	cfg.InputDir = "/videos"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CheckOnlySkipsInputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "ffmpeg", cfg.FFmpegBin)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.ReportFile)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg Config)
	}{
		{"positional dir", []string{"/videos/"}, func(t *testing.T, cfg Config) {
			assert.Equal(t, "/videos", cfg.InputDir)
		}},
		{"no dir leaves prompt to caller", nil, func(t *testing.T, cfg Config) {
			assert.Empty(t, cfg.InputDir)
		}},
		{"short flags", []string{"-d", "-v", "-l", "run.log", "-r", "out.yaml", "/v"}, func(t *testing.T, cfg Config) {
			assert.True(t, cfg.DryRun)
			assert.True(t, cfg.Verbose)
			assert.Equal(t, "run.log", cfg.LogFile)
			assert.Equal(t, "out.yaml", cfg.ReportFile)
		}},
		{"long flags", []string{"--dry-run", "--check", "--report", "r.json"}, func(t *testing.T, cfg Config) {
			assert.True(t, cfg.DryRun)
			assert.True(t, cfg.CheckOnly)
			assert.Equal(t, "r.json", cfg.ReportFile)
		}},
		{"no-color beats color", []string{"--color", "--no-color", "/v"}, func(t *testing.T, cfg Config) {
			assert.Equal(t, ColorNever, cfg.ColorMode)
		}},
		{"color forces always", []string{"--color", "/v"}, func(t *testing.T, cfg Config) {
			assert.Equal(t, ColorAlways, cfg.ColorMode)
		}},
		{"version", []string{"-V"}, func(t *testing.T, cfg Config) {
			assert.True(t, cfg.ShowVersion)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, ParseFlags(&cfg, tt.args))
			tt.check(t, cfg)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, ParseFlags(&cfg, []string{"/a", "/b"}), "two positional args")

	cfg = DefaultConfig()
	assert.Error(t, ParseFlags(&cfg, []string{"--crf", "20", "/a"}), "codec params are not configurable")

	cfg = DefaultConfig()
	err := ParseFlags(&cfg, []string{"--help"})
	assert.True(t, errors.Is(err, flag.ErrHelp))
}
