package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keytrainer/internal/config"
	"github.com/verte-zerg/keytrainer/internal/model"
)

func validTestConfig() model.Config {
	return model.Config{
		Route:    "/game",
		Keyboard: model.KeyboardConfig{ReleaseMs: defaultReleaseMs},
		Game:     model.GameConfig{Delay: 1, Capacity: 5, Charset: "abc"},
		Practice: model.PracticeConfig{Length: 10, Delay: 1, WeakTop: 2, WeakFactor: 2},
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validTestConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(*model.Config){
		"route":    func(c *model.Config) { c.Route = "/nope" },
		"release":  func(c *model.Config) { c.Keyboard.ReleaseMs = -1 },
		"delay":    func(c *model.Config) { c.Game.Delay = 0 },
		"capacity": func(c *model.Config) { c.Game.Capacity = 0 },
		"charset":  func(c *model.Config) { c.Game.Charset = "" },
		"length":   func(c *model.Config) { c.Practice.Length = 0 },
		"pace":     func(c *model.Config) { c.Practice.Delay = -1 },
		"weak-top": func(c *model.Config) { c.Practice.WeakTop = -1 },
	}
	for name, mutate := range cases {
		cfg := validTestConfig()
		mutate(&cfg)
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	var cfg config.FileConfig
	md, err := toml.Decode(strings.Join(lines, "\n"), &cfg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		t.Fatalf("template has unknown keys: %v", undecoded)
	}
	if cfg.Game.Capacity == nil || *cfg.Game.Capacity != defaultGameCapacity {
		t.Fatalf("unexpected capacity: %v", cfg.Game.Capacity)
	}
	if cfg.Keyboard.ReleaseMs == nil || *cfg.Keyboard.ReleaseMs != defaultReleaseMs {
		t.Fatalf("unexpected release-ms: %v", cfg.Keyboard.ReleaseMs)
	}
}

func TestRoutesCmdListsTable(t *testing.T) {
	cmd := newRoutesCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	if err := runRoutesCmd(cmd, nil); err != nil {
		t.Fatalf("routes: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"/game", "/index", "(AZQ)", "/terms"} {
		if !strings.Contains(out, want) {
			t.Fatalf("routes output missing %q: %s", want, out)
		}
	}
}

func TestLogErrfWritesToStderr(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stderr
	os.Stderr = w
	logErrf("failed to close log: %v\n", "boom")
	os.Stderr = orig
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(out) != "failed to close log: boom\n" {
		t.Fatalf("unexpected stderr: %q", out)
	}

	os.Stderr = w
	logErrf("ignored after close\n")
	os.Stderr = orig
}
