package loader

import (
	"testing"
)

func getByPath(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, p := range path {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = mm[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoader(DefaultEnvPrefix)
	loader.environ = func() []string {
		return []string{
			"UEMACS_TAB_WIDTH=4",
			"UEMACS_DRIVER=ansi",
			"UEMACS_DISPLAY_SCROLL_JUMP=3",
			"UEMACS_DISPLAY_HSCROLL=off",
			"HOME=/home/user",
			"UEMACS_BROKEN",
		}
	}

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "display", "tabWidth"); !ok || val != int64(4) {
		t.Errorf("display.tabWidth = %v (%T), want 4", val, val)
	}
	if val, ok := getByPath(config, "terminal", "driver"); !ok || val != "ansi" {
		t.Errorf("terminal.driver = %v, want ansi", val)
	}
	if val, ok := getByPath(config, "display", "scrollJump"); !ok || val != int64(3) {
		t.Errorf("display.scrollJump = %v, want 3", val)
	}
	if val, ok := getByPath(config, "display", "hscroll"); !ok || val != false {
		t.Errorf("display.hscroll = %v, want false", val)
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variable was loaded")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		env      string
		expected string
	}{
		{"UEMACS_DISPLAY_TAB_WIDTH", "display.tabWidth"},
		{"UEMACS_LOGGING_LEVEL", "logging.level"},
		{"UEMACS_TERMINAL_MAX_ROWS", "terminal.maxRows"},
		{"UEMACS_SIMPLE", ""},
	}

	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := NewEnvLoader(DefaultEnvPrefix)
	loader.AddMapping("UEMACS_FG", "display.foreground")
	loader.environ = func() []string { return []string{"UEMACS_FG=yellow"} }

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, ok := getByPath(config, "display", "foreground"); !ok || val != "yellow" {
		t.Errorf("display.foreground = %v, want yellow", val)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"42", int64(42)},
		{"-1", int64(-1)},
		{"1.5", "1.5"},
		{"tcell", "tcell"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
