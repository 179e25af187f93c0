package loader

import "testing"

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader("KEYLINE_")
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	loader := newTestEnvLoader(
		"KEYLINE_EDITOR_TAB_WIDTH=2",
		"KEYLINE_EDITOR_HISTORY_SIZE=none",
		"KEYLINE_LOG=debug",
		"KEYLINE_EMPTY=",
		"HOME=/root",
	)
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"editor.tab_width", int64(2)},
		{"editor.history_size", "none"},
		{"logging.level", "debug"},
	}
	for _, tt := range tests {
		if val, ok := getByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, val, val, tt.want)
		}
	}

	if _, ok := config["empty"]; ok {
		t.Error("empty values should be ignored")
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := newTestEnvLoader("KEYLINE_OVERWRITE=yes")
	loader.AddMapping("KEYLINE_OVERWRITE", "editor.overwrite")

	config, _ := loader.Load()
	if val, ok := getByPath(config, "editor.overwrite"); !ok || val != true {
		t.Errorf("editor.overwrite = %v, want true", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("KEYLINE_")

	tests := []struct {
		env      string
		expected string
	}{
		{"KEYLINE_EDITOR_TAB_WIDTH", "editor.tab_width"},
		{"KEYLINE_LOGGING_FILE", "logging.file"},
		{"KEYLINE_SIMPLE", "simple"},
	}

	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"42", int64(42)},
		{"0", int64(0)},
		{"-1", int64(-1)},
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"infinite", "infinite"},
		{"1.5", "1.5"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

func getByPath(data map[string]any, path string) (any, bool) {
	current := data
	var val any
	for i, part := range splitPath(path) {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(splitPath(path))-1 {
			val = v
			break
		}
		current, ok = v.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return val, true
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			parts = append(parts, path[start:i])
			start = i + 1
		}
	}
	return append(parts, path[start:])
}
