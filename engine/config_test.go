package engine

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 120 || cfg.Height != 30 {
		t.Errorf("Expected 120x30 default grid, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ActiveGlyph != '#' {
		t.Errorf("Expected '#' active glyph, got %q", cfg.ActiveGlyph)
	}
	if cfg.EmptyGlyph != ' ' {
		t.Errorf("Expected space empty glyph, got %q", cfg.EmptyGlyph)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"small grid", func(c *Config) { c.Width = 1; c.Height = 1 }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -5 }, true},
		{"zero active glyph", func(c *Config) { c.ActiveGlyph = 0 }, true},
		{"zero empty glyph", func(c *Config) { c.EmptyGlyph = 0 }, true},
		{"wide active glyph", func(c *Config) { c.ActiveGlyph = '世' }, true},
		{"wide empty glyph", func(c *Config) { c.EmptyGlyph = '界' }, true},
		{"unicode narrow glyph", func(c *Config) { c.ActiveGlyph = '·' }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
