package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.DatabaseURL == "" {
		t.Errorf("expected a default DatabaseURL")
	}
	if cfg.RedisURL == "" {
		t.Errorf("expected a default RedisURL")
	}
	if cfg.GablakWindowMS != 5000 {
		t.Errorf("expected default GablakWindowMS 5000, got %d", cfg.GablakWindowMS)
	}
	if cfg.QaydHoldMS != 2000 {
		t.Errorf("expected default QaydHoldMS 2000, got %d", cfg.QaydHoldMS)
	}
	if cfg.NeuralModelPath == "" {
		t.Errorf("expected a default NeuralModelPath")
	}
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test/db")
	t.Setenv("GABLAK_WINDOW_MS", "1500")
	t.Setenv("QAYD_HOLD_MS", "750")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://test/db" {
		t.Errorf("expected DatabaseURL override, got %s", cfg.DatabaseURL)
	}
	if cfg.GablakWindowMS != 1500 {
		t.Errorf("expected GablakWindowMS override 1500, got %d", cfg.GablakWindowMS)
	}
	if cfg.QaydHoldMS != 750 {
		t.Errorf("expected QaydHoldMS override 750, got %d", cfg.QaydHoldMS)
	}
}

func TestEnvIntOrDefaultIgnoresGarbage(t *testing.T) {
	t.Setenv("GABLAK_WINDOW_MS", "not-a-number")
	if got := envIntOrDefault("GABLAK_WINDOW_MS", 5000); got != 5000 {
		t.Errorf("expected fallback 5000 on unparsable value, got %d", got)
	}
}
