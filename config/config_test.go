package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "DEFAULT_CROP", "DEFAULT_SOIL", "REMINDER_CRON", "REFERENCE_XLSX", "ENABLE_LIFF"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DBPath != "cropwater.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DefaultCrop != "Rice" || cfg.DefaultSoil != "Red Soil" {
		t.Errorf("defaults = %q / %q", cfg.DefaultCrop, cfg.DefaultSoil)
	}
	if cfg.ReminderCron != "0 6 * * *" || cfg.EnableLIFF {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DEFAULT_CROP", "Banana")
	t.Setenv("REFERENCE_XLSX", "tables.xlsx")
	t.Setenv("LLM_API_KEY", "sk-secret")
	t.Setenv("ENABLE_LIFF", "true")
	cfg := Load()
	if cfg.DefaultCrop != "Banana" || !cfg.EnableLIFF || cfg.LLMAPIKey != "sk-secret" {
		t.Errorf("cfg = %+v", cfg)
	}
	if src := cfg.Sources(); src.XLSX != "tables.xlsx" {
		t.Errorf("sources = %+v", src)
	}
	if cfg.redacted().LLMAPIKey != "***" {
		t.Error("api key must be redacted in logs")
	}
}

func TestAdvisorySettings(t *testing.T) {
	t.Setenv("ADVISORY_ALLOWED_DOMAINS", " agritech.tnau.ac.in, ,FAO.org ")
	t.Setenv("ADVISORY_MAX_BYTES", "-5")
	cfg := Load()
	if len(cfg.AdvisoryAllowedDomains) != 2 || cfg.AdvisoryAllowedDomains[1] != "fao.org" {
		t.Errorf("domains = %q", cfg.AdvisoryAllowedDomains)
	}
	if cfg.AdvisoryMaxBytes != 1500000 {
		t.Errorf("max bytes = %d", cfg.AdvisoryMaxBytes)
	}
}
