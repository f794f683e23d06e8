package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"cropwater/pkg/reference"
)

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string

	// reference tables; an XLSX workbook wins over the CSV files
	SoilCSV       string
	CropCSV       string
	LocationCSV   string
	ReferenceXLSX string
	DefaultCrop   string
	DefaultSoil   string

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	// advisory URL ingestion
	AdvisoryAllowedDomains []string
	AdvisoryMaxBytes       int

	ReminderCron string
	EnableLIFF   bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		Timezone:      get("TZ", "Asia/Kolkata"),
		DBPath:        get("DB_PATH", "cropwater.db"),
		SoilCSV:       get("SOIL_CSV", ""),
		CropCSV:       get("CROP_CSV", ""),
		LocationCSV:   get("LOCATION_CSV", ""),
		ReferenceXLSX: get("REFERENCE_XLSX", ""),
		DefaultCrop:   get("DEFAULT_CROP", "Rice"),
		DefaultSoil:   get("DEFAULT_SOIL", "Red Soil"),
		LLMEndpoint:   get("LLM_ENDPOINT", ""),
		LLMAPIKey:     get("LLM_API_KEY", ""),
		LLMModel:      get("LLM_MODEL", "gpt-4o-mini"),
		ReminderCron:  get("REMINDER_CRON", "0 6 * * *"),
		EnableLIFF:    get("ENABLE_LIFF", "false") == "true",
	}
	cfg.AdvisoryAllowedDomains = splitList(get("ADVISORY_ALLOWED_DOMAINS", ""))
	cfg.AdvisoryMaxBytes, _ = strconv.Atoi(get("ADVISORY_MAX_BYTES", "1500000"))
	if cfg.AdvisoryMaxBytes <= 0 {
		cfg.AdvisoryMaxBytes = 1500000
	}
	log.Printf("[cfg] %+v", cfg.redacted())
	return cfg
}

// Sources is the reference table configuration.
func (c AppConfig) Sources() reference.Sources {
	return reference.Sources{
		SoilCSV:     c.SoilCSV,
		CropCSV:     c.CropCSV,
		LocationCSV: c.LocationCSV,
		XLSX:        c.ReferenceXLSX,
	}
}

func (c AppConfig) redacted() AppConfig {
	if c.LLMAPIKey != "" {
		c.LLMAPIKey = "***"
	}
	return c
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
