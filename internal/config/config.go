package config

import (
	"errors"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Columns names the dataset columns the loader looks for.
type Columns struct {
	Year      string
	Month     string
	Asset     string
	Latitude  string
	Longitude string
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	Debug           bool
	ShutdownTimeout time.Duration

	// Dataset source.
	DatasetPath      string
	DatasetDelimiter rune
	DatasetSheet     string
	Columns          Columns

	// Page and figure layout.
	Title            string
	Footer           string
	MapZoom          float64
	MapShowLegend    bool
	SessionCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("DATASET_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	zoom, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("MAP_ZOOM", "10"), 64)
	if err != nil || zoom < 0 || zoom > 20 {
		return nil, errors.New("invalid MAP_ZOOM: must be a number between 0 and 20")
	}

	debug := os.Getenv("DEBUG") == "true"
	logLevel := sharedcfg.EnvOrDefault("LOG_LEVEL", "info")
	if debug {
		logLevel = "debug"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8050"),
		LogLevel:        logLevel,
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		Debug:           debug,
		ShutdownTimeout: shutdownTimeout,

		DatasetPath:      sharedcfg.EnvOrDefault("DATASET_PATH", "hurtos_V1.csv"),
		DatasetDelimiter: delimiter,
		DatasetSheet:     os.Getenv("DATASET_SHEET"),
		Columns: Columns{
			Year:      sharedcfg.EnvOrDefault("COLUMN_YEAR", "AÑO"),
			Month:     sharedcfg.EnvOrDefault("COLUMN_MONTH", "Mes"),
			Asset:     sharedcfg.EnvOrDefault("COLUMN_ASSET", "Farola"),
			Latitude:  sharedcfg.EnvOrDefault("COLUMN_LAT", "Latitud"),
			Longitude: sharedcfg.EnvOrDefault("COLUMN_LON", "Longitud"),
		},

		Title:            sharedcfg.EnvOrDefault("DASHBOARD_TITLE", "Tablero de Hurtos de Luminarias 2022-2025"),
		Footer:           sharedcfg.EnvOrDefault("DASHBOARD_FOOTER", "© 2025 - ESIP SAS ESP - Todos los derechos Reservados- Desarrollado por Alejandra Valderrama"),
		MapZoom:          zoom,
		MapShowLegend:    os.Getenv("MAP_SHOW_LEGEND") != "false",
		SessionCacheSize: parseSessionCacheSize(),
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}
	if cfg.Columns.Year == "" || cfg.Columns.Month == "" || cfg.Columns.Asset == "" {
		return nil, errors.New("COLUMN_YEAR, COLUMN_MONTH and COLUMN_ASSET must not be empty")
	}

	return cfg, nil
}

// parseDelimiter accepts a single character, or "tab".
func parseDelimiter(s string) (rune, error) {
	if s == "tab" || s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New("invalid DATASET_DELIMITER: must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, errors.New("invalid DATASET_DELIMITER: quote and newline are not allowed")
	}
	return r, nil
}

func parseSessionCacheSize() int {
	if s := os.Getenv("SESSION_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
