package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetview/internal/config"
	"sheetview/internal/logging"
	"sheetview/internal/sheet"
)

// EnvURL names the environment variable holding the sheet URL.
const EnvURL = "SHEETVIEW_URL"

// Settings is the resolved configuration for one run.
type Settings struct {
	URL         string
	Timeout     time.Duration
	JournalPath string
	NoJournal   bool
	LogFile     string
	Debug       bool
	// Warnings are logged once the logger exists.
	Warnings []string
}

// dataDir returns ~/.sheetview, creating it if needed.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".sheetview")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// resolveSettings merges flags, environment, config file and defaults, in
// that order of precedence. Interactive runs may prompt for a URL on first
// use and log to a file instead of stderr.
func resolveSettings(opts *options, interactive bool) (Settings, error) {
	// Load .env files first so env-based defaults work with flag values.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	var warnings []string
	cfgPath := opts.configPath
	if cfgPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("no config file: %v", err))
		}
		cfgPath = p
	}

	cfg := &config.Config{}
	if cfgPath != "" {
		loaded, err := config.LoadFromPath(cfgPath)
		if err != nil {
			return Settings{}, err
		}
		cfg = loaded
	}

	envURL := strings.TrimSpace(os.Getenv(EnvURL))
	if interactive && cfgPath != "" && shouldRunOnboarding(cfgPath, opts.url, envURL) {
		onboarded, err := runOnboarding(cfgPath, cfg)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to run onboarding: %w", err)
		}
		cfg = onboarded
	}

	s := Settings{
		URL:         firstNonEmpty(opts.url, envURL, cfg.URL, sheet.DefaultURL),
		Timeout:     sheet.DefaultTimeout,
		JournalPath: firstNonEmpty(opts.journalPath, cfg.JournalPath),
		NoJournal:   opts.noJournal || cfg.NoJournal,
		LogFile:     firstNonEmpty(opts.logFile, cfg.LogFile),
		Debug:       opts.verbose,
		Warnings:    warnings,
	}

	switch {
	case opts.timeout > 0:
		s.Timeout = opts.timeout
	case cfg.Timeout > 0:
		s.Timeout = time.Duration(cfg.Timeout)
	}

	needJournal := !s.NoJournal && s.JournalPath == ""
	needLog := interactive && s.LogFile == ""
	if needJournal || needLog {
		dir, err := dataDir()
		switch {
		case err != nil && needJournal:
			// Without a data directory run without the journal and log to stderr.
			s.NoJournal = true
			s.Warnings = append(s.Warnings, fmt.Sprintf("no data directory, fetch journal disabled: %v", err))
		case err != nil:
			s.Warnings = append(s.Warnings, fmt.Sprintf("no data directory, logging to stderr: %v", err))
		default:
			if needJournal {
				s.JournalPath = filepath.Join(dir, "journal.db")
			}
			if needLog {
				s.LogFile = filepath.Join(dir, "sheetview.log")
			}
		}
	}
	if s.LogFile == "" {
		s.LogFile = logging.Stderr
	}

	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(strings.TrimPrefix(parts[0], "export "))
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
