package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DataDir        string
	ArchivePath    string
	ArchiveEnabled bool
	UndoCapacity   int
	DueCheckBuffer int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataDir:        ".",
		ArchivePath:    "eventdo.db",
		ArchiveEnabled: false,
		UndoCapacity:   50,
		DueCheckBuffer: 16,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("EVENTDO_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("EVENTDO_ARCHIVE_PATH")); v != "" {
		cfg.ArchivePath = v
	}
	if v, ok := getEnvBool("EVENTDO_ARCHIVE"); ok {
		cfg.ArchiveEnabled = v
	}
	if v, ok := getEnvInt("EVENTDO_UNDO_CAPACITY"); ok && v > 0 {
		cfg.UndoCapacity = v
	}
	if v, ok := getEnvInt("EVENTDO_DUE_CHECK_BUFFER"); ok && v > 0 {
		cfg.DueCheckBuffer = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
