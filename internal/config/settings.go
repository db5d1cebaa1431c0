package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const defaultDaemonAddress = "127.0.0.1:7171"

const (
	defaultSaveDelayMS = 300
	defaultNoteWidth   = 24
	defaultNoteHeight  = 7
)

// StorageBackend names for [storage].backend.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

type Config struct {
	Daemon  DaemonConfig  `toml:"daemon"`
	Logging LoggingConfig `toml:"logging"`
	Storage StorageConfig `toml:"storage"`
	Board   BoardConfig   `toml:"board"`
}

type DaemonConfig struct {
	Address string `toml:"address"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type BoardConfig struct {
	SaveDelayMS int `toml:"save_delay_ms"`
	NoteWidth   int `toml:"note_width"`
	NoteHeight  int `toml:"note_height"`
}

func Default() Config {
	return Config{
		Daemon:  DaemonConfig{Address: defaultDaemonAddress},
		Logging: LoggingConfig{Level: "info"},
		Storage: StorageConfig{Backend: BackendFile},
		Board: BoardConfig{
			SaveDelayMS: defaultSaveDelayMS,
			NoteWidth:   defaultNoteWidth,
			NoteHeight:  defaultNoteHeight,
		},
	}
}

// Load reads the config file, applying defaults for anything unset. A
// missing file is not an error. An optional .env in the working directory
// is loaded first so PINBOARD_ADDR can come from either place.
func Load() (Config, error) {
	_ = godotenv.Load()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) DaemonAddress() string {
	if env := strings.TrimSpace(os.Getenv("PINBOARD_ADDR")); env != "" {
		return normalizeAddress(env)
	}
	return normalizeAddress(c.Daemon.Address)
}

func (c Config) DaemonBaseURL() string {
	return "http://" + c.DaemonAddress()
}

func normalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) StorageBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch backend {
	case BackendFile, BackendBolt, BackendSQLite:
		return backend
	default:
		return BackendFile
	}
}

// StoragePath resolves the store location, defaulting per backend.
func (c Config) StoragePath() (string, error) {
	if path := strings.TrimSpace(c.Storage.Path); path != "" {
		return path, nil
	}
	switch c.StorageBackend() {
	case BackendBolt:
		return BoltPath()
	case BackendSQLite:
		return SQLitePath()
	default:
		return NotesPath()
	}
}

func (c Config) SaveDelay() time.Duration {
	ms := c.Board.SaveDelayMS
	if ms <= 0 {
		ms = defaultSaveDelayMS
	}
	return time.Duration(ms) * time.Millisecond
}

func (c Config) DefaultNoteWidth() int {
	if c.Board.NoteWidth <= 0 {
		return defaultNoteWidth
	}
	return c.Board.NoteWidth
}

func (c Config) DefaultNoteHeight() int {
	if c.Board.NoteHeight <= 0 {
		return defaultNoteHeight
	}
	return c.Board.NoteHeight
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
