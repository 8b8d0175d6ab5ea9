package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL         = "http://127.0.0.1:8000"
	DefaultTimeout         = 30 * time.Second
	DefaultTestTeamName    = "xyz"
	DefaultJudgeURL        = "https://ce.judge0.com"
	DefaultCPUTimeLimit    = 2
	DefaultMemoryLimitKB   = 128000
	DefaultStageSeconds    = 300
	DefaultTimerSeconds    = 60
	DefaultWarningAt       = 30
	DefaultCriticalAt      = 10
	DefaultMaxFileMB       = 10
	DefaultRedirectDelay   = 1500 * time.Millisecond
	DefaultContestID       = "con"
	DefaultProblemID       = 1
	DefaultLogLevel        = "warn"
	defaultStateFileName   = "state.json"
	defaultConfigDirectory = ".bootcamp"
)

type APIConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

type TeamConfig struct {
	// TestName is used whenever no team name has been stored.
	TestName  string `yaml:"testName"`
	StatePath string `yaml:"statePath"`
}

type JudgeConfig struct {
	BaseURL       string        `yaml:"baseURL"`
	AuthToken     string        `yaml:"authToken"`
	Timeout       time.Duration `yaml:"timeout"`
	CPUTimeLimit  float64       `yaml:"cpuTimeLimit"`
	MemoryLimitKB int           `yaml:"memoryLimitKB"`
}

type TimerConfig struct {
	// Durations are seconds keyed by stage name, e.g. "stage2".
	Durations       map[string]int `yaml:"durations"`
	DefaultDuration int            `yaml:"defaultDuration"`
	WarningAt       int            `yaml:"warningAt"`
	CriticalAt      int            `yaml:"criticalAt"`
}

type UploadConfig struct {
	MaxFileMB int `yaml:"maxFileMB"`
}

type UIConfig struct {
	RedirectDelay time.Duration `yaml:"redirectDelay"`
}

type ContestConfig struct {
	ID        string `yaml:"id"`
	ProblemID int    `yaml:"problemID"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config holds the contest client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Team    TeamConfig    `yaml:"team"`
	Judge   JudgeConfig   `yaml:"judge"`
	Timers  TimerConfig   `yaml:"timers"`
	Uploads UploadConfig  `yaml:"uploads"`
	UI      UIConfig      `yaml:"ui"`
	Contest ContestConfig `yaml:"contest"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultPath is ~/.bootcamp/config.yaml, or a relative path when the home
// directory is unknown.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultConfigDirectory
	}
	return filepath.Join(home, defaultConfigDirectory)
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config file failed: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file failed: %w", err)
		}
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.Team.TestName == "" {
		cfg.Team.TestName = DefaultTestTeamName
	}
	if cfg.Team.StatePath == "" {
		cfg.Team.StatePath = filepath.Join(baseDir(), defaultStateFileName)
	}
	if cfg.Judge.BaseURL == "" {
		cfg.Judge.BaseURL = DefaultJudgeURL
	}
	if cfg.Judge.Timeout == 0 {
		cfg.Judge.Timeout = DefaultTimeout
	}
	if cfg.Judge.CPUTimeLimit == 0 {
		cfg.Judge.CPUTimeLimit = DefaultCPUTimeLimit
	}
	if cfg.Judge.MemoryLimitKB == 0 {
		cfg.Judge.MemoryLimitKB = DefaultMemoryLimitKB
	}
	if cfg.Timers.Durations == nil {
		cfg.Timers.Durations = make(map[string]int)
	}
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("stage%d", i)
		if cfg.Timers.Durations[name] == 0 {
			cfg.Timers.Durations[name] = DefaultStageSeconds
		}
	}
	if cfg.Timers.DefaultDuration == 0 {
		cfg.Timers.DefaultDuration = DefaultTimerSeconds
	}
	if cfg.Timers.WarningAt == 0 {
		cfg.Timers.WarningAt = DefaultWarningAt
	}
	if cfg.Timers.CriticalAt == 0 {
		cfg.Timers.CriticalAt = DefaultCriticalAt
	}
	if cfg.Uploads.MaxFileMB == 0 {
		cfg.Uploads.MaxFileMB = DefaultMaxFileMB
	}
	if cfg.UI.RedirectDelay == 0 {
		cfg.UI.RedirectDelay = DefaultRedirectDelay
	}
	if cfg.Contest.ID == "" {
		cfg.Contest.ID = DefaultContestID
	}
	if cfg.Contest.ProblemID == 0 {
		cfg.Contest.ProblemID = DefaultProblemID
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

// MaxFileBytes is the per-file upload ceiling.
func (c Config) MaxFileBytes() int64 {
	return int64(c.Uploads.MaxFileMB) << 20
}
