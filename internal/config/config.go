package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Weights struct {
	Engineering    int `yaml:"engineering" json:"engineering"`
	Impact         int `yaml:"impact" json:"impact"`
	Activity       int `yaml:"activity" json:"activity"`
	AIProductivity int `yaml:"ai_productivity" json:"ai_productivity"`
}

func (w Weights) Sum() int {
	return w.Engineering + w.Impact + w.Activity + w.AIProductivity
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	GitHub struct {
		TokenEnv          string  `yaml:"token_env" json:"token_env"`
		CacheTTLHours     int     `yaml:"cache_ttl_hours" json:"cache_ttl_hours"`
		PerHandleMaxRepos int     `yaml:"per_handle_max_repos" json:"per_handle_max_repos"`
		RequestTimeoutSec int     `yaml:"request_timeout_sec" json:"request_timeout_sec"`
		RequestsPerSec    float64 `yaml:"requests_per_sec" json:"requests_per_sec"`
		Burst             int     `yaml:"burst" json:"burst"`
	} `yaml:"github" json:"github"`

	Scoring struct {
		Weights Weights `yaml:"weights" json:"weights"`
	} `yaml:"scoring" json:"scoring"`

	Activity struct {
		WindowDays int `yaml:"window_days" json:"window_days"`
	} `yaml:"activity" json:"activity"`

	Output struct {
		TopN    int    `yaml:"top_n" json:"top_n"`
		RunsDir string `yaml:"runs_dir" json:"runs_dir"`
	} `yaml:"output" json:"output"`

	Processing struct {
		BatchSize               int     `yaml:"batch_size" json:"batch_size"`
		BatchDeviationThreshold float64 `yaml:"batch_deviation_threshold" json:"batch_deviation_threshold"`
	} `yaml:"processing" json:"processing"`

	ResumeSamples struct {
		EnableStorage bool   `yaml:"enable_storage" json:"enable_storage"`
		StoreFullText bool   `yaml:"store_full_text" json:"store_full_text"`
		DatasetDir    string `yaml:"dataset_dir" json:"dataset_dir"`
	} `yaml:"resume_samples" json:"resume_samples"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.App.DataDir = "."
	cfg.GitHub.TokenEnv = "GITHUB_TOKEN"
	cfg.GitHub.CacheTTLHours = 24
	cfg.GitHub.PerHandleMaxRepos = 12
	cfg.GitHub.RequestTimeoutSec = 20
	cfg.GitHub.RequestsPerSec = 3
	cfg.GitHub.Burst = 2
	cfg.Scoring.Weights = Weights{Engineering: 40, Impact: 30, Activity: 15, AIProductivity: 15}
	cfg.Activity.WindowDays = 90
	cfg.Output.TopN = 10
	cfg.Output.RunsDir = "runs"
	cfg.Processing.BatchSize = 20
	cfg.Processing.BatchDeviationThreshold = 0.2
	cfg.ResumeSamples.EnableStorage = true
	cfg.ResumeSamples.DatasetDir = "datasets/resume_samples"
	return cfg
}

// Load reads the YAML config at path on top of the defaults. A missing
// file is not an error: you get the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
