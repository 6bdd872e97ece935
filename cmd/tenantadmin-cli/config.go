package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// profileConfig holds connection settings for a single profile.
type profileConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token,omitempty"`
}

// profilesFile is the top-level config file structure.
type profilesFile struct {
	Profiles      map[string]profileConfig `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

func (f *profilesFile) active() (string, profileConfig) {
	name := f.ActiveProfile
	if name == "" {
		name = "default"
	}
	return name, f.Profiles[name]
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tenantadmin", "config.yaml"), nil
}

func loadConfigFile() (string, *profilesFile, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfgPath, nil, err
	}
	var cfg profilesFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfgPath, nil, err
	}
	return cfgPath, &cfg, nil
}

// resolveConfig fills flagURL and flagToken. Flag takes precedence, then
// env, then the active profile of the config file.
func resolveConfig() {
	if flagURL == defaultURL {
		if v := os.Getenv("TENANTADMIN_URL"); v != "" {
			flagURL = v
		}
	}
	if flagToken == "" {
		flagToken = os.Getenv("TENANTADMIN_TOKEN")
	}

	_, cfg, err := loadConfigFile()
	if err != nil {
		return
	}
	_, p := cfg.active()
	if flagURL == defaultURL && p.URL != "" {
		flagURL = p.URL
	}
	if flagToken == "" && p.Token != "" {
		flagToken = p.Token
	}
}

// saveSession writes url and token into the active profile, creating the
// config file when needed. An empty token clears the stored one.
func saveSession(url, token string) (string, error) {
	cfgPath, cfg, err := loadConfigFile()
	if cfgPath == "" {
		return "", err
	}
	if cfg == nil {
		cfg = &profilesFile{}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]profileConfig{}
	}
	name, _ := cfg.active()
	cfg.ActiveProfile = name
	cfg.Profiles[name] = profileConfig{URL: url, Token: token}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o700); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, data, 0o600); err != nil {
		return "", err
	}
	return cfgPath, nil
}
