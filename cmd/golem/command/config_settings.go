package command

import (
	"fmt"

	"github.com/pixil98/go-golem/internal/settings"
)

type SettingsConfig struct {
	Path string `json:"path" env:"GOLEM_SETTINGS_PATH"`
}

func (c *SettingsConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("settings: path is required")
	}
	return nil
}

func (c *SettingsConfig) open() (*settings.Store, error) {
	s, err := settings.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("opening settings: %w", err)
	}
	return s, nil
}
