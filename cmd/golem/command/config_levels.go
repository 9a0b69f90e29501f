package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-golem/internal/level"
	"github.com/pixil98/go-golem/internal/storage"
)

type LevelsConfig struct {
	Path       string `json:"path" env:"GOLEM_LEVELS_PATH"`
	Transition string `json:"transition" env:"GOLEM_LEVEL_TRANSITION"`
}

func (c *LevelsConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("levels: path is required"))
	} else if _, err := os.Stat(c.Path); err != nil {
		el.Add(fmt.Errorf("levels: invalid path %q: %w", c.Path, err))
	}

	_, err := optionalDuration("levels.transition", c.Transition)
	el.Add(err)

	return el.Err()
}

func (c *LevelsConfig) buildCatalog() (*storage.Catalog[*level.Spec], error) {
	store, err := storage.NewFileStore[*level.Spec](c.Path)
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	catalog := storage.NewCatalog[*level.Spec](store)
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", level.ErrNoLevels, c.Path)
	}
	return catalog, nil
}

func (c *LevelsConfig) managerOpts() []level.ManagerOpt {
	var opts []level.ManagerOpt
	if c.Transition != "" {
		d, _ := optionalDuration("levels.transition", c.Transition)
		opts = append(opts, level.WithTransition(d))
	}
	return opts
}
