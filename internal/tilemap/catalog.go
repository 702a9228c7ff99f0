package tilemap

import (
	"fmt"
	"log/slog"

	"tilepath/internal/config"
)

// Catalog is the set of maps listed in the configuration.
type Catalog struct {
	Legend  *Legend
	Maps    []*Map
	Keys    []string
	Default int
}

// LoadCatalog loads the legend and every configured map. A map that fails to
// load is logged and skipped. With no usable map the catalog holds a blank
// map of the configured grid size.
func LoadCatalog(cfg *config.Config, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Maps.Legend == "" {
		return nil, fmt.Errorf("no tile legend configured")
	}
	legend, err := LoadLegend(cfg.GetLegendPath())
	if err != nil {
		return nil, err
	}

	cat := &Catalog{Legend: legend}
	for _, entry := range cfg.Maps.Entries {
		m, err := LoadMap(cfg.ResolvePath(entry.File), legend)
		if err != nil {
			logger.Warn("map skipped", "map", entry.Key, "error", err)
			continue
		}
		if entry.Name != "" {
			m.Name = entry.Name
		}
		if entry.Key == cfg.Maps.Default {
			cat.Default = len(cat.Maps)
		}
		cat.Maps = append(cat.Maps, m)
		cat.Keys = append(cat.Keys, entry.Key)
		logger.Info("map loaded", "map", entry.Key, "width", m.Size().Width, "height", m.Size().Height)
	}

	if len(cat.Maps) == 0 {
		m, err := NewMap("blank", cfg.GetMapSize(), legend)
		if err != nil {
			return nil, err
		}
		cat.Maps = []*Map{m}
		cat.Keys = []string{"blank"}
		cat.Default = 0
		logger.Warn("no maps loaded, using a blank grid", "width", m.Size().Width, "height", m.Size().Height)
	}
	return cat, nil
}

// Lookup returns the map registered under key.
func (c *Catalog) Lookup(key string) (*Map, bool) {
	for i, k := range c.Keys {
		if k == key {
			return c.Maps[i], true
		}
	}
	return nil, false
}

// DefaultMap returns the configured default map.
func (c *Catalog) DefaultMap() *Map {
	return c.Maps[c.Default]
}
