package repository

import (
	"context"
	"fmt"

	"SectorPulse/internal/domain/models"
	domrepo "SectorPulse/internal/domain/repository"
)

// ConfigUniverse serves the sector universe straight from configuration,
// preserving the configured order.
type ConfigUniverse struct {
	sectors []models.SectorDefinition
}

// NewConfigUniverse creates a config-backed SectorUniverse.
func NewConfigUniverse(sectors []models.SectorDefinition) (*ConfigUniverse, error) {
	if len(sectors) == 0 {
		return nil, fmt.Errorf("sector universe is empty")
	}
	for _, s := range sectors {
		if s.Name == "" {
			return nil, fmt.Errorf("sector with empty name")
		}
		if len(s.Symbols) == 0 {
			return nil, fmt.Errorf("sector %s has no symbols", s.Name)
		}
	}
	return &ConfigUniverse{sectors: sectors}, nil
}

// Sectors returns the universe in configured order.
func (u *ConfigUniverse) Sectors(context.Context) ([]models.SectorDefinition, error) {
	out := make([]models.SectorDefinition, len(u.sectors))
	copy(out, u.sectors)
	return out, nil
}

var _ domrepo.SectorUniverse = (*ConfigUniverse)(nil)
