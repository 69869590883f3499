// Package keywords holds the static keyword tables used to score articles.
// Tables are compiled once and shared read-only by every classification task.
package keywords

import (
	"fmt"

	"SustainabilityScanner/internal/domain"
)

// Tables bundles the pillar, SDG and region lookups.
type Tables struct {
	Pillars *Table[domain.Pillar]
	SDGs    *Table[int]
	Regions *Gazetteer
}

// Build compiles custom keyword sets. Nil maps fall back to the defaults.
func Build(pillars map[domain.Pillar][]string, sdgs map[int][]string, regions []Region) (*Tables, error) {
	if pillars == nil {
		pillars = defaultPillarKeywords
	}
	if sdgs == nil {
		sdgs = defaultSDGKeywords
	}
	if regions == nil {
		regions = defaultRegions
	}

	pillarTable, err := NewTable(domain.Pillars, pillars)
	if err != nil {
		return nil, fmt.Errorf("pillar table: %w", err)
	}
	sdgTable, err := NewTable(SDGIDs(), sdgs)
	if err != nil {
		return nil, fmt.Errorf("sdg table: %w", err)
	}
	gazetteer, err := NewGazetteer(regions)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: %w", err)
	}

	return &Tables{Pillars: pillarTable, SDGs: sdgTable, Regions: gazetteer}, nil
}

// Default compiles the built-in tables. It panics only if the built-in
// keyword lists are malformed.
func Default() *Tables {
	t, err := Build(nil, nil, nil)
	if err != nil {
		panic(fmt.Sprintf("keywords: default tables: %v", err))
	}
	return t
}
