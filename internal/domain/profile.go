package domain

import (
	"fmt"
	"strings"
)

type SubjectID string

// ResourceKind names the quantity a boost applies to (e.g. "Cash").
type ResourceKind string

type Profile struct {
	ID       SubjectID
	Name     string
	Rebirths int
	Balances map[ResourceKind]float64
	Boosts   map[ResourceKind]map[string]BoostRecord
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if p.Rebirths < 0 {
		return fmt.Errorf("rebirths must not be negative")
	}

	return nil
}

func (p Profile) Balance(kind ResourceKind) float64 {
	return p.Balances[kind]
}

// BoostsFor returns the boost set for a resource kind. The returned map is
// the profile's own; callers that mutate it must go through SetBoost and
// RemoveBoost instead.
func (p Profile) BoostsFor(kind ResourceKind) map[string]BoostRecord {
	return p.Boosts[kind]
}

func (p *Profile) SetBoost(kind ResourceKind, record BoostRecord) {
	if p.Boosts == nil {
		p.Boosts = map[ResourceKind]map[string]BoostRecord{}
	}
	if p.Boosts[kind] == nil {
		p.Boosts[kind] = map[string]BoostRecord{}
	}

	p.Boosts[kind][record.ID] = record
}

func (p *Profile) RemoveBoost(kind ResourceKind, id string) {
	boosts, ok := p.Boosts[kind]
	if !ok {
		return
	}

	delete(boosts, id)
	if len(boosts) == 0 {
		delete(p.Boosts, kind)
	}
}

// Normalize drops boost entries with blank ids and empty resource buckets,
// and initializes nil maps so callers can mutate freely.
func (p *Profile) Normalize() {
	if p == nil {
		return
	}

	if p.Balances == nil {
		p.Balances = map[ResourceKind]float64{}
	}
	if p.Boosts == nil {
		p.Boosts = map[ResourceKind]map[string]BoostRecord{}
		return
	}

	for kind, boosts := range p.Boosts {
		for id, record := range boosts {
			trimmed := strings.TrimSpace(id)
			if trimmed == "" {
				delete(boosts, id)
				continue
			}
			if trimmed != id {
				delete(boosts, id)
				record.ID = trimmed
				boosts[trimmed] = record
			}
		}
		if len(boosts) == 0 {
			delete(p.Boosts, kind)
		}
	}
}
