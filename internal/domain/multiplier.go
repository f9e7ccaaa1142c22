package domain

import "time"

// Multiplier aggregates the earn-rate multiplier for one resource kind.
// All terms are additive on a 1.0 baseline: each active boost contributes
// its magnitude, peers contribute perPeer each, rebirths perRebirth each.
// Expired records are skipped; the result never drops below 1.0.
func Multiplier(boosts map[string]BoostRecord, peers, rebirths int, perPeer, perRebirth float64, now time.Time) float64 {
	total := 1.0

	for _, record := range boosts {
		if !record.ActiveAt(now) {
			continue
		}
		if record.Magnitude < 0 {
			continue
		}
		total += record.Magnitude
	}

	if peers > 0 {
		total += perPeer * float64(peers)
	}
	if rebirths > 0 {
		total += perRebirth * float64(rebirths)
	}

	if total < 1.0 {
		return 1.0
	}

	return total
}
