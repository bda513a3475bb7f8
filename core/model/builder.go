package model

import (
	"math"
	"math/rand"

	"nodepulse/internal/config"
	game_log "nodepulse/internal/log"
)

// Build constructs a randomized network sized to the surface. Entity count
// scales with the square root of the area so density stays roughly
// constant across viewport sizes. Kinds are assigned by creation order:
// sources first, then processes, then destinations.
func Build(cfg config.Network, w, h float64, rng *rand.Rand, logger *game_log.Logger) *Network {
	n := NewNetwork(logger)

	count := int(math.Sqrt(w*h) / cfg.Density)
	if count < cfg.MinEntities {
		count = cfg.MinEntities
	}
	if count > cfg.MaxEntities {
		count = cfg.MaxEntities
	}

	sources := int(float64(count) * cfg.SourceShare)
	if sources < 1 {
		sources = 1
	}
	processes := int(float64(count) * cfg.ProcessShare)
	if processes < 1 {
		processes = 1
	}

	for i := 0; i < count; i++ {
		kind := KindDestination
		switch {
		case i < sources:
			kind = KindSource
		case i < sources+processes:
			kind = KindProcess
		}
		n.Add(&Entity{
			X:       rng.Float64() * w,
			Y:       rng.Float64() * h,
			Radius:  cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius),
			Kind:    kind,
			Opacity: 1,
		})
	}

	var procIDs, destIDs []EntityID
	for id, e := range n.Entities {
		switch e.Kind {
		case KindProcess:
			procIDs = append(procIDs, EntityID(id))
		case KindDestination:
			destIDs = append(destIDs, EntityID(id))
		}
	}

	pick := func(ids []EntityID) EntityID { return ids[rng.Intn(len(ids))] }

	for id, e := range n.Entities {
		switch e.Kind {
		case KindSource:
			if len(procIDs) == 0 {
				continue
			}
			for i, want := 0, 1+rng.Intn(3); i < want; i++ {
				n.Connect(EntityID(id), pick(procIDs))
			}
		case KindProcess:
			if len(procIDs) > 1 && rng.Intn(2) == 1 {
				n.Connect(EntityID(id), pick(procIDs))
			}
			if len(destIDs) > 0 {
				for i, want := 0, 1+rng.Intn(2); i < want; i++ {
					n.Connect(EntityID(id), pick(destIDs))
				}
			}
		}
	}

	n.Prune(cfg.PrunePasses)
	logger.Infof("[NET] built network: %d entities (%d sources) on %.0fx%.0f", n.Alive(), sources, w, h)
	return n
}
