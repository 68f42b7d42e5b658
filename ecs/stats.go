package ecs

import "sort"

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	ResourceCount      int
	EventQueueCount    int
	PendingEvents      int
	ArchetypeBreakdown []ArchetypeStats
	ResourceTypes      []string
}

// ArchetypeStats describes a single archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and returns a snapshot of its counters.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:     len(s.order),
		ResourceCount:      len(s.resources),
		EventQueueCount:    len(s.events),
		PendingEvents:      s.PendingEvents(),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.order)),
		ResourceTypes:      make([]string, 0, len(s.resources)),
	}

	for _, archetype := range s.order {
		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}
		count := archetype.Len()
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
		stats.TotalEntityCount += count
	}

	for typ := range s.resources {
		stats.ResourceTypes = append(stats.ResourceTypes, typ.String())
	}
	sort.Strings(stats.ResourceTypes)

	return stats
}
