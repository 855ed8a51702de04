package stats

import "sync"

// Stats aggregates counters for the current game session.
type Stats struct {
	itemsDelivered map[string]int

	mu sync.RWMutex
}

func New() *Stats {
	return &Stats{itemsDelivered: map[string]int{}}
}

// AddDelivered records amount of item as delivered to the core.
func (s *Stats) AddDelivered(item string, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsDelivered[item] += amount
}

func (s *Stats) Delivered(item string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsDelivered[item]
}

func (s *Stats) TotalDelivered() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, n := range s.itemsDelivered {
		total += n
	}
	return total
}
