// Package loadbalancer spreads gateway traffic across storefront instances.
package loadbalancer

import (
	"sync"

	"github.com/pixelpour/storefront/pkg/logger"
)

// RoundRobin hands out storefront instance base URLs in rotation. Instances
// share state through Redis and Kafka, so any of them can serve any shopper.
type RoundRobin struct {
	mu        sync.Mutex
	instances []string
	next      int
}

// NewRoundRobin builds a rotation over the given instance URLs, falling back
// to a single local instance when none are configured.
func NewRoundRobin(instances []string) *RoundRobin {
	if len(instances) == 0 {
		instances = []string{"http://localhost:8080"}
	}

	logger.Logger.Info().
		Strs("instances", instances).
		Msg("Storefront instance rotation initialized")

	return &RoundRobin{instances: instances}
}

// Next returns the instance the next request should go to.
func (rr *RoundRobin) Next() string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if len(rr.instances) == 0 {
		return ""
	}

	instance := rr.instances[rr.next]
	rr.next = (rr.next + 1) % len(rr.instances)
	return instance
}

// Instances returns a copy of the rotation.
func (rr *RoundRobin) Instances() []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return append([]string{}, rr.instances...)
}
