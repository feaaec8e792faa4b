// Package metrics provides lock-free in-process counters for the
// authentication flows. Counters are fixed at compile time; when disabled
// every operation is a no-op.
package metrics

import "sync/atomic"

// MetricID identifies a single counter.
type MetricID uint8

const (
	// MetricSignupSuccess counts created identities.
	MetricSignupSuccess MetricID = iota
	// MetricSignupConflict counts signups rejected for a duplicate email.
	MetricSignupConflict
	// MetricLoginSuccess counts logins that issued a token directly.
	MetricLoginSuccess
	// MetricLoginFailure counts logins rejected for bad credentials.
	MetricLoginFailure
	// MetricTwoFARequired counts logins that opened a 2FA challenge.
	MetricTwoFARequired
	// MetricTwoFASuccess counts consumed challenges that issued a token.
	MetricTwoFASuccess
	// MetricTwoFAFailure counts rejected challenge verifications.
	MetricTwoFAFailure
	// MetricLogout counts successful token revocations via logout.
	MetricLogout
	// MetricTokenVerifySuccess counts tokens that validated.
	MetricTokenVerifySuccess
	// MetricTokenVerifyFailure counts tokens rejected as invalid, expired
	// or revoked.
	MetricTokenVerifyFailure

	// MetricIDCount is the size of the counter space.
	MetricIDCount
)

// Config controls whether counting is active.
type Config struct {
	Enabled bool
}

// Metrics holds one atomic counter per MetricID.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]atomic.Uint64
}

// New creates a Metrics instance. When cfg.Enabled is false, Inc is a
// no-op and Snapshot returns zeroes.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Value reads a single counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= MetricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies every counter.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Counters: make(map[MetricID]uint64, MetricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
