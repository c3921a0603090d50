package creds

import (
	"errors"
	"sync"
)

// Credential is an opaque upstream API key.
type Credential string

// Pool tracks an ordered set of interchangeable API credentials and which one
// is current. Two triggers advance the index: a soft cadence trigger after
// every rotateAfter cumulative successful requests, and a hard trigger on a
// quota failure of the current credential. Credentials are never removed;
// exhaustion is scoped to a single fetch cycle.
//
// The pool is safe for concurrent use so the upload and live scanners can
// share it.
type Pool struct {
	mu          sync.Mutex
	keys        []Credential
	index       int
	successes   int
	rotateAfter int
}

// NewPool builds a pool over the ordered key list. rotateAfter <= 0 disables
// the cadence trigger.
func NewPool(keys []string, rotateAfter int) (*Pool, error) {
	if len(keys) == 0 {
		return nil, errors.New("credential pool requires at least one key")
	}
	creds := make([]Credential, len(keys))
	for i, key := range keys {
		creds[i] = Credential(key)
	}
	return &Pool{keys: creds, rotateAfter: rotateAfter}, nil
}

// Current returns the credential at the rotation index.
func (p *Pool) Current() Credential {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keys[p.index]
}

// ReportFailure records a quota failure for the given credential and advances
// the index immediately. The advance is skipped when the failing credential is
// no longer current, so two scanners reporting the same exhausted key do not
// skip over an untried one.
func (p *Pool) ReportFailure(cred Credential) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.keys[p.index] != cred {
		return
	}
	p.index = (p.index + 1) % len(p.keys)
}

// ReportSuccessfulUse counts a successful request and advances the index by
// one position on every rotateAfter-th success.
func (p *Pool) ReportSuccessfulUse() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rotateAfter <= 0 {
		return
	}
	p.successes++
	if p.successes%p.rotateAfter == 0 {
		p.index = (p.index + 1) % len(p.keys)
	}
}

// Size returns the number of credentials in the pool. Fetch attempts are
// bounded by this value.
func (p *Pool) Size() int {
	return len(p.keys)
}

// Keys returns the pool's credentials in their fixed order.
func (p *Pool) Keys() []Credential {
	keys := make([]Credential, len(p.keys))
	copy(keys, p.keys)
	return keys
}
