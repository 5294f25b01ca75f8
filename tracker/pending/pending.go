// Package pending keeps the submissions of a coin that have not been mined yet.
package pending

import (
	"sort"
	"sync"

	"github.com/tarancss/chaingate/lib/store"
)

// Set contains the pending submissions of a coin keyed by network and transaction id. It is safe for concurrent use
// by the broker consumer and the poller.
type Set struct {
	l sync.Mutex
	m map[string]store.Submission
}

// New returns a Set loaded with subs.
func New(subs []store.Submission) *Set {
	s := &Set{m: make(map[string]store.Submission, len(subs))}

	for _, sub := range subs {
		s.m[sub.Key()] = sub
	}

	return s
}

// Add includes sub in the set. It returns false, keeping the submission already present, if sub was known.
func (s *Set) Add(sub store.Submission) bool {
	s.l.Lock()
	defer s.l.Unlock()

	if _, ok := s.m[sub.Key()]; ok {
		return false
	}

	s.m[sub.Key()] = sub

	return true
}

// Del deletes a submission from the set returning it and an ok flag.
func (s *Set) Del(key string) (sub store.Submission, ok bool) {
	s.l.Lock()
	defer s.l.Unlock()

	sub, ok = s.m[key]
	delete(s.m, key)

	return
}

// List returns a snapshot of the set, oldest submissions first.
func (s *Set) List() []store.Submission {
	s.l.Lock()
	subs := make([]store.Submission, 0, len(s.m))

	for _, sub := range s.m {
		subs = append(subs, sub)
	}
	s.l.Unlock()

	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Submitted.Equal(subs[j].Submitted) {
			return subs[i].Key() < subs[j].Key()
		}

		return subs[i].Submitted.Before(subs[j].Submitted)
	})

	return subs
}

// Len returns the number of pending submissions.
func (s *Set) Len() int {
	s.l.Lock()
	defer s.l.Unlock()

	return len(s.m)
}
