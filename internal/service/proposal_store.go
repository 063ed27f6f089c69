package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uniplan/uniplan-api/internal/models"
)

// generationProposal holds one generation run's output until the user saves
// a candidate or the entry expires.
type generationProposal struct {
	userID    string
	schedules []models.GeneratedSchedule
	expiresAt time.Time
}

// proposalStore is an in-memory TTL store keyed by proposal id. Generation
// results are transient; losing them on restart only forces a re-run.
type proposalStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	proposals map[string]generationProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &proposalStore{ttl: ttl, proposals: make(map[string]generationProposal)}
}

// Put stores the schedules and returns the new proposal id.
func (p *proposalStore) Put(userID string, schedules []models.GeneratedSchedule) string {
	id := uuid.NewString()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prune()
	p.proposals[id] = generationProposal{
		userID:    userID,
		schedules: schedules,
		expiresAt: time.Now().Add(p.ttl),
	}
	return id
}

// Get returns the stored schedules for the owner, or false when the
// proposal is missing, expired, or owned by someone else.
func (p *proposalStore) Get(id, userID string) ([]models.GeneratedSchedule, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	proposal, ok := p.proposals[id]
	if !ok || proposal.userID != userID || time.Now().After(proposal.expiresAt) {
		return nil, false
	}
	return proposal.schedules, true
}

// prune drops expired entries. Caller must hold the write lock.
func (p *proposalStore) prune() {
	now := time.Now()
	for id, proposal := range p.proposals {
		if now.After(proposal.expiresAt) {
			delete(p.proposals, id)
		}
	}
}
