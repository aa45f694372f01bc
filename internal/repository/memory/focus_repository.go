package memory

import (
	"sync"
	"time"

	"exam-prep-be/pkg/focus"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// FocusRepository keeps one live focus runner per user. Runners nobody has
// touched for the idle expiry are evicted and closed; a running runner keeps
// itself alive through Touch.
type FocusRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewFocusRepository(idleExpiry time.Duration) *FocusRepository {
	c := cache.New(idleExpiry, idleExpiry/4)
	c.OnEvicted(func(_ string, v interface{}) {
		if r, ok := v.(*focus.Runner); ok {
			r.Close()
		}
	})
	return &FocusRepository{cache: c}
}

// GetOrCreate returns the user's runner, building it with newRunner on first use.
// Every call refreshes the idle expiry.
func (r *FocusRepository) GetOrCreate(userID uuid.UUID, newRunner func() *focus.Runner) *focus.Runner {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userID.String()
	if x, found := r.cache.Get(key); found {
		runner := x.(*focus.Runner)
		r.cache.Set(key, runner, cache.DefaultExpiration)
		return runner
	}

	runner := newRunner()
	r.cache.Set(key, runner, cache.DefaultExpiration)
	return runner
}

// Touch refreshes the idle expiry of runner if it is still the user's runner.
// A running countdown calls it on every tick so eviction only ever hits runners
// that are idle, paused or expired.
func (r *FocusRepository) Touch(userID uuid.UUID, runner *focus.Runner) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userID.String()
	x, found := r.cache.Get(key)
	if !found || x.(*focus.Runner) != runner {
		return false
	}
	r.cache.Set(key, runner, cache.DefaultExpiration)
	return true
}

func (r *FocusRepository) Get(userID uuid.UUID) (*focus.Runner, bool) {
	if x, found := r.cache.Get(userID.String()); found {
		return x.(*focus.Runner), true
	}
	return nil, false
}

// Delete closes and forgets the user's runner.
func (r *FocusRepository) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}

func (r *FocusRepository) Count() int {
	return r.cache.ItemCount()
}
