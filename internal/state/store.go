package state

import (
	"context"
	"sync"

	"github.com/yummiapp/yummi-api/internal/models"
)

// Snapshot is an immutable view of the store. Recipes is the last
// successful batch and is nil until the first successful search; Result is
// the outcome of the most recent committed search, success or error.
type Snapshot struct {
	Generation uint64               `json:"generation"`
	Result     *models.SearchResult `json:"result,omitempty"`
	Recipes    []models.Recipe      `json:"recipes"`
	NavigateTo string               `json:"navigate_to,omitempty"`
}

// Store holds the latest search state for UI collaborators. Searches are
// tagged with a generation from Begin; only the newest generation may
// commit, so a slow superseded search can never overwrite fresher state.
type Store struct {
	mu         sync.RWMutex
	latest     uint64
	committed  uint64
	result     *models.SearchResult
	recipes    []models.Recipe
	navigateTo string
	cancel     context.CancelFunc
	subs       map[int]chan Snapshot
	nextSubID  int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{subs: make(map[int]chan Snapshot)}
}

// Begin registers a new search and returns its generation along with a
// context that is cancelled as soon as a newer search begins.
func (s *Store) Begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	searchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.latest++
	return searchCtx, s.latest
}

// Commit publishes the result of search gen. It returns false, leaving the
// store untouched, when a newer search has begun since. An error result
// replaces Result but keeps the previous recipe list. navigateTo, when
// non-empty and the result is a success, arms the one-shot navigation
// signal in the same update.
func (s *Store) Commit(gen uint64, result models.SearchResult, navigateTo string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.latest {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.committed = gen
	s.result = &result
	if result.IsSuccess() {
		s.recipes = cloneRecipes(result.Recipes)
		if navigateTo != "" {
			s.navigateTo = navigateTo
		}
	}
	s.notifyLocked()
	return true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// ConsumeNavigation returns the pending navigation target and clears it.
// Each armed signal is returned exactly once.
func (s *Store) ConsumeNavigation() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.navigateTo == "" {
		return "", false
	}
	target := s.navigateTo
	s.navigateTo = ""
	s.notifyLocked()
	return target, true
}

// FindByID looks a recipe up in the current batch. IDs from earlier,
// replaced batches do not resolve.
func (s *Store) FindByID(id string) (models.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return models.Recipe{}, false
}

// UpdateRecipe replaces the recipe with the same ID in the current batch.
// It returns false if the batch does not contain it.
func (s *Store) UpdateRecipe(recipe models.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == recipe.ID {
			updated := cloneRecipes(s.recipes)
			updated[i] = recipe
			s.recipes = updated
			if s.result != nil && s.result.IsSuccess() {
				result := models.NewSuccess(cloneRecipes(updated))
				s.result = &result
			}
			s.notifyLocked()
			return true
		}
	}
	return false
}

// Subscribe returns a channel that receives the latest snapshot after every
// change. Slow readers only ever see the newest snapshot. The returned func
// unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Generation: s.committed,
		Recipes:    cloneRecipes(s.recipes),
		NavigateTo: s.navigateTo,
	}
	if s.result != nil {
		result := *s.result
		result.Recipes = cloneRecipes(result.Recipes)
		snap.Result = &result
	}
	return snap
}

func (s *Store) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale pending snapshot so the newest one wins.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func cloneRecipes(in []models.Recipe) []models.Recipe {
	if in == nil {
		return nil
	}
	out := make([]models.Recipe, len(in))
	copy(out, in)
	return out
}
