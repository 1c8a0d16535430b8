package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/sefazor/workshops-backend/internal/models"
)

// MemoryUserRepository keeps users in process memory. It backs the
// "memory" store driver used for local runs and tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.User
	order []string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byID: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; ok {
		return ErrDuplicate
	}
	for _, u := range r.byID {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	r.byID[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.byID[id])
	}
	return users, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return ErrNotFound
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return 1, nil
}

// MemoryWorkshopRepository keeps workshops in insertion order, keyed by
// title.
type MemoryWorkshopRepository struct {
	mu      sync.RWMutex
	byTitle map[string]models.Workshop
	order   []string
}

func NewMemoryWorkshopRepository() *MemoryWorkshopRepository {
	return &MemoryWorkshopRepository{byTitle: make(map[string]models.Workshop)}
}

func (r *MemoryWorkshopRepository) Create(ctx context.Context, workshop *models.Workshop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byTitle[workshop.EventTitle]; ok {
		return ErrDuplicate
	}
	r.byTitle[workshop.EventTitle] = *workshop
	r.order = append(r.order, workshop.EventTitle)
	return nil
}

func (r *MemoryWorkshopRepository) GetByTitle(ctx context.Context, title string) (*models.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.byTitle[title]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (r *MemoryWorkshopRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byTitle[title]
	return ok, nil
}

func (r *MemoryWorkshopRepository) List(ctx context.Context, q WorkshopQuery) ([]models.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workshops := make([]models.Workshop, 0, len(r.order))
	for _, title := range r.order {
		w := r.byTitle[title]
		if q.Category != "" && !slices.Contains(w.Category, q.Category) {
			continue
		}
		if q.CreatedBy != "" && w.CreatedBy != q.CreatedBy {
			continue
		}
		workshops = append(workshops, w)
	}

	if q.SortByStartDate {
		sort.SliceStable(workshops, func(i, j int) bool {
			return workshops[i].EventStDate < workshops[j].EventStDate
		})
	}
	return workshops, nil
}

func (r *MemoryWorkshopRepository) Update(ctx context.Context, workshop *models.Workshop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byTitle[workshop.EventTitle]; !ok {
		return ErrNotFound
	}
	r.byTitle[workshop.EventTitle] = *workshop
	return nil
}

func (r *MemoryWorkshopRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byTitle[title]; !ok {
		return 0, nil
	}
	delete(r.byTitle, title)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == title })
	return 1, nil
}
