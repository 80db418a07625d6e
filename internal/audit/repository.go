package audit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
	memoryCapacity   = 1000
)

// ListQuery filters the ledger; newest entries come first
type ListQuery struct {
	Kind  Kind `form:"kind"`
	Limit int  `form:"limit"`
}

func (q ListQuery) limit() int {
	switch {
	case q.Limit <= 0:
		return defaultListLimit
	case q.Limit > maxListLimit:
		return maxListLimit
	default:
		return q.Limit
	}
}

type Repository interface {
	Create(ctx context.Context, entry *AuditEntry) error
	List(ctx context.Context, q ListQuery) ([]AuditEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to store audit entry: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]AuditEntry, error) {
	var entries []AuditEntry
	query := r.db.WithContext(ctx).Model(&AuditEntry{})
	if q.Kind != "" {
		query = query.Where("kind = ?", q.Kind)
	}
	if err := query.Order("occurred_at DESC").Limit(q.limit()).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// memoryRepository keeps the most recent entries in process when no
// database is configured. Entries are lost on restart.
type memoryRepository struct {
	mu      sync.RWMutex
	entries []AuditEntry
}

func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(ctx context.Context, entry *AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *entry)
	if over := len(r.entries) - memoryCapacity; over > 0 {
		r.entries = append([]AuditEntry(nil), r.entries[over:]...)
	}
	return nil
}

func (r *memoryRepository) List(ctx context.Context, q ListQuery) ([]AuditEntry, error) {
	r.mu.RLock()
	out := make([]AuditEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if q.Kind == "" || e.Kind == q.Kind {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if n := q.limit(); len(out) > n {
		out = out[:n]
	}
	return out, nil
}
