package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

// NewMemoryStore returns a process-local store for development and tests.
// Every repository hands out copies so callers cannot mutate stored records.
func NewMemoryStore() *Store {
	return &Store{
		Transactions: NewMemoryTransactionRepo(),
		Staff:        NewMemoryStaffRepo(),
		Customers:    NewMemoryCustomerRepo(),
		Tokens:       NewMemoryTokenDenylist(time.Now),
		Health:       memoryPinger{},
	}
}

type memoryPinger struct{}

func (memoryPinger) Ping(context.Context) error { return nil }

var _ TransactionRepository = (*MemoryTransactionRepo)(nil)

type MemoryTransactionRepo struct {
	mu    sync.RWMutex
	items map[string]models.Transaction
}

func NewMemoryTransactionRepo() *MemoryTransactionRepo {
	return &MemoryTransactionRepo{items: make(map[string]models.Transaction)}
}

func (r *MemoryTransactionRepo) Create(_ context.Context, t *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = primitive.NewObjectID().Hex()
	}
	if _, ok := r.items[t.ID]; ok {
		return apperror.Conflict("Transaction already exists")
	}
	r.items[t.ID] = *t
	return nil
}

func (r *MemoryTransactionRepo) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return nil, errTransactionNotFound()
	}
	return &t, nil
}

func (r *MemoryTransactionRepo) Find(_ context.Context, opts ...*TransactionOptions) ([]*models.Transaction, error) {
	opt := firstTransactionOptions(opts)

	r.mu.RLock()
	matched := make([]*models.Transaction, 0, len(r.items))
	for _, t := range r.items {
		if opt.matches(&t) {
			t := t
			matched = append(matched, &t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	return paginate(matched, opt.Page), nil
}

func (r *MemoryTransactionRepo) Count(_ context.Context, opts ...*TransactionOptions) (int64, error) {
	opt := firstTransactionOptions(opts)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, t := range r.items {
		if opt.matches(&t) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryTransactionRepo) UpdatePending(_ context.Context, id string, u TransactionUpdate) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.Status != models.StatusPending {
		return nil, ErrNotPending
	}

	t.Status = u.Status
	t.UpdatedAt = u.UpdatedAt
	if u.ReviewedBy != "" {
		t.ReviewedBy = u.ReviewedBy
	}
	if u.RecipientReference != nil {
		t.RecipientReference = *u.RecipientReference
	}
	if u.CustomerReference != nil {
		t.CustomerReference = *u.CustomerReference
	}
	if u.SwiftCode != nil {
		t.SwiftCode = *u.SwiftCode
	}
	r.items[id] = t

	return &t, nil
}

func (r *MemoryTransactionRepo) Delete(_ context.Context, id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return nil, errTransactionNotFound()
	}
	delete(r.items, id)
	return &t, nil
}

var _ StaffRepository = (*MemoryStaffRepo)(nil)

type MemoryStaffRepo struct {
	mu    sync.RWMutex
	items map[string]models.Staff
}

func NewMemoryStaffRepo() *MemoryStaffRepo {
	return &MemoryStaffRepo{items: make(map[string]models.Staff)}
}

func (r *MemoryStaffRepo) Create(_ context.Context, s *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	for _, existing := range r.items {
		if existing.Username == s.Username {
			return errUsernameTaken()
		}
	}
	r.items[s.ID] = *s
	return nil
}

func (r *MemoryStaffRepo) FindByID(_ context.Context, id string) (*models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return nil, errStaffNotFound()
	}
	return &s, nil
}

func (r *MemoryStaffRepo) FindByUsername(_ context.Context, username string) (*models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.Username == username {
			return &s, nil
		}
	}
	return nil, errStaffNotFound()
}

func (r *MemoryStaffRepo) Find(_ context.Context, opts ...*StaffOptions) ([]*models.Staff, error) {
	opt := firstStaffOptions(opts)

	r.mu.RLock()
	matched := make([]*models.Staff, 0, len(r.items))
	for _, s := range r.items {
		if opt.matches(&s) {
			s := s
			matched = append(matched, &s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Username < matched[j].Username
	})

	return paginate(matched, opt.Page), nil
}

func (r *MemoryStaffRepo) Count(_ context.Context, opts ...*StaffOptions) (int64, error) {
	opt := firstStaffOptions(opts)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, s := range r.items {
		if opt.matches(&s) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryStaffRepo) Update(_ context.Context, id string, u StaffUpdate) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return nil, errStaffNotFound()
	}

	if u.Username != nil {
		for otherID, other := range r.items {
			if otherID != id && other.Username == *u.Username {
				return nil, errUsernameTaken()
			}
		}
		s.Username = *u.Username
	}
	if u.PasswordHash != nil {
		s.Password = *u.PasswordHash
	}
	if u.Role != nil {
		s.Role = *u.Role
	}
	s.UpdatedAt = u.UpdatedAt
	r.items[id] = s

	return &s, nil
}

func (r *MemoryStaffRepo) Delete(_ context.Context, id string) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return nil, errStaffNotFound()
	}
	delete(r.items, id)
	return &s, nil
}

var _ CustomerRepository = (*MemoryCustomerRepo)(nil)

type MemoryCustomerRepo struct {
	mu    sync.RWMutex
	items map[string]models.Customer
}

func NewMemoryCustomerRepo() *MemoryCustomerRepo {
	return &MemoryCustomerRepo{items: make(map[string]models.Customer)}
}

func (r *MemoryCustomerRepo) Create(_ context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	for _, existing := range r.items {
		if existing.Username == c.Username || existing.AccountNumber == c.AccountNumber {
			return apperror.Conflict("Username or account number already exists")
		}
	}
	r.items[c.ID] = *c
	return nil
}

func (r *MemoryCustomerRepo) FindByID(_ context.Context, id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, apperror.NotFound("No customer found")
	}
	return &c, nil
}

func (r *MemoryCustomerRepo) FindByUsername(_ context.Context, username string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Username == username {
			return &c, nil
		}
	}
	return nil, apperror.NotFound("No customer found")
}

var _ TokenDenylist = (*MemoryTokenDenylist)(nil)

type MemoryTokenDenylist struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

func NewMemoryTokenDenylist(now func() time.Time) *MemoryTokenDenylist {
	return &MemoryTokenDenylist{now: now, revoked: make(map[string]time.Time)}
}

func (d *MemoryTokenDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.revoked[tokenID] = expiresAt
	return nil
}

func (d *MemoryTokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	if !ok {
		return false, nil
	}
	// expired entries are dropped, mirroring the TTL index on the Mongo collection
	if d.now().After(exp) {
		delete(d.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func paginate[T any](items []T, p helpers.Page) []T {
	if p.Limit <= 0 {
		return items
	}

	start := p.Skip()
	if start < 0 || start >= int64(len(items)) {
		return items[:0]
	}
	end := start + p.Limit
	if end < start || end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}
