package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

func TestMemoryTransactionRepo(t *testing.T) {
	suite.Run(t, NewSuite(t))
}

func NewSuite(t *testing.T) *Suite {
	return &Suite{
		Assertions: require.New(t),
	}
}

type Suite struct {
	suite.Suite
	*require.Assertions // default to require behavior

	ctx  context.Context
	repo *MemoryTransactionRepo
	base time.Time
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewMemoryTransactionRepo()
	s.base = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	rows := []struct {
		id       string
		customer string
		status   models.TransactionStatus
	}{
		{"t1", "C1", models.StatusPending},
		{"t2", "C1", models.StatusApproved},
		{"t3", "C2", models.StatusDenied},
		{"t4", "C2", models.StatusPending},
		{"t5", "C1", models.StatusPending},
	}
	for i, row := range rows {
		s.NoError(s.repo.Create(s.ctx, &models.Transaction{
			ID:         row.id,
			CustomerID: row.customer,
			Amount:     models.AmountFromInt(int64(100 * (i + 1))),
			Status:     row.status,
			CreatedAt:  s.base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  s.base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func (s *Suite) ids(ts []*models.Transaction) []string {
	var out []string
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func (s *Suite) TestFindAllNewestFirst() {
	got, err := s.repo.Find(s.ctx)
	s.NoError(err)
	s.Equal([]string{"t5", "t4", "t3", "t2", "t1"}, s.ids(got))
}

func (s *Suite) TestFindByStatus() {
	opts := NewTransactionOptions().SetStatuses(models.StatusApproved, models.StatusDenied)
	got, err := s.repo.Find(s.ctx, opts)
	s.NoError(err)
	s.Equal([]string{"t3", "t2"}, s.ids(got))

	n, err := s.repo.Count(s.ctx, NewTransactionOptions().SetStatuses(models.StatusPending))
	s.NoError(err)
	s.EqualValues(3, n)
}

func (s *Suite) TestFindByCustomerPaged() {
	opts := NewTransactionOptions().
		SetCustomerID("C1").
		SetPage(helpers.Page{Limit: 2, Page: 0})
	got, err := s.repo.Find(s.ctx, opts)
	s.NoError(err)
	s.Equal([]string{"t5", "t2"}, s.ids(got))

	opts.SetPage(helpers.Page{Limit: 2, Page: 1})
	got, err = s.repo.Find(s.ctx, opts)
	s.NoError(err)
	s.Equal([]string{"t1"}, s.ids(got))

	opts.SetPage(helpers.Page{Limit: 2, Page: 5})
	got, err = s.repo.Find(s.ctx, opts)
	s.NoError(err)
	s.Empty(got)
}

func (s *Suite) TestFindByIDReturnsCopy() {
	got, err := s.repo.FindByID(s.ctx, "t1")
	s.NoError(err)
	got.Status = models.StatusApproved

	again, err := s.repo.FindByID(s.ctx, "t1")
	s.NoError(err)
	s.Equal(models.StatusPending, again.Status)

	_, err = s.repo.FindByID(s.ctx, "missing")
	s.True(apperror.Is(err, apperror.KindNotFound))
}

func (s *Suite) TestUpdatePendingOnlyOnce() {
	ref := "INV-7"
	updated, err := s.repo.UpdatePending(s.ctx, "t1", TransactionUpdate{
		Status:             models.StatusApproved,
		ReviewedBy:         "E1",
		RecipientReference: &ref,
		UpdatedAt:          s.base.Add(time.Hour),
	})
	s.NoError(err)
	s.Equal(models.StatusApproved, updated.Status)
	s.Equal("INV-7", updated.RecipientReference)
	s.Equal("E1", updated.ReviewedBy)

	_, err = s.repo.UpdatePending(s.ctx, "t1", TransactionUpdate{Status: models.StatusDenied})
	s.ErrorIs(err, ErrNotPending)

	_, err = s.repo.UpdatePending(s.ctx, "missing", TransactionUpdate{Status: models.StatusDenied})
	s.ErrorIs(err, ErrNotPending)
}

func (s *Suite) TestConcurrentDecisionsOneWins() {
	var wg sync.WaitGroup
	results := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := models.StatusApproved
			if i%2 == 1 {
				status = models.StatusDenied
			}
			_, err := s.repo.UpdatePending(context.Background(), "t4", TransactionUpdate{Status: status})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		}
	}
	s.Equal(1, wins)
}

func (s *Suite) TestDelete() {
	deleted, err := s.repo.Delete(s.ctx, "t2")
	s.NoError(err)
	s.Equal("t2", deleted.ID)

	_, err = s.repo.Delete(s.ctx, "t2")
	s.True(apperror.Is(err, apperror.KindNotFound))
}

func TestMemoryStaffRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepo()

	require.NoError(t, repo.Create(ctx, &models.Staff{ID: "s1", Username: "thabo", Role: models.RoleEmployee}))
	require.NoError(t, repo.Create(ctx, &models.Staff{ID: "s2", Username: "anna", Role: models.RoleAdmin}))
	require.NoError(t, repo.Create(ctx, &models.Staff{ID: "s3", Username: "lerato", Role: models.RoleEmployee}))

	err := repo.Create(ctx, &models.Staff{Username: "anna", Role: models.RoleEmployee})
	require.True(t, apperror.Is(err, apperror.KindConflict))

	employees, err := repo.Find(ctx, NewStaffOptions().SetRoles(models.RoleEmployee))
	require.NoError(t, err)
	require.Len(t, employees, 2)
	require.Equal(t, "lerato", employees[0].Username)

	n, err := repo.Count(ctx, NewStaffOptions().SetRoles(models.RoleAdmin))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	taken := "thabo"
	_, err = repo.Update(ctx, "s3", StaffUpdate{Username: &taken})
	require.True(t, apperror.Is(err, apperror.KindConflict))

	admin := models.RoleAdmin
	updated, err := repo.Update(ctx, "s3", StaffUpdate{Role: &admin})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, updated.Role)

	found, err := repo.FindByUsername(ctx, "lerato")
	require.NoError(t, err)
	require.Equal(t, "s3", found.ID)

	_, err = repo.Delete(ctx, "s3")
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, "s3")
	require.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestMemoryTokenDenylistExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewMemoryTokenDenylist(func() time.Time { return now })

	require.NoError(t, d.Revoke(ctx, "jti-1", now.Add(time.Hour)))

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)
}

func (s *Suite) TestFindPageBeyondEnd() {
	for _, page := range []helpers.Page{
		{Limit: 2, Page: 40},
		{Limit: 100, Page: 92233720368547758},
		{Limit: 100, Page: 1 << 62},
	} {
		found, err := s.repo.Find(s.ctx, NewTransactionOptions().SetPage(page))
		s.NoError(err)
		s.Empty(found)
	}
}
