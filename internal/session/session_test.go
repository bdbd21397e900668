package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/glasspack/api/internal/draft"
	"github.com/glasspack/api/internal/enum"
	"github.com/google/uuid"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore()
	sess := s.Create(true, enum.TeamGlass, "ops1")

	if !sess.Draft.TeamOrder {
		t.Fatal("expected team-order draft")
	}
	if sess.Draft.Team != enum.TeamGlass || sess.Draft.CreatedBy != "ops1" {
		t.Fatalf("identity not applied: %+v", sess.Draft)
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(got.Draft.Items) != 1 {
		t.Fatalf("expected one default item, got %d", len(got.Draft.Items))
	}
}

func TestGetUnknownSession(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateInstallsSnapshot(t *testing.T) {
	s := NewStore()
	sess := s.Create(false, "", "")

	got, err := s.Update(sess.ID, func(d draft.Draft, search draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.SetHeader("customer_name", "Acme")
		return nd, search, err
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Draft.CustomerName != "Acme" {
		t.Fatalf("snapshot not installed: %q", got.Draft.CustomerName)
	}
}

// An update that fails must leave the stored session untouched.
func TestUpdateErrorLeavesSessionUntouched(t *testing.T) {
	s := NewStore()
	sess := s.Create(false, "", "")

	_, err := s.Update(sess.ID, func(d draft.Draft, search draft.SearchState) (draft.Draft, draft.SearchState, error) {
		d.CustomerName = "partial"
		return d, search, errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}

	got, _ := s.Get(sess.ID)
	if got.Draft.CustomerName != "" {
		t.Fatalf("failed update leaked state: %q", got.Draft.CustomerName)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore()
	sess := s.Create(false, "", "")
	s.Delete(sess.ID)
	if _, err := s.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("session still present after delete")
	}
}

func TestSearchGuardRefusesSecondClaim(t *testing.T) {
	s := NewStore()
	sess := s.Create(false, "", "")

	if err := s.BeginSearch(sess.ID); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if err := s.BeginSearch(sess.ID); !errors.Is(err, ErrSearchBusy) {
		t.Fatalf("expected ErrSearchBusy, got %v", err)
	}

	s.EndSearch(sess.ID)
	if err := s.BeginSearch(sess.ID); err != nil {
		t.Fatalf("claim after release: %v", err)
	}
}

func TestSubmitGuardRefusesSecondClaim(t *testing.T) {
	s := NewStore()
	sess := s.Create(false, "", "")

	if err := s.BeginSubmit(sess.ID); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if err := s.BeginSubmit(sess.ID); !errors.Is(err, ErrSubmitBusy) {
		t.Fatalf("expected ErrSubmitBusy, got %v", err)
	}

	// The guards are independent: a running submit does not block a search.
	if err := s.BeginSearch(sess.ID); err != nil {
		t.Fatalf("search claim during submit: %v", err)
	}
}

// Under concurrent contention exactly one claimant wins the guard.
func TestSubmitGuardUnderContention(t *testing.T) {
	s := NewStore()
	sess := s.Create(false, "", "")

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.BeginSubmit(sess.ID) == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", count)
	}
}
