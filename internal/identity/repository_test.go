package identity

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestInsertOrGetCreatesOnce(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	user, created, err := repo.InsertOrGet(ctx, User{Phone: "+971501234567", Role: RoleStandard, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true for first insert")
	}
	if user.ID == "" {
		t.Fatalf("expected an assigned id")
	}

	again, created, err := repo.InsertOrGet(ctx, User{Phone: "+971501234567", Role: RoleAdministrator, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for existing phone")
	}
	if again.ID != user.ID {
		t.Fatalf("expected same user back, got %s vs %s", again.ID, user.ID)
	}
	if again.Role != RoleStandard {
		t.Fatalf("role must stay fixed at creation, got %s", again.Role)
	}
}

func TestInsertOrGetConcurrent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	ids := make([]string, workers)
	createdCount := make([]bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, created, err := repo.InsertOrGet(ctx, User{Phone: "+971509999999", Role: RoleStandard})
			if err != nil {
				t.Errorf("insert: %v", err)
				return
			}
			ids[i] = user.ID
			createdCount[i] = created
		}(i)
	}
	wg.Wait()

	creations := 0
	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("diverging user ids under concurrency: %s vs %s", ids[i], ids[0])
		}
	}
	for _, c := range createdCount {
		if c {
			creations++
		}
	}
	if creations != 1 {
		t.Fatalf("expected exactly one creation, got %d", creations)
	}
}

func TestUpdateProfileMarksComplete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user, _, err := repo.InsertOrGet(ctx, User{Phone: "+971501234567", Role: RoleStandard})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if user.ProfileComplete {
		t.Fatalf("fresh user must have an incomplete profile")
	}

	updated, err := repo.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: "Ayesha", Email: "ayesha@example.com", Location: "Dubai"})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if !updated.ProfileComplete {
		t.Fatalf("expected profile_complete=true after update")
	}
	if updated.Name != "Ayesha" || updated.Email != "ayesha@example.com" || updated.Location != "Dubai" {
		t.Fatalf("profile fields not persisted: %+v", updated)
	}

	byID, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if !byID.ProfileComplete {
		t.Fatalf("update not visible through FindByID")
	}
}

func TestFindMissingUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "64b5f0c1a2b3c4d5e6f70809"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindByPhone(ctx, "+971500000000"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
