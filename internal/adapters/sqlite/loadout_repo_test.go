package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/fieldops/internal/adapters/sqlite"
)

func TestLoadoutGetByIDIncludesEquipment(t *testing.T) {
	conn := setupTestDB(t)
	seedEquipment(t, conn, "EQ-001", 7.5)
	seedEquipment(t, conn, "EQ-002", 2.5)
	seedLoadout(t, conn, "LOAD-001", "EQ-001", "EQ-002")

	repo := sqlite.NewLoadoutRepository(conn)
	got, err := repo.GetByID(context.Background(), "LOAD-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Equipment) != 2 {
		t.Fatalf("got %d equipment items, want 2", len(got.Equipment))
	}
}

func TestLoadoutSumHourlyCost(t *testing.T) {
	conn := setupTestDB(t)
	seedEquipment(t, conn, "EQ-001", 7.5)
	seedEquipment(t, conn, "EQ-002", 2.5)
	seedLoadout(t, conn, "LOAD-001", "EQ-001", "EQ-002")
	seedLoadout(t, conn, "LOAD-002")

	repo := sqlite.NewLoadoutRepository(conn)
	ctx := context.Background()

	sum, err := repo.SumHourlyCost(ctx, "LOAD-001")
	if err != nil {
		t.Fatalf("SumHourlyCost() error = %v", err)
	}
	if sum != 10.0 {
		t.Errorf("SumHourlyCost() = %v, want 10.0", sum)
	}

	// Empty loadout sums to zero, not an error
	sum, err = repo.SumHourlyCost(ctx, "LOAD-002")
	if err != nil {
		t.Fatalf("SumHourlyCost() error = %v", err)
	}
	if sum != 0 {
		t.Errorf("SumHourlyCost() = %v, want 0 for empty loadout", sum)
	}
}

func TestLoadoutRemoveEquipmentAffectsSum(t *testing.T) {
	conn := setupTestDB(t)
	seedEquipment(t, conn, "EQ-001", 7.5)
	seedEquipment(t, conn, "EQ-002", 2.5)
	seedLoadout(t, conn, "LOAD-001", "EQ-001", "EQ-002")

	repo := sqlite.NewLoadoutRepository(conn)
	ctx := context.Background()

	if err := repo.RemoveEquipment(ctx, "LOAD-001", "EQ-002"); err != nil {
		t.Fatalf("RemoveEquipment() error = %v", err)
	}
	sum, err := repo.SumHourlyCost(ctx, "LOAD-001")
	if err != nil {
		t.Fatalf("SumHourlyCost() error = %v", err)
	}
	if sum != 7.5 {
		t.Errorf("SumHourlyCost() = %v, want 7.5 after removal", sum)
	}
}
