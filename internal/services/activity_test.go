package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

func TestActivityCreateComputesLevels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustActivity(t, "Food", nil)
	if root.Level != 1 {
		t.Fatalf("root level = %d, want 1", root.Level)
	}
	child := env.mustActivity(t, "Bakery", &root.ID)
	if child.Level != 2 {
		t.Fatalf("child level = %d, want 2", child.Level)
	}
	grandchild := env.mustActivity(t, "Bread", &child.ID)
	if grandchild.Level != 3 {
		t.Fatalf("grandchild level = %d, want 3", grandchild.Level)
	}

	_, err := env.activities.Create(ctx, "Sourdough", &grandchild.ID)
	if err == nil {
		t.Fatal("expected depth cap error, got nil")
	}
	ae := apierr.From(err)
	if ae.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", ae.Status)
	}
	leftover, err := env.activityRepo.GetByName(ctx, nil, "Sourdough")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if leftover != nil {
		t.Fatal("rejected activity was persisted")
	}
}

func TestActivityCreateParentMissing(t *testing.T) {
	env := newTestEnv(t)

	missing := uint(4242)
	_, err := env.activities.Create(context.Background(), "Orphan", &missing)
	if err == nil {
		t.Fatal("expected error for missing parent")
	}
	if apierr.From(err).Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apierr.From(err).Status)
	}
}

func TestActivityCreateDuplicateName(t *testing.T) {
	env := newTestEnv(t)

	env.mustActivity(t, "Food", nil)
	_, err := env.activities.Create(context.Background(), "Food", nil)
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	if apierr.From(err).Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apierr.From(err).Status)
	}
}

func TestSubtreeVisitsDescendantsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	food := env.mustActivity(t, "Food", nil)
	bakery := env.mustActivity(t, "Bakery", &food.ID)
	dairy := env.mustActivity(t, "Dairy", &food.ID)
	bread := env.mustActivity(t, "Bread", &bakery.ID)

	subtree, err := env.activities.Subtree(ctx, nil, food)
	if err != nil {
		t.Fatalf("subtree: %v", err)
	}
	want := map[uint]bool{food.ID: true, bakery.ID: true, dairy.ID: true, bread.ID: true}
	if len(subtree) != len(want) {
		t.Fatalf("subtree size = %d, want %d", len(subtree), len(want))
	}
	seen := map[uint]int{}
	for _, a := range subtree {
		seen[a.ID]++
		if !want[a.ID] {
			t.Fatalf("unexpected activity %d in subtree", a.ID)
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("activity %d visited %d times", id, n)
		}
	}
}

func TestSubtreeDepthBoundOnCorruptData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Legitimate chain up to the cap.
	l1 := env.mustActivity(t, "L1", nil)
	l2 := env.mustActivity(t, "L2", &l1.ID)
	l3 := env.mustActivity(t, "L3", &l2.ID)

	// Rows written around the API, deeper than the invariant allows.
	l4 := &types.Activity{Name: "L4", ParentID: &l3.ID, Level: 4}
	if err := env.db.Create(l4).Error; err != nil {
		t.Fatalf("inject l4: %v", err)
	}
	l5 := &types.Activity{Name: "L5", ParentID: &l4.ID, Level: 5}
	if err := env.db.Create(l5).Error; err != nil {
		t.Fatalf("inject l5: %v", err)
	}

	subtree, err := env.activities.Subtree(ctx, nil, l1)
	if err != nil {
		t.Fatalf("subtree: %v", err)
	}
	ids := map[uint]bool{}
	for _, a := range subtree {
		ids[a.ID] = true
	}
	if !ids[l4.ID] {
		t.Fatal("expected node three levels below root to be visited")
	}
	if ids[l5.ID] {
		t.Fatal("walk descended more than three levels below root")
	}
}

func TestSubtreeTerminatesOnCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustActivity(t, "A", nil)
	b := env.mustActivity(t, "B", &a.ID)
	c := env.mustActivity(t, "C", &b.ID)

	// Close the loop behind the API's back: A's parent becomes C.
	if err := env.db.Model(&types.Activity{}).Where("id = ?", a.ID).Update("parent_id", c.ID).Error; err != nil {
		t.Fatalf("inject cycle: %v", err)
	}

	subtree, err := env.activities.Subtree(ctx, nil, a)
	if err != nil {
		t.Fatalf("subtree: %v", err)
	}
	seen := map[uint]int{}
	for _, node := range subtree {
		seen[node.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("activity %d visited %d times in cyclic data", id, n)
		}
	}
}

func TestActivityDeleteWithChildrenRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	food := env.mustActivity(t, "Food", nil)
	env.mustActivity(t, "Bakery", &food.ID)

	err := env.activities.Delete(ctx, food.ID)
	if err == nil {
		t.Fatal("expected delete of parent activity to be rejected")
	}
	if apierr.From(err).Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apierr.From(err).Status)
	}
	still, err := env.activityRepo.GetByID(ctx, nil, food.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if still == nil {
		t.Fatal("activity was deleted despite rejection")
	}
}

func TestActivityDeleteRemovesAssociations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	building := env.mustBuilding(t, "Lenina 1", 55.0, 37.0)
	bakery := env.mustActivity(t, "Bakery", nil)
	org := env.mustOrganization(t, CreateOrganizationInput{
		Name:        "Bread Co",
		BuildingID:  building.ID,
		ActivityIDs: []uint{bakery.ID},
	})

	if err := env.activities.Delete(ctx, bakery.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	links, err := env.linkRepo.ListByOrganizationID(ctx, nil, org.ID)
	if err != nil {
		t.Fatalf("list links: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected no remaining association rows, got %d", len(links))
	}
}

func TestActivityReparentRecomputesLevels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	food := env.mustActivity(t, "Food", nil)
	servicesRoot := env.mustActivity(t, "Services", nil)
	bakery := env.mustActivity(t, "Bakery", &food.ID)
	bread := env.mustActivity(t, "Bread", &bakery.ID)

	moved, err := env.activities.Update(ctx, bakery.ID, ActivityUpdateInput{ParentID: &servicesRoot.ID})
	if err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if moved.Level != 2 {
		t.Fatalf("moved level = %d, want 2", moved.Level)
	}
	breadAfter, err := env.activityRepo.GetByID(ctx, nil, bread.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if breadAfter.Level != 3 {
		t.Fatalf("descendant level = %d, want 3", breadAfter.Level)
	}
}

func TestActivityReparentTooDeepRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	food := env.mustActivity(t, "Food", nil)
	bakery := env.mustActivity(t, "Bakery", &food.ID)
	bread := env.mustActivity(t, "Bread", &bakery.ID)

	// Moving a two-level subtree under a level-2 parent would push the leaf
	// to level 4.
	other := env.mustActivity(t, "Retail", nil)
	shop := env.mustActivity(t, "Shops", &other.ID)

	_, err := env.activities.Update(ctx, bakery.ID, ActivityUpdateInput{ParentID: &shop.ID})
	if err == nil {
		t.Fatal("expected reparent past the depth cap to be rejected")
	}
	if apierr.From(err).Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apierr.From(err).Status)
	}
	breadAfter, err := env.activityRepo.GetByID(ctx, nil, bread.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if breadAfter.Level != 3 {
		t.Fatalf("descendant level changed to %d on rejected move", breadAfter.Level)
	}
}

func TestActivityReparentUnderDescendantRejected(t *testing.T) {
	env := newTestEnv(t)

	food := env.mustActivity(t, "Food", nil)
	bakery := env.mustActivity(t, "Bakery", &food.ID)

	_, err := env.activities.Update(context.Background(), food.ID, ActivityUpdateInput{ParentID: &bakery.ID})
	if err == nil {
		t.Fatal("expected reparent under own descendant to be rejected")
	}
}
