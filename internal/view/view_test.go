package view

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetdash/internal/model"
)

type stubSource struct {
	family string
	reqs   []model.UnifiedRequest
	err    error
}

func (s stubSource) Name() string { return s.family }
func (s stubSource) Fetch(ctx context.Context, userID string) ([]model.UnifiedRequest, error) {
	return s.reqs, s.err
}

func at(day int) time.Time {
	return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
}

// The §8-style fixture: Alice's booking, Bob's empty-leg service request,
// and one CO2 certificate request.
func fixture() (booking, service, co2 model.UnifiedRequest) {
	booking = model.UnifiedRequest{
		ID: "bk-1", Family: model.FamilyBooking, Type: model.TypeFlightBooking,
		Status: "pending", ContactName: "Alice", CreatedAt: at(1),
	}
	service = model.UnifiedRequest{
		ID: "sr-1", Family: model.FamilyService, Type: model.TypeEmptyLeg,
		Status: "pending", ContactName: "Bob", CreatedAt: at(5),
	}
	co2 = model.UnifiedRequest{
		ID: "co2-1", Family: model.FamilyCO2, Type: model.TypeCO2,
		Status: "completed", CreatedAt: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	return
}

func loadedSnapshot(t *testing.T) Snapshot {
	t.Helper()
	booking, service, co2 := fixture()
	agg := New(
		stubSource{family: model.FamilyBooking, reqs: []model.UnifiedRequest{booking}},
		stubSource{family: model.FamilyService, reqs: []model.UnifiedRequest{service}},
		stubSource{family: model.FamilyCO2, reqs: []model.UnifiedRequest{co2}},
	)
	return agg.Load(context.Background(), "user-1")
}

func TestRecentActivityMergesAllFamiliesNewestFirst(t *testing.T) {
	snap := loadedSnapshot(t)
	got := snap.RecentActivity(0)
	require.Len(t, got, 3)
	assert.Equal(t, "Bob", got[0].ContactName)   // 2025-03-05
	assert.Equal(t, "Alice", got[1].ContactName) // 2025-03-01
	assert.Equal(t, model.FamilyCO2, got[2].Family)

	capped := snap.RecentActivity(2)
	require.Len(t, capped, 2)
	assert.Equal(t, "Bob", capped[0].ContactName)
}

// CO2 requests appear in recent activity but never in the primary listing.
func TestRequestsExcludesCO2(t *testing.T) {
	snap := loadedSnapshot(t)
	got := snap.Requests()
	require.Len(t, got, 2)
	for _, r := range got {
		assert.NotEqual(t, model.FamilyCO2, r.Family)
	}
}

func TestPartialFailureIsolation(t *testing.T) {
	booking, _, co2 := fixture()
	agg := New(
		stubSource{family: model.FamilyBooking, reqs: []model.UnifiedRequest{booking}},
		stubSource{family: model.FamilyService, err: errors.New("query timeout")},
		stubSource{family: model.FamilyCO2, reqs: []model.UnifiedRequest{co2}},
	)
	snap := agg.Load(context.Background(), "user-1")

	assert.Equal(t, []string{model.FamilyService}, snap.Degraded)
	// the failed family degrades to empty; the others are intact
	assert.Empty(t, snap.Family(model.FamilyService))
	assert.Len(t, snap.Requests(), 1)
	assert.Len(t, snap.RecentActivity(0), 2)
}

// Records sharing an id across families must both survive the merge.
func TestMergeKeysByFamilyAndID(t *testing.T) {
	a := model.UnifiedRequest{ID: "7", Family: model.FamilyBooking, Type: model.TypeFlightBooking, CreatedAt: at(2)}
	b := model.UnifiedRequest{ID: "7", Family: model.FamilyService, Type: model.TypeJets, CreatedAt: at(3)}
	agg := New(
		stubSource{family: model.FamilyBooking, reqs: []model.UnifiedRequest{a}},
		stubSource{family: model.FamilyService, reqs: []model.UnifiedRequest{b}},
	)
	snap := agg.Load(context.Background(), "user-1")
	assert.Len(t, snap.Requests(), 2)
}

func TestFilterComposition(t *testing.T) {
	booking, service, _ := fixture()
	list := []model.UnifiedRequest{service, booking}

	// typeFilter alone
	got := Filter(list, model.TypeEmptyLeg, "")
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].ContactName)

	// search alone
	got = Filter(list, FilterAll, "alice")
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].ContactName)

	// both must hold
	assert.Empty(t, Filter(list, model.TypeEmptyLeg, "alice"))
	assert.Len(t, Filter(list, FilterAll, ""), 2)
}

func TestFilterPreservesRecencyOrder(t *testing.T) {
	var list []model.UnifiedRequest
	for i := 1; i <= 9; i++ {
		list = append(list, model.UnifiedRequest{
			ID: fmt.Sprintf("sr-%d", i), Family: model.FamilyService,
			Type: model.TypeJets, Status: "pending", CreatedAt: at(i),
		})
	}
	SortByRecency(list)
	got := Filter(list, model.TypeJets, "pending")
	require.Len(t, got, 9)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

// Equal timestamps keep their fetch order through the stable sort.
func TestSortStabilityOnTies(t *testing.T) {
	ts := at(10)
	list := []model.UnifiedRequest{
		{ID: "first", Family: model.FamilyService, CreatedAt: ts},
		{ID: "second", Family: model.FamilyService, CreatedAt: ts},
		{ID: "third", Family: model.FamilyService, CreatedAt: ts},
	}
	SortByRecency(list)
	assert.Equal(t, "first", list[0].ID)
	assert.Equal(t, "second", list[1].ID)
	assert.Equal(t, "third", list[2].ID)
}

// Concatenating all pages in order reproduces the list exactly.
func TestPaginationCoverage(t *testing.T) {
	var list []model.UnifiedRequest
	for i := 1; i <= 13; i++ {
		list = append(list, model.UnifiedRequest{ID: fmt.Sprintf("r-%d", i), CreatedAt: at(i%28 + 1)})
	}
	const size = 6
	pages := PageCount(len(list), size)
	assert.Equal(t, 3, pages)

	var rebuilt []model.UnifiedRequest
	for p := 1; p <= pages; p++ {
		rebuilt = append(rebuilt, Paginate(list, size, p)...)
	}
	assert.Equal(t, list, rebuilt)
}

func TestPaginateEdges(t *testing.T) {
	list := []model.UnifiedRequest{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Len(t, Paginate(list, 2, 1), 2)
	assert.Len(t, Paginate(list, 2, 2), 1)
	// past the last page: empty slice, not an error
	assert.Empty(t, Paginate(list, 2, 3))
	assert.Empty(t, Paginate(list, 2, 99))
	// page < 1 clamps to 1
	assert.Equal(t, Paginate(list, 2, 1), Paginate(list, 2, 0))
	assert.Equal(t, Paginate(list, 2, 1), Paginate(list, 2, -5))

	assert.Empty(t, Paginate(nil, 2, 1))
	assert.Equal(t, 0, PageCount(0, 6))
}

// The documented end-to-end scenario: Bob's empty leg (03-05), Alice's
// booking (03-01), then the CO2 request (02-20).
func TestScenario(t *testing.T) {
	snap := loadedSnapshot(t)

	all := snap.RecentActivity(0)
	require.Len(t, all, 3)
	assert.Equal(t, model.TypeEmptyLeg, all[0].Type)
	assert.Equal(t, model.TypeFlightBooking, all[1].Type)
	assert.Equal(t, model.TypeCO2, all[2].Type)

	byType := Filter(all, model.TypeEmptyLeg, "")
	require.Len(t, byType, 1)
	assert.Equal(t, "Bob", byType[0].ContactName)

	byQuery := Filter(all, FilterAll, "alice")
	require.Len(t, byQuery, 1)
	assert.Equal(t, model.TypeFlightBooking, byQuery[0].Type)

	page1 := Paginate(all, 2, 1)
	require.Len(t, page1, 2)
	assert.Equal(t, "Bob", page1[0].ContactName)
	assert.Equal(t, "Alice", page1[1].ContactName)
	page2 := Paginate(all, 2, 2)
	require.Len(t, page2, 1)
	assert.Equal(t, model.FamilyCO2, page2[0].Family)
}
