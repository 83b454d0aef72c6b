package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"loopfreight/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeAssignmentRepo is a function-field test double. Unset fields panic on
// use, which keeps tests honest about what they exercise.
type fakeAssignmentRepo struct {
	createFn             func(ctx context.Context, a *models.TruckAssignment) error
	getByIDFn            func(ctx context.Context, id string) (*models.TruckAssignment, error)
	updateFn             func(ctx context.Context, a *models.TruckAssignment) error
	deleteFn             func(ctx context.Context, id string) error
	listAllFn            func(ctx context.Context) ([]*models.TruckAssignment, error)
	listByCityFn         func(ctx context.Context, city string) ([]*models.TruckAssignment, error)
	listByAssignerFn     func(ctx context.Context, userID string) ([]*models.TruckAssignment, error)
	listIncomingAtCityFn func(ctx context.Context, city string) ([]*models.TruckAssignment, error)
	hasActiveByTruckFn   func(ctx context.Context, truckNumber string) (bool, error)
	promoteArrivedFn     func(ctx context.Context, city string, now time.Time) (int64, error)
	promoteArrivedAllFn  func(ctx context.Context, now time.Time) (int64, error)
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *models.TruckAssignment) error {
	return f.createFn(ctx, a)
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (*models.TruckAssignment, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, a *models.TruckAssignment) error {
	return f.updateFn(ctx, a)
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeAssignmentRepo) ListAll(ctx context.Context) ([]*models.TruckAssignment, error) {
	return f.listAllFn(ctx)
}

func (f *fakeAssignmentRepo) ListByCity(ctx context.Context, city string) ([]*models.TruckAssignment, error) {
	return f.listByCityFn(ctx, city)
}

func (f *fakeAssignmentRepo) ListByAssigner(ctx context.Context, userID string) ([]*models.TruckAssignment, error) {
	return f.listByAssignerFn(ctx, userID)
}

func (f *fakeAssignmentRepo) ListIncomingAtCity(ctx context.Context, city string) ([]*models.TruckAssignment, error) {
	return f.listIncomingAtCityFn(ctx, city)
}

func (f *fakeAssignmentRepo) HasActiveByTruck(ctx context.Context, truckNumber string) (bool, error) {
	return f.hasActiveByTruckFn(ctx, truckNumber)
}

func (f *fakeAssignmentRepo) PromoteArrived(ctx context.Context, city string, now time.Time) (int64, error) {
	return f.promoteArrivedFn(ctx, city, now)
}

func (f *fakeAssignmentRepo) PromoteArrivedAll(ctx context.Context, now time.Time) (int64, error) {
	return f.promoteArrivedAllFn(ctx, now)
}

// memAssignmentRepo is an in-memory repository used for lifecycle scenarios
// that span several operations
type memAssignmentRepo struct {
	assignments map[string]*models.TruckAssignment
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: make(map[string]*models.TruckAssignment)}
}

func (m *memAssignmentRepo) Create(_ context.Context, a *models.TruckAssignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *memAssignmentRepo) GetByID(_ context.Context, id string) (*models.TruckAssignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAssignmentRepo) Update(_ context.Context, a *models.TruckAssignment) error {
	if _, ok := m.assignments[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *memAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *memAssignmentRepo) ListAll(_ context.Context) ([]*models.TruckAssignment, error) {
	out := make([]*models.TruckAssignment, 0, len(m.assignments))
	for _, a := range m.assignments {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memAssignmentRepo) ListByCity(_ context.Context, city string) ([]*models.TruckAssignment, error) {
	var out []*models.TruckAssignment
	for _, a := range m.assignments {
		if a.OriginCity == city || a.DestinationCity == city {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAssignmentRepo) ListByAssigner(_ context.Context, userID string) ([]*models.TruckAssignment, error) {
	var out []*models.TruckAssignment
	for _, a := range m.assignments {
		if a.AssignedByUserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAssignmentRepo) ListIncomingAtCity(_ context.Context, city string) ([]*models.TruckAssignment, error) {
	var out []*models.TruckAssignment
	for _, a := range m.assignments {
		if a.DestinationCity == city &&
			(a.Status == models.StatusIncoming || a.Status == models.StatusReassigned) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpectedArrivalTime.Before(out[j].ExpectedArrivalTime)
	})
	return out, nil
}

func (m *memAssignmentRepo) HasActiveByTruck(_ context.Context, truckNumber string) (bool, error) {
	for _, a := range m.assignments {
		if a.TruckNumber == truckNumber && a.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAssignmentRepo) PromoteArrived(_ context.Context, city string, now time.Time) (int64, error) {
	var promoted int64
	for _, a := range m.assignments {
		if a.DestinationCity == city && a.Status == models.StatusAssigned &&
			!a.ExpectedArrivalTime.After(now) {
			a.Status = models.StatusIncoming
			promoted++
		}
	}
	return promoted, nil
}

func (m *memAssignmentRepo) PromoteArrivedAll(_ context.Context, now time.Time) (int64, error) {
	var promoted int64
	for _, a := range m.assignments {
		if a.Status == models.StatusAssigned && !a.ExpectedArrivalTime.After(now) {
			a.Status = models.StatusIncoming
			promoted++
		}
	}
	return promoted, nil
}

var (
	adminCaller   = Caller{ID: "admin-1", Role: models.RoleAdmin}
	dhakaOfficer  = Caller{ID: "officer-dhaka", Role: models.RoleTerritoryOfficer, TerritoryCity: "Dhaka"}
	khulnaOfficer = Caller{ID: "officer-khulna", Role: models.RoleTerritoryOfficer, TerritoryCity: "Khulna"}
	sylhetOfficer = Caller{ID: "officer-sylhet", Role: models.RoleTerritoryOfficer, TerritoryCity: "Sylhet"}
)

func validCreateInput() *CreateAssignmentInput {
	return &CreateAssignmentInput{
		TruckNumber:         "TRK-100",
		OriginCity:          "Dhaka",
		DestinationCity:     "Khulna",
		GoodsType:           "Garments",
		DepartureTime:       "2025-01-01T08:00Z",
		ExpectedArrivalTime: "2025-01-01T20:00Z",
	}
}

func TestCreate_SetsAssignedStatusAndAssigner(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)

	a, err := svc.Create(context.Background(), dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, models.StatusAssigned, a.Status)
	assert.Equal(t, dhakaOfficer.ID, a.AssignedByUserID)
	assert.Equal(t, "TRK-100", a.TruckNumber)
	assert.True(t, a.ExpectedArrivalTime.After(a.DepartureTime))
}

func TestCreate_ArrivalMustBeAfterDeparture(t *testing.T) {
	t.Parallel()

	svc := NewAssignmentService(newMemAssignmentRepo())

	tests := []struct {
		name    string
		arrival string
	}{
		{"arrival before departure", "2025-01-01T07:00Z"},
		{"arrival equals departure", "2025-01-01T08:00Z"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := validCreateInput()
			input.ExpectedArrivalTime = tt.arrival

			_, err := svc.Create(context.Background(), dhakaOfficer, input)
			assert.ErrorIs(t, err, ErrArrivalNotAfterDeparture)
		})
	}
}

func TestCreate_RejectsUnparseableTimestamps(t *testing.T) {
	t.Parallel()

	svc := NewAssignmentService(newMemAssignmentRepo())

	input := validCreateInput()
	input.DepartureTime = "next tuesday"

	_, err := svc.Create(context.Background(), dhakaOfficer, input)
	assert.ErrorIs(t, err, ErrBadTimeFormat)
}

func TestCreate_RejectsTruckWithActiveAssignment(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	// Same truck, different route, first assignment still active
	input := validCreateInput()
	input.DestinationCity = "Sylhet"
	_, err = svc.Create(ctx, dhakaOfficer, input)
	assert.ErrorIs(t, err, ErrTruckInUse)
}

func TestCreate_AllowsTruckReuseAfterCompletion(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	_, err = svc.Complete(ctx, adminCaller, first.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, dhakaOfficer, validCreateInput())
	assert.NoError(t, err)
}

func TestList_ScopedByRole(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	// Dhaka officer dispatches two trucks, Khulna officer one
	for _, in := range []*CreateAssignmentInput{
		{TruckNumber: "TRK-1", OriginCity: "Dhaka", DestinationCity: "Khulna", GoodsType: "Garments",
			DepartureTime: "2025-01-01T08:00Z", ExpectedArrivalTime: "2025-01-01T20:00Z"},
		{TruckNumber: "TRK-2", OriginCity: "Dhaka", DestinationCity: "Sylhet", GoodsType: "Cement",
			DepartureTime: "2025-01-02T08:00Z", ExpectedArrivalTime: "2025-01-02T20:00Z"},
	} {
		_, err := svc.Create(ctx, dhakaOfficer, in)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, khulnaOfficer, &CreateAssignmentInput{
		TruckNumber: "TRK-3", OriginCity: "Khulna", DestinationCity: "Sylhet", GoodsType: "Jute",
		DepartureTime: "2025-01-03T08:00Z", ExpectedArrivalTime: "2025-01-03T20:00Z",
	})
	require.NoError(t, err)

	admin, err := svc.List(ctx, adminCaller, "")
	require.NoError(t, err)
	assert.Len(t, admin, 3)

	own, err := svc.List(ctx, dhakaOfficer, "")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	// City filter matches origin or destination
	sylhetTraffic, err := svc.List(ctx, sylhetOfficer, "Sylhet")
	require.NoError(t, err)
	assert.Len(t, sylhetTraffic, 2)

	_, err = svc.List(ctx, Caller{ID: "x", Role: "DISPATCHER"}, "")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestGetByID_Visibility(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	tests := []struct {
		name    string
		caller  Caller
		wantErr error
	}{
		{"admin sees everything", adminCaller, nil},
		{"creator sees own", dhakaOfficer, nil},
		{"destination officer sees it", khulnaOfficer, nil},
		{"unrelated officer is refused", sylhetOfficer, ErrNotAllowed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.GetByID(ctx, tt.caller, created.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewAssignmentService(newMemAssignmentRepo())

	_, err := svc.GetByID(context.Background(), adminCaller, "missing")
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestListIncoming_PromotesOverdueArrivals(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	// Truck departs Dhaka 08:00, expected in Khulna 20:00
	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	// At 21:00 the arrival is overdue; the board promotes it
	at := time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC)
	incoming, err := svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, created.ID, incoming[0].ID)
	assert.Equal(t, models.StatusIncoming, incoming[0].Status)
}

func TestListIncoming_LeavesFutureArrivalsAssigned(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	// Before the expected arrival nothing is promoted
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	incoming, err := svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at)
	require.NoError(t, err)
	assert.Empty(t, incoming)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, stored.Status)
}

func TestListIncoming_SweepIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	at := time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC)

	first, err := svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at)
	require.NoError(t, err)

	second, err := svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at.Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, second, len(first))
	assert.Equal(t, models.StatusIncoming, second[0].Status)
}

func TestListIncoming_OrderedBySoonestArrival(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	late := &CreateAssignmentInput{
		TruckNumber: "TRK-LATE", OriginCity: "Dhaka", DestinationCity: "Khulna", GoodsType: "Cement",
		DepartureTime: "2025-01-01T08:00Z", ExpectedArrivalTime: "2025-01-01T22:00Z",
	}
	early := &CreateAssignmentInput{
		TruckNumber: "TRK-EARLY", OriginCity: "Dhaka", DestinationCity: "Khulna", GoodsType: "Jute",
		DepartureTime: "2025-01-01T08:00Z", ExpectedArrivalTime: "2025-01-01T18:00Z",
	}

	_, err := svc.Create(ctx, dhakaOfficer, late)
	require.NoError(t, err)
	_, err = svc.Create(ctx, dhakaOfficer, early)
	require.NoError(t, err)

	at := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
	incoming, err := svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, "TRK-EARLY", incoming[0].TruckNumber)
	assert.Equal(t, "TRK-LATE", incoming[1].TruckNumber)
}

func TestListIncoming_OfficersOnly(t *testing.T) {
	t.Parallel()

	svc := NewAssignmentService(newMemAssignmentRepo())

	_, err := svc.ListIncoming(context.Background(), adminCaller, "Khulna", time.Now())
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestReassign_RequiresIncomingStatus(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	// Still ASSIGNED
	_, err = svc.Reassign(ctx, khulnaOfficer, created.ID, khulnaOfficer.ID)
	assert.ErrorIs(t, err, ErrNotIncoming)

	// A rejected reassign must not leave any trace
	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, stored.Status)
	assert.Nil(t, stored.ReassignedByUserID)
}

func TestReassign_OnlyAtDestinationTerritory(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	at := time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC)
	_, err = svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at)
	require.NoError(t, err)

	// Sylhet officer is not at the destination
	_, err = svc.Reassign(ctx, sylhetOfficer, created.ID, sylhetOfficer.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)

	got, err := svc.Reassign(ctx, khulnaOfficer, created.ID, khulnaOfficer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReassigned, got.Status)
	require.NotNil(t, got.ReassignedByUserID)
	assert.Equal(t, khulnaOfficer.ID, *got.ReassignedByUserID)
}

func TestReassign_ReassignedIsNotReassignableAgain(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	at := time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC)
	_, err = svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at)
	require.NoError(t, err)

	_, err = svc.Reassign(ctx, khulnaOfficer, created.ID, khulnaOfficer.ID)
	require.NoError(t, err)

	_, err = svc.Reassign(ctx, khulnaOfficer, created.ID, khulnaOfficer.ID)
	assert.ErrorIs(t, err, ErrNotIncoming)
}

func TestComplete_Permissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		caller  Caller
		wantErr error
	}{
		{"admin may complete", adminCaller, nil},
		{"creating officer may complete", dhakaOfficer, nil},
		{"destination officer may complete", khulnaOfficer, nil},
		{"unrelated officer is refused", sylhetOfficer, ErrNotAllowed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMemAssignmentRepo()
			svc := NewAssignmentService(repo)
			ctx := context.Background()

			created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
			require.NoError(t, err)

			got, err := svc.Complete(ctx, tt.caller, created.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.StatusCompleted, got.Status)
		})
	}
}

func TestComplete_PermissionCheckedBeforeCompletedState(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	_, err = svc.Complete(ctx, adminCaller, created.ID)
	require.NoError(t, err)

	// Unrelated officer on a completed assignment: refused, not "already completed"
	_, err = svc.Complete(ctx, sylhetOfficer, created.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = svc.Complete(ctx, adminCaller, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestComplete_FromAnyActiveStatus(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	at := time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC)
	_, err = svc.ListIncoming(ctx, khulnaOfficer, "Khulna", at)
	require.NoError(t, err)

	_, err = svc.Reassign(ctx, khulnaOfficer, created.ID, khulnaOfficer.ID)
	require.NoError(t, err)

	got, err := svc.Complete(ctx, khulnaOfficer, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestUpdate_PartialFields(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	goods := "Machinery"
	arrival := "2025-01-02T06:00Z"
	got, err := svc.Update(ctx, created.ID, &UpdateAssignmentInput{
		GoodsType:           &goods,
		ExpectedArrivalTime: &arrival,
	})
	require.NoError(t, err)

	assert.Equal(t, "Machinery", got.GoodsType)
	assert.Equal(t, time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC), got.ExpectedArrivalTime.UTC())
	// Untouched fields survive
	assert.Equal(t, created.TruckNumber, got.TruckNumber)
	assert.Equal(t, created.OriginCity, got.OriginCity)
}

func TestUpdate_RejectsBadTimestamp(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	bad := "soon"
	_, err = svc.Update(ctx, created.ID, &UpdateAssignmentInput{DepartureTime: &bad})
	assert.ErrorIs(t, err, ErrBadTimeFormat)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo := newMemAssignmentRepo()
	svc := NewAssignmentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dhakaOfficer, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrAssignmentNotFound)
}

func TestCreate_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	repo := &fakeAssignmentRepo{
		hasActiveByTruckFn: func(context.Context, string) (bool, error) {
			return false, context.DeadlineExceeded
		},
	}
	svc := NewAssignmentService(repo)

	_, err := svc.Create(context.Background(), dhakaOfficer, validCreateInput())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
