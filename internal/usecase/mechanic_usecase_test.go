package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garagemap/internal/domain/entity"
	"garagemap/pkg/errors"
)

func newMechanicEnv(t *testing.T) (*MechanicUseCase, *fakeMechanicRepo, *fakeUserRepo) {
	t.Helper()

	users := newFakeUserRepo()
	mechanics := newFakeMechanicRepo()
	return NewMechanicUseCase(mechanics, users), mechanics, users
}

func seedWorkshop(t *testing.T, repo *fakeMechanicRepo, name string, lat, lng float64, services ...string) *entity.Mechanic {
	t.Helper()

	mechanic := &entity.Mechanic{
		UserID:       "owner-" + name,
		Name:         name,
		WorkshopName: name + " Motor",
		City:         "Jakarta",
		Latitude:     lat,
		Longitude:    lng,
		Services:     services,
		IsOpen:       true,
	}
	require.NoError(t, repo.Create(context.Background(), mechanic))
	return mechanic
}

func TestListMechanicsNearestFirst(t *testing.T) {
	uc, mechanics, _ := newMechanicEnv(t)
	ctx := context.Background()

	far := seedWorkshop(t, mechanics, "Far", -6.9, 107.6, "car")
	near := seedWorkshop(t, mechanics, "Near", -6.21, 106.81, "car")
	mid := seedWorkshop(t, mechanics, "Mid", -6.4, 106.9, "car")

	results, total, err := uc.ListMechanics(ctx, ListMechanicsInput{
		HasLocation: true,
		Latitude:    -6.2,
		Longitude:   106.8,
	}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, results, 3)

	assert.Equal(t, near.ID, results[0].Mechanic.ID)
	assert.Equal(t, mid.ID, results[1].Mechanic.ID)
	assert.Equal(t, far.ID, results[2].Mechanic.ID)

	require.NotNil(t, results[0].DistanceKm)
	assert.Less(t, *results[0].DistanceKm, *results[1].DistanceKm)
	assert.Less(t, *results[1].DistanceKm, *results[2].DistanceKm)
}

func TestListMechanicsServiceFilter(t *testing.T) {
	uc, mechanics, _ := newMechanicEnv(t)
	ctx := context.Background()

	seedWorkshop(t, mechanics, "Cars", -6.2, 106.8, "car")
	tow := seedWorkshop(t, mechanics, "Tow", -6.2, 106.8, "car", "towing")

	results, total, err := uc.ListMechanics(ctx, ListMechanicsInput{Service: "towing"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, tow.ID, results[0].Mechanic.ID)
	assert.Nil(t, results[0].DistanceKm, "no location given, no distance")
}

func TestListMechanicsSearch(t *testing.T) {
	uc, mechanics, _ := newMechanicEnv(t)
	ctx := context.Background()

	seedWorkshop(t, mechanics, "Budi", -6.2, 106.8, "car")
	seedWorkshop(t, mechanics, "Cahyo", -6.2, 106.8, "car")

	results, _, err := uc.ListMechanics(ctx, ListMechanicsInput{Search: "budi"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Budi", results[0].Mechanic.Name)
}

func TestCreateProfilePromotesRole(t *testing.T) {
	uc, _, users := newMechanicEnv(t)
	ctx := context.Background()

	owner := &entity.User{ID: "u-1", Username: "Alice", Role: entity.RoleCustomer}
	require.NoError(t, users.Create(ctx, owner))

	mechanic, err := uc.CreateProfile(ctx, owner.ID, MechanicProfileInput{
		Name:         "Alice",
		WorkshopName: "Alice Garage",
		Services:     []string{"car"},
		City:         "Jakarta",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, mechanic.UserID)
	assert.Equal(t, entity.AvailabilityAvailable, mechanic.Availability)

	updated, err := users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMechanic, updated.Role)
}

func TestCreateProfileOnePerAccount(t *testing.T) {
	uc, _, users := newMechanicEnv(t)
	ctx := context.Background()

	owner := &entity.User{ID: "u-1", Username: "Alice", Role: entity.RoleCustomer}
	require.NoError(t, users.Create(ctx, owner))

	input := MechanicProfileInput{Name: "Alice", WorkshopName: "Alice Garage", Services: []string{"car"}}
	_, err := uc.CreateProfile(ctx, owner.ID, input)
	require.NoError(t, err)

	_, err = uc.CreateProfile(ctx, owner.ID, input)
	assert.True(t, errors.Is(err, "CONFLICT"), "got %v", err)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	uc, mechanics, users := newMechanicEnv(t)
	ctx := context.Background()

	owner := &entity.User{ID: "u-1", Username: "Alice", Role: entity.RoleMechanic}
	require.NoError(t, users.Create(ctx, owner))
	mechanic := seedWorkshop(t, mechanics, "Alice", -6.2, 106.8, "car")

	_, err := uc.UpdateProfile(ctx, "someone-else", mechanic.ID, MechanicProfileInput{
		Name:     "Hijacked",
		Services: []string{"car"},
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"), "got %v", err)
}
