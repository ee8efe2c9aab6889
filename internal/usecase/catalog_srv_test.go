package usecase

import (
	"context"
	"testing"

	"table-reservation/internal/data/entity"
	"table-reservation/internal/dto/request"
	"table-reservation/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogTables(t *testing.T) {
	ctx := context.Background()

	m := newMemStore()
	seedCatalog(m)
	svc := NewCatalogService(newMemRepos(m), zap.NewNop())

	t.Run("list all with floor", func(t *testing.T) {
		tables, err := svc.ListTables(ctx)
		require.NoError(t, err)
		require.Len(t, tables, 3)
		assert.Equal(t, "G-05", tables[0].TableCode)
		require.NotNil(t, tables[0].Floor)
		assert.Equal(t, "Ground", tables[0].Floor.Name)
	})

	t.Run("get one", func(t *testing.T) {
		table, err := svc.GetTable(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, "G-06", table.TableCode)
		assert.Equal(t, 4, table.Capacity)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := svc.GetTable(ctx, 99)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("list by floor", func(t *testing.T) {
		tables, err := svc.ListTablesByFloor(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, tables, 3)
	})

	t.Run("list by missing floor", func(t *testing.T) {
		_, err := svc.ListTablesByFloor(ctx, 9)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestCatalogTimeslots(t *testing.T) {
	ctx := context.Background()

	m := newMemStore()
	seedCatalog(m)
	svc := NewCatalogService(newMemRepos(m), zap.NewNop())

	t.Run("list all", func(t *testing.T) {
		timeslots, err := svc.ListTimeslots(ctx)
		require.NoError(t, err)
		require.Len(t, timeslots, 2)
		assert.Equal(t, "A1", timeslots[0].SlotID)
		assert.Equal(t, "10:00", timeslots[0].StartAt)
		assert.Equal(t, "12:00", timeslots[0].EndAt)
	})

	t.Run("get one", func(t *testing.T) {
		ts, err := svc.GetTimeslot(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "A2", ts.SlotID)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := svc.GetTimeslot(ctx, 42)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestListTablesForTimeslot(t *testing.T) {
	ctx := context.Background()

	m := newMemStore()
	seedCatalog(m)
	catalog := NewCatalogService(newMemRepos(m), zap.NewNop())
	reservations := newTestService(m)

	t.Run("inactive tables excluded", func(t *testing.T) {
		tables, err := catalog.ListTablesForTimeslot(ctx, 1)
		require.NoError(t, err)
		require.Len(t, tables, 2, "table 7 is inactive")
		for _, table := range tables {
			assert.Equal(t, entity.TableStatusAvailable, table.Status)
		}
	})

	t.Run("reflects occupancy after a reservation", func(t *testing.T) {
		_, err := reservations.Create(ctx, &request.CreateReservationRequest{
			UserID:     "u-100",
			TimeslotID: 1,
			PartySize:  2,
			TableIDs:   []int{5},
		})
		require.NoError(t, err)

		tables, err := catalog.ListTablesForTimeslot(ctx, 1)
		require.NoError(t, err)
		require.Len(t, tables, 2)
		assert.Equal(t, 5, tables[0].TableID)
		assert.Equal(t, entity.TableStatusReserved, tables[0].Status)
		assert.Equal(t, 6, tables[1].TableID)
		assert.Equal(t, entity.TableStatusAvailable, tables[1].Status)
	})

	t.Run("missing timeslot", func(t *testing.T) {
		_, err := catalog.ListTablesForTimeslot(ctx, 42)
		assert.True(t, apperr.IsNotFound(err))
	})
}
