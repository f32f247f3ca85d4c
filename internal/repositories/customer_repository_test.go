package repositories

import (
	"context"
	"database/sql"
	"testing"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"
	"opticrm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerListPaginatesSeededRows(t *testing.T) {
	conn := testutil.NewStore(t)
	testutil.SeedCustomers(t, conn, 1, 45)
	testutil.SeedCustomers(t, conn, 2, 5)
	repo := CustomerRepository{DB: conn}
	ctx := context.Background()

	first, err := repo.List(ctx, 1, models.CustomerFilter{}, models.ListParams{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 45, first.Total)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)
	assert.Len(t, first.Items, 20)

	last, err := repo.List(ctx, 1, models.CustomerFilter{}, models.ListParams{Page: 3, PerPage: 20})
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
	assert.False(t, last.HasNext)

	beyond, err := repo.List(ctx, 1, models.CustomerFilter{}, models.ListParams{Page: 7, PerPage: 20})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.False(t, beyond.HasNext)
	assert.Equal(t, 45, beyond.Total)
}

func TestCustomerListSortAndSearch(t *testing.T) {
	conn := testutil.NewStore(t)
	ids := testutil.SeedCustomers(t, conn, 1, 12)
	repo := CustomerRepository{DB: conn}
	ctx := context.Background()

	asc, err := repo.List(ctx, 1, models.CustomerFilter{}, models.ListParams{Page: 1, PerPage: 3, SortBy: "last_name", SortOrder: query.Asc})
	require.NoError(t, err)
	assert.Equal(t, "Nachname01", asc.Items[0].LastName)

	// unknown sort field falls back to created_at desc; ties break on id desc
	fallback, err := repo.List(ctx, 1, models.CustomerFilter{}, models.ListParams{Page: 1, PerPage: 3, SortBy: "medical_notes"})
	require.NoError(t, err)
	assert.Equal(t, ids[len(ids)-1], fallback.Items[0].ID)

	found, err := repo.List(ctx, 1, models.CustomerFilter{Search: "KUNDE1"}, models.ListParams{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, found.Total) // Kunde10, Kunde11, Kunde12

	none, err := repo.List(ctx, 1, models.CustomerFilter{Search: "%"}, models.ListParams{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)

	filtered, err := repo.List(ctx, 1, models.CustomerFilter{Status: models.CustomerArchived}, models.ListParams{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, filtered.Total)
}

func TestCustomerCreateUpdateGet(t *testing.T) {
	conn := testutil.NewStore(t)
	repo := CustomerRepository{DB: conn}
	ctx := context.Background()

	var ch intdb.Changes
	ch.Set("first_name", "Anna")
	ch.Set("last_name", "Schmidt")
	ch.Set("email", "anna@example.de")
	ch.Set("date_of_birth", "1980-05-17")
	ch.Set("next_appointment", "2025-02-03 09:30:00")
	ch.Set("prescription_sphere_right", -1.25)
	ch.Set("prescription_axis_left", 90)
	ch.Set("insurance_type", "gesetzlich")

	created, err := repo.Create(ctx, 1, ch)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.OrganizationID)
	assert.Equal(t, models.CustomerProspect, created.Status)
	require.NotNil(t, created.AddressCountry)
	assert.Equal(t, "Deutschland", *created.AddressCountry)
	require.NotNil(t, created.DateOfBirth)
	assert.Equal(t, "1980-05-17", created.DateOfBirth.String())
	require.NotNil(t, created.NextAppointment)
	assert.Equal(t, 9, created.NextAppointment.Hour())
	require.NotNil(t, created.PrescriptionSphereRight)
	assert.Equal(t, -1.25, *created.PrescriptionSphereRight)
	require.NotNil(t, created.PrescriptionAxisLeft)
	assert.Equal(t, 90, *created.PrescriptionAxisLeft)
	require.NotNil(t, created.InsuranceType)
	assert.Equal(t, models.InsurancePublic, *created.InsuranceType)
	assert.Nil(t, created.Phone)

	var upd intdb.Changes
	upd.Set("status", "archiviert")
	upd.Set("email", nil)
	updated, err := repo.Update(ctx, 1, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, models.CustomerArchived, updated.Status)
	assert.Nil(t, updated.Email)
	assert.Equal(t, "Anna", updated.FirstName)

	exists, err := repo.Exists(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 2, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Get(ctx, 2, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCustomerDuplicateEmailIsClassified(t *testing.T) {
	conn := testutil.NewStore(t)
	repo := CustomerRepository{DB: conn}
	ctx := context.Background()

	newCustomer := func() intdb.Changes {
		var ch intdb.Changes
		ch.Set("first_name", "Jonas")
		ch.Set("last_name", "Weber")
		ch.Set("email", "jonas@example.de")
		return ch
	}
	_, err := repo.Create(ctx, 1, newCustomer())
	require.NoError(t, err)

	_, err = repo.Create(ctx, 1, newCustomer())
	require.Error(t, err)
	assert.True(t, intdb.IsDuplicate(err))

	_, err = repo.Create(ctx, 2, newCustomer())
	assert.NoError(t, err)
}
