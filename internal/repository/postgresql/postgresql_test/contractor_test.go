package postgresql_test

import (
	"context"
	"testing"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/fixtures"
	"github.com/element-cleaning/paystatement-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractorRepository_SeedAndList(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	n, err := postgresql.SeedContractors(ctx, setup.DB, fixtures.DefaultContractors())
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	// Seeding again is a no-op.
	n, err = postgresql.SeedContractors(ctx, setup.DB, fixtures.DefaultContractors())
	require.NoError(t, err)
	assert.Zero(t, n)

	repo := postgresql.NewContractorRepository(setup.DB)
	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 6)
	assert.Equal(t, "Asphodel Vallejo Rangel", active[0].Name)

	c, err := repo.GetByID(ctx, "contractor-003")
	require.NoError(t, err)
	require.Len(t, c.Buildings, 2)
	assert.Equal(t, "Medical Center West", c.Buildings[0].BuildingName)
	assert.True(t, c.Buildings[0].PayPerVisit.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, "2024-01-20", c.DateAdded.Format("2006-01-02"))

	byName, err := repo.GetByName(ctx, "garcía")
	require.NoError(t, err)
	assert.Equal(t, "contractor-005", byName.ID)
}

func TestContractorRepository_CreateUpdate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewContractorRepository(setup.DB)

	created, err := repo.Create(ctx, contractor.Contractor{
		Name:        "Dora Flores",
		Address:     contractor.Address{City: "Tacoma", State: "WA", ZipCode: "98402"},
		PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodCash},
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Buildings)

	inactive := false
	notes := "seasonal"
	require.NoError(t, repo.Update(ctx, contractor.UpdateContractorRequest{ID: created.ID, IsActive: &inactive, Notes: &notes}))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "seasonal", *got.Notes)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	err = repo.Update(ctx, contractor.UpdateContractorRequest{ID: "missing", IsActive: &inactive})
	assert.ErrorIs(t, err, contractor.ErrContractorNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, contractor.ErrContractorNotFound)
}
