package contractor

import (
	"context"
	"testing"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/fixtures"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/validator"
	"github.com/element-cleaning/paystatement-backend-go/internal/repository/local"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) contractor.ContractorService {
	t.Helper()
	repo, err := local.NewContractorRepository(context.Background(), nil, fixtures.DefaultContractors())
	require.NoError(t, err)
	return NewContractorService(repo)
}

func TestContractorService_List(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	require.NoError(t, svc.Deactivate(ctx, "contractor-002"))

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 5)
	for _, c := range active {
		assert.True(t, c.IsActive)
	}

	all, err = svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestContractorService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	c, err := svc.GetByID(ctx, "contractor-006")
	require.NoError(t, err)
	assert.Equal(t, "Luis Lopez", c.Name)
	assert.Equal(t, "2024-03-10", c.DateAdded)

	_, err = svc.GetByID(ctx, "contractor-999")
	assert.ErrorIs(t, err, contractor.ErrContractorNotFound)
}

func TestContractorService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rate := decimal.NewFromInt(28)
	created, err := svc.Create(ctx, contractor.CreateContractorRequest{
		Name:        "Dora Flores",
		Address:     contractor.Address{Street: "1 Pike St", City: "Seattle", State: "WA", ZipCode: "98101"},
		PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodCheck},
		Buildings: []contractor.BuildingAssignment{
			{BuildingName: "Harbor Lofts", PayType: "hourly", HourlyRate: &rate, IsActive: true},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	require.Len(t, created.Buildings, 1)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dora Flores", got.Name)
}

func TestContractorService_Create_Validation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), contractor.CreateContractorRequest{
		PaymentInfo: contractor.PaymentInfo{Method: "Bitcoin", AccountLastFour: "12"},
		Buildings:   []contractor.BuildingAssignment{{PayType: "daily"}},
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "payment_info.method")
	assert.Contains(t, fields, "payment_info.account_last_four")
	assert.Contains(t, fields, "buildings[0].building_name")
	assert.Contains(t, fields, "buildings[0].pay_type")
}

func TestContractorService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	name := "Luis A. Lopez"
	updated, err := svc.Update(ctx, contractor.UpdateContractorRequest{ID: "contractor-006", Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Luis A. Lopez", updated.Name)
	assert.Equal(t, "Renton", updated.Address.City)

	_, err = svc.Update(ctx, contractor.UpdateContractorRequest{ID: "missing", Name: &name})
	assert.ErrorIs(t, err, contractor.ErrContractorNotFound)
}

func TestContractorService_Deactivate_NotFound(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.Deactivate(context.Background(), "missing"), contractor.ErrContractorNotFound)
}
