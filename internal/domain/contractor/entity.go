package contractor

import (
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodDirectDeposit PaymentMethod = "Direct Deposit"
	PaymentMethodCheck         PaymentMethod = "Check"
	PaymentMethodCash          PaymentMethod = "Cash"
	PaymentMethodWireTransfer  PaymentMethod = "Wire Transfer"
)

var PaymentMethods = []string{
	string(PaymentMethodDirectDeposit),
	string(PaymentMethodCheck),
	string(PaymentMethodCash),
	string(PaymentMethodWireTransfer),
}

type Address struct {
	Street  string `json:"street,omitempty"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type PaymentInfo struct {
	Method          PaymentMethod `json:"method"`
	AccountLastFour string        `json:"account_last_four"`
}

// BuildingAssignment is a building a contractor services and how it is paid.
type BuildingAssignment struct {
	BuildingName string            `json:"building_name"`
	PayType      statement.PayType `json:"pay_type,omitempty"`
	PayPerVisit  decimal.Decimal   `json:"pay_per_visit"`
	HourlyRate   *decimal.Decimal  `json:"hourly_rate,omitempty"`
	IsActive     bool              `json:"is_active"`
}

// EffectivePayType defaults an unset pay type to per-visit.
func (b BuildingAssignment) EffectivePayType() statement.PayType {
	if b.PayType == statement.PayTypeHourly {
		return statement.PayTypeHourly
	}
	return statement.PayTypePerVisit
}

// Rate is the hourly rate for hourly buildings (zero when unset) and the per-visit
// rate otherwise.
func (b BuildingAssignment) Rate() decimal.Decimal {
	if b.EffectivePayType() == statement.PayTypeHourly {
		if b.HourlyRate == nil {
			return decimal.Zero
		}
		return *b.HourlyRate
	}
	return b.PayPerVisit
}

type Contractor struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Address       Address              `json:"address"`
	PaymentInfo   PaymentInfo          `json:"payment_info"`
	Buildings     []BuildingAssignment `json:"buildings"`
	IsActive      bool                 `json:"is_active"`
	DateAdded     time.Time            `json:"date_added"`
	Notes         *string              `json:"notes,omitempty"`
	DriveFolderID *string              `json:"drive_folder_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ActiveBuildings returns the assignments that seed a statement, in stored order.
func (c Contractor) ActiveBuildings() []BuildingAssignment {
	var active []BuildingAssignment
	for _, b := range c.Buildings {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return active
}
