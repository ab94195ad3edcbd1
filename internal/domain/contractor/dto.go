package contractor

import (
	"fmt"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/validator"
)

type CreateContractorRequest struct {
	Name          string               `json:"name"`
	Address       Address              `json:"address"`
	PaymentInfo   PaymentInfo          `json:"payment_info"`
	Buildings     []BuildingAssignment `json:"buildings"`
	IsActive      *bool                `json:"is_active,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	DriveFolderID *string              `json:"drive_folder_id,omitempty"`
}

func (r *CreateContractorRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	errs = append(errs, validatePaymentInfo(r.PaymentInfo)...)
	errs = append(errs, validateBuildings(r.Buildings)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateContractorRequest is a partial update; nil fields are left unchanged.
type UpdateContractorRequest struct {
	ID            string                `json:"-"`
	Name          *string               `json:"name,omitempty"`
	Address       *Address              `json:"address,omitempty"`
	PaymentInfo   *PaymentInfo          `json:"payment_info,omitempty"`
	Buildings     *[]BuildingAssignment `json:"buildings,omitempty"`
	IsActive      *bool                 `json:"is_active,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	DriveFolderID *string               `json:"drive_folder_id,omitempty"`
}

func (r *UpdateContractorRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.PaymentInfo != nil {
		errs = append(errs, validatePaymentInfo(*r.PaymentInfo)...)
	}
	if r.Buildings != nil {
		errs = append(errs, validateBuildings(*r.Buildings)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields of r onto c.
func (r *UpdateContractorRequest) Apply(c *Contractor) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.PaymentInfo != nil {
		c.PaymentInfo = *r.PaymentInfo
	}
	if r.Buildings != nil {
		c.Buildings = *r.Buildings
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	if r.Notes != nil {
		c.Notes = r.Notes
	}
	if r.DriveFolderID != nil {
		c.DriveFolderID = r.DriveFolderID
	}
}

func validatePaymentInfo(p PaymentInfo) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(string(p.Method), PaymentMethods) {
		errs = append(errs, validator.ValidationError{Field: "payment_info.method", Message: ErrInvalidPaymentMethod.Error()})
	}
	if p.AccountLastFour != "" && !validator.IsValidLastFour(p.AccountLastFour) {
		errs = append(errs, validator.ValidationError{Field: "payment_info.account_last_four", Message: "must be exactly 4 digits"})
	}
	return errs
}

func validateBuildings(buildings []BuildingAssignment) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, b := range buildings {
		field := fmt.Sprintf("buildings[%d]", i)
		if validator.IsEmpty(b.BuildingName) {
			errs = append(errs, validator.ValidationError{Field: field + ".building_name", Message: "is required"})
		}
		if b.PayType != "" && b.PayType != statement.PayTypePerVisit && b.PayType != statement.PayTypeHourly {
			errs = append(errs, validator.ValidationError{Field: field + ".pay_type", Message: "must be 'perVisit' or 'hourly'"})
		}
		if b.PayPerVisit.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field + ".pay_per_visit", Message: "must be non-negative"})
		}
		if b.HourlyRate != nil && b.HourlyRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field + ".hourly_rate", Message: "must be non-negative"})
		}
	}
	return errs
}

type ContractorResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Address       Address              `json:"address"`
	PaymentInfo   PaymentInfo          `json:"payment_info"`
	Buildings     []BuildingAssignment `json:"buildings"`
	IsActive      bool                 `json:"is_active"`
	DateAdded     string               `json:"date_added"`
	Notes         *string              `json:"notes,omitempty"`
	DriveFolderID *string              `json:"drive_folder_id,omitempty"`
}

func NewContractorResponse(c Contractor) ContractorResponse {
	buildings := c.Buildings
	if buildings == nil {
		buildings = []BuildingAssignment{}
	}
	return ContractorResponse{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		PaymentInfo:   c.PaymentInfo,
		Buildings:     buildings,
		IsActive:      c.IsActive,
		DateAdded:     c.DateAdded.Format("2006-01-02"),
		Notes:         c.Notes,
		DriveFolderID: c.DriveFolderID,
	}
}
