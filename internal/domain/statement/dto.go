package statement

import (
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/validator"
)

type SeedRequest struct {
	ContractorID string `json:"contractor_id" validate:"required"`
	PayPeriodID  string `json:"pay_period_id,omitempty"`
}

func (r *SeedRequest) Validate() error {
	return validator.Struct(r)
}

// AssembleRequest has the shape of a PayStatementRecord minus the derived fields,
// so a previously returned record can be posted back as-is. A nil Company uses the
// configured company letterhead.
type AssembleRequest struct {
	Company        *CompanyInfo         `json:"company,omitempty"`
	PaidTo         Payee                `json:"paid_to"`
	Payment        Payment              `json:"payment"`
	PaymentDetails []PaymentDetailEntry `json:"payment_details"`
	Notes          string               `json:"notes,omitempty"`
}

type SaveStatementRequest struct {
	Name      string          `json:"name"`
	Statement AssembleRequest `json:"statement"`
}

func (r *SaveStatementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Statement.PaidTo.Name) {
		errs = append(errs, validator.ValidationError{Field: "statement.paid_to.name", Message: ErrPayeeNameRequired.Error()})
	}
	if validator.IsEmpty(r.Statement.Payment.PayPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "statement.payment.pay_period_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaveStatementResponse struct {
	Key       string             `json:"key"`
	Statement PayStatementRecord `json:"statement"`
}

// ExportRequest renders either a saved statement (Key) or an unsaved one (Statement).
type ExportRequest struct {
	Key       string           `json:"key,omitempty"`
	Statement *AssembleRequest `json:"statement,omitempty"`
	Format    Format           `json:"format,omitempty" validate:"omitempty,oneof=pdf csv"`
	Preset    Preset           `json:"preset,omitempty" validate:"omitempty,oneof=current bpv1"`
}

func (r *ExportRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Key == "" && r.Statement == nil {
		return ErrNothingToExport
	}
	return nil
}

type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

type UploadStatementRequest struct {
	Key         string           `json:"-"`
	Statement   *AssembleRequest `json:"statement,omitempty"`
	Destination string           `json:"destination,omitempty"`
	Filename    string           `json:"filename,omitempty"`
	AllowCreate *bool            `json:"allow_create,omitempty"`
	Preset      Preset           `json:"preset,omitempty" validate:"omitempty,oneof=current bpv1"`
	AccessToken string           `json:"-"`
}

func (r *UploadStatementRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Key == "" && r.Statement == nil {
		return ErrNothingToExport
	}
	return nil
}

type BatchUploadRequest struct {
	Keys        []string `json:"keys" validate:"min=1,dive,required"`
	AllowCreate *bool    `json:"allow_create,omitempty"`
	Preset      Preset   `json:"preset,omitempty" validate:"omitempty,oneof=current bpv1"`
	AccessToken string   `json:"-"`
}

func (r *BatchUploadRequest) Validate() error {
	return validator.Struct(r)
}

// BatchUploadResult reports one key of a batch; exactly one of Result and Error is set.
type BatchUploadResult struct {
	Key    string         `json:"key"`
	Result *upload.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// AllowCreateOrDefault treats an absent allow_create as true.
func AllowCreateOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
