package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type contractorRepository struct {
	db *database.DB
}

func NewContractorRepository(db *database.DB) contractor.ContractorRepository {
	return &contractorRepository{db: db}
}

const contractorColumns = `id, name, address, payment_info, buildings, is_active, date_added, notes, drive_folder_id, created_at, updated_at`

func scanContractor(row pgx.Row) (contractor.Contractor, error) {
	var c contractor.Contractor
	var addressBytes, paymentBytes, buildingsBytes []byte

	err := row.Scan(
		&c.ID, &c.Name, &addressBytes, &paymentBytes, &buildingsBytes,
		&c.IsActive, &c.DateAdded, &c.Notes, &c.DriveFolderID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return contractor.Contractor{}, err
	}

	if err := json.Unmarshal(addressBytes, &c.Address); err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to decode address of contractor %s: %w", c.ID, err)
	}
	if err := json.Unmarshal(paymentBytes, &c.PaymentInfo); err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to decode payment info of contractor %s: %w", c.ID, err)
	}
	if err := json.Unmarshal(buildingsBytes, &c.Buildings); err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to decode buildings of contractor %s: %w", c.ID, err)
	}
	return c, nil
}

func (r *contractorRepository) list(ctx context.Context, activeOnly bool) ([]contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractorColumns + ` FROM app_contractors`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}
	defer rows.Close()

	contractors := []contractor.Contractor{}
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contractor: %w", err)
		}
		contractors = append(contractors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contractors: %w", err)
	}
	return contractors, nil
}

func (r *contractorRepository) ListActive(ctx context.Context) ([]contractor.Contractor, error) {
	return r.list(ctx, true)
}

func (r *contractorRepository) ListAll(ctx context.Context) ([]contractor.Contractor, error) {
	return r.list(ctx, false)
}

func (r *contractorRepository) GetByID(ctx context.Context, id string) (contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractorColumns + ` FROM app_contractors WHERE id = $1`
	c, err := scanContractor(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contractor.Contractor{}, contractor.ErrContractorNotFound
		}
		return contractor.Contractor{}, fmt.Errorf("failed to get contractor by id: %w", err)
	}
	return c, nil
}

func (r *contractorRepository) GetByName(ctx context.Context, name string) (contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(name))
	query := `SELECT ` + contractorColumns + ` FROM app_contractors WHERE name ILIKE $1 ORDER BY name LIMIT 1`
	c, err := scanContractor(q.QueryRow(ctx, query, "%"+escaped+"%"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contractor.Contractor{}, contractor.ErrContractorNotFound
		}
		return contractor.Contractor{}, fmt.Errorf("failed to get contractor by name: %w", err)
	}
	return c, nil
}

func (r *contractorRepository) Create(ctx context.Context, c contractor.Contractor) (contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return contractor.Contractor{}, fmt.Errorf("failed to generate contractor id: %w", err)
		}
		c.ID = id.String()
	}
	if c.DateAdded.IsZero() {
		now := time.Now().UTC()
		c.DateAdded = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if c.Buildings == nil {
		c.Buildings = []contractor.BuildingAssignment{}
	}

	addressJSON, err := json.Marshal(c.Address)
	if err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to encode address: %w", err)
	}
	paymentJSON, err := json.Marshal(c.PaymentInfo)
	if err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to encode payment info: %w", err)
	}
	buildingsJSON, err := json.Marshal(c.Buildings)
	if err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to encode buildings: %w", err)
	}

	query := `
		INSERT INTO app_contractors (id, name, address, payment_info, buildings, is_active, date_added, notes, drive_folder_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contractorColumns

	created, err := scanContractor(q.QueryRow(ctx, query,
		c.ID, c.Name, addressJSON, paymentJSON, buildingsJSON, c.IsActive, c.DateAdded, c.Notes, c.DriveFolderID,
	))
	if err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to create contractor: %w", err)
	}
	return created, nil
}

func (r *contractorRepository) Update(ctx context.Context, req contractor.UpdateContractorRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Address != nil {
		addressJSON, err := json.Marshal(req.Address)
		if err != nil {
			return fmt.Errorf("failed to encode address: %w", err)
		}
		updates = append(updates, fmt.Sprintf("address = $%d", argIdx))
		args = append(args, addressJSON)
		argIdx++
	}
	if req.PaymentInfo != nil {
		paymentJSON, err := json.Marshal(req.PaymentInfo)
		if err != nil {
			return fmt.Errorf("failed to encode payment info: %w", err)
		}
		updates = append(updates, fmt.Sprintf("payment_info = $%d", argIdx))
		args = append(args, paymentJSON)
		argIdx++
	}
	if req.Buildings != nil {
		buildings := *req.Buildings
		if buildings == nil {
			buildings = []contractor.BuildingAssignment{}
		}
		buildingsJSON, err := json.Marshal(buildings)
		if err != nil {
			return fmt.Errorf("failed to encode buildings: %w", err)
		}
		updates = append(updates, fmt.Sprintf("buildings = $%d", argIdx))
		args = append(args, buildingsJSON)
		argIdx++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}
	if req.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *req.Notes)
		argIdx++
	}
	if req.DriveFolderID != nil {
		updates = append(updates, fmt.Sprintf("drive_folder_id = $%d", argIdx))
		args = append(args, *req.DriveFolderID)
		argIdx++
	}

	updates = append(updates, "updated_at = NOW()")
	query := fmt.Sprintf(`UPDATE app_contractors SET %s WHERE id = $%d`, strings.Join(updates, ", "), argIdx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update contractor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contractor.ErrContractorNotFound
	}
	return nil
}
