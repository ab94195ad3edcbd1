package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/database"
)

// SeedContractors inserts defaults when app_contractors is empty. It returns the
// number of rows inserted.
func SeedContractors(ctx context.Context, db *database.DB, defaults []contractor.Contractor) (int, error) {
	repo := NewContractorRepository(db)
	inserted := 0

	err := RunInTx(ctx, db, func(ctx context.Context) error {
		existing, err := repo.ListAll(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for _, c := range defaults {
			if _, err := repo.Create(ctx, c); err != nil {
				return fmt.Errorf("failed to seed contractor %s: %w", c.ID, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		slog.Info("Seeded default contractors", "count", inserted)
	}
	return inserted, nil
}
