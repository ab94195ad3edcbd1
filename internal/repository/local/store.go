package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/storage"
)

// readJSON decodes name from files into v. It reports false when the file does not
// exist yet. A nil files means the repository is memory-only.
func readJSON(ctx context.Context, files storage.FileStorage, name string, v any) (bool, error) {
	if files == nil {
		return false, nil
	}

	rc, err := files.Download(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}

func writeJSON(ctx context.Context, files storage.FileStorage, name string, v any) error {
	if files == nil {
		return nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if _, err := files.Upload(ctx, bytes.NewReader(data), name, "application/json"); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
