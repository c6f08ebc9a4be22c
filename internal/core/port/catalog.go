package port

import (
	"context"

	"github.com/lodestone-labs/relnav/internal/core/domain"
)

// TableCatalog introspects the connected schema. Snapshot returns an
// immutable list of table descriptors; callers replace their previous
// snapshot atomically rather than patching it.
type TableCatalog interface {
	Snapshot(ctx context.Context) ([]domain.TableDescriptor, error)
}
