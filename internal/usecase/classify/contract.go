package classify

import "context"

// Oracle produces raw store-type tags for a part. May be unavailable (nil).
type Oracle interface {
	ClassifyStoreTypes(ctx context.Context, partName, partCategory string) ([]string, error)
}
