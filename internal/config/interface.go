package config

import "context"

// Loader translates an on-disk build manifest into the unified Model.
// Implementations must apply defaults for anything the manifest omits and
// must not mutate the filesystem.
type Loader interface {
	// Load reads the manifest for the given source tree root. A missing
	// manifest file is not an error: the loader returns the default model.
	Load(ctx context.Context, root string) (*Model, error)
}
