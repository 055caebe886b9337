package ratelimit

// Fan-out bounds for concurrent hydration and asset branches. Each branch
// writes to its own pre-allocated slot, so these only cap in-flight requests.
const (
	PlaylistHydrationConcurrency = 4
	AssetDownloadConcurrency     = 2
)
