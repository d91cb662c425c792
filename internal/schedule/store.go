package schedule

// Record store keys. These names are a stable on-disk contract shared with
// earlier releases of the app; do not rename them.
const (
	KeyEvents         = "events"         // encoded event records
	KeyCategories     = "categories"     // encoded category records
	KeyAddedPKs       = "addedPKs"       // selected identities, one decimal pk per element
	KeyVersion        = "version"        // single element, decimal feed version
	KeyLaunchedBefore = "launchedBefore" // single element "true" once first load completed
)

// RecordStore is the durable key/value store behind the cache: string
// arrays keyed by name. Get returns a nil slice for an absent key. Set must
// replace the key's whole value atomically.
type RecordStore interface {
	Get(key string) ([]string, error)
	Set(key string, values []string) error
	Close() error
}
