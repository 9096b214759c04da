package storage

// KV is the durable key-value store the tracker persists its entry log to.
// Values are serialized JSON documents keyed by plain strings.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
