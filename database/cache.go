package database

// Cache stores serialized responses for immutable records
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
