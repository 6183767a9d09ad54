package publisher

// Publisher is an optional side sink for scraped clinic snapshots
type Publisher interface {
	// Publish publishes one clinic snapshot keyed by clinic identifier
	Publish(key string, message []byte) error

	// Close closes the publisher connection
	Close() error
}
