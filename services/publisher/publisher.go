package publisher

// Publisher represents a service for publishing exported deals
type Publisher interface {
	// Publish publishes a message under a retailer key
	Publish(retailer string, message []byte) error

	// Close closes the publisher connection
	Close() error
}
