package clients

import "github.com/google/uuid"

// Store manages data regarding clients.
type Store interface {
	// Get a client by its id and secret, with the owning user populated.
	ClientBySecret(id uuid.UUID, secret string) (Client, error)

	// Insert a new client.
	InsertClient(c *Client) error
}
