package importer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownConnector = errors.New("no connector is registered for this key")

// Transaction is one record from a bank feed, in the shape connectors hand
// to the ledger.
type Transaction struct {
	AccountID     string
	TransactionID string
	Date          time.Time
	Value         int64 // cents, negative for debits
	Description   string
}

// Connector fetches raw transactions from one institution. Implementations
// own everything bank-specific: credentials, session handling, pagination.
type Connector interface {
	FetchNewTransactions(ctx context.Context, since time.Time) ([]Transaction, error)
}

var connectors = map[string]Connector{}

// Register makes a connector available under the given key. Banks refer to
// connectors by this key, see models.Bank.
func Register(key string, conn Connector) {
	connectors[key] = conn
}

// ConnectorFor returns the connector registered for the given key.
func ConnectorFor(key string) (Connector, error) {
	conn, ok := connectors[key]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownConnector, key)
	}

	return conn, nil
}
