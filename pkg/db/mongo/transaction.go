package mongo

import (
	"context"
	"fmt"

	apperrors "hms/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionFunc is one unit of work. Every read and write inside it must use
// sessCtx so it joins the transaction.
type TransactionFunc func(sessCtx mongo.SessionContext) error

// TransactionManager runs writes that span several collections all-or-nothing.
// The superadmin room-type purge uses it to delete the room type, its inventory
// calendar and its rate plans together, so a failure never leaves orphaned
// nights or plans behind. Single-document paths such as allotment decrements
// and promo redemption rely on conditional updates instead and do not need it.
// Transactions require a replica set.
type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) TransactionManager {
	return &mongoTransactionManager{
		client: client,
	}
}

// ExecuteTransaction commits when fn returns nil and aborts otherwise. The
// driver retries fn on transient transaction errors.
func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})
	return transactionError(err)
}

// transactionError passes application errors through untouched so handlers
// still map them to their status codes; anything else is wrapped.
func transactionError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return fmt.Errorf("transaction failed: %w", err)
}
