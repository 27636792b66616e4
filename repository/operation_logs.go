package repository

import (
	"context"
	"fmt"

	"github.com/rpconseil/dossiers_end/models"
)

// SaveOperationLog stores one audit record of a write call.
func (m *MongoSource) SaveOperationLog(ctx context.Context, log *models.OperationLog) error {
	err := m.run(ctx, func() error {
		_, err := Collection(OperationLogsCollection).InsertOne(ctx, log)
		return err
	})
	if err != nil {
		return fmt.Errorf("enregistrement du journal d'opération: %w", err)
	}
	return nil
}
