package repository

import (
	"context"
	"fmt"

	"github.com/rpconseil/dossiers_end/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSource is the MongoDB-backed store of clients, sales and products.
type MongoSource struct {
	retries int
}

func NewMongoSource() *MongoSource {
	return &MongoSource{retries: 3}
}

func (m *MongoSource) run(ctx context.Context, operation func() error) error {
	return ExecuteDbOperation(ctx, operation, m.retries)
}

// parseObjectID turns a hex id from a URL into an ObjectID.
func parseObjectID(id, resource string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.CreateBadRequestError(fmt.Sprintf("identifiant de %s invalide", resource))
	}
	return objID, nil
}
