package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoSource) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	err := m.run(ctx, func() error {
		cursor, err := Collection(ClientsCollection).Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "nom", Value: 1}, {Key: "prenom", Value: 1}}))
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &clients)
	})
	if err != nil {
		return nil, fmt.Errorf("lecture des clients: %w", err)
	}
	utils.LogDbOperation("find", ClientsCollection, nil, len(clients))
	return clients, nil
}

func (m *MongoSource) GetClient(ctx context.Context, id string) (*models.Client, error) {
	objID, err := parseObjectID(id, "client")
	if err != nil {
		return nil, err
	}

	var client models.Client
	err = m.run(ctx, func() error {
		return Collection(ClientsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&client)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.CreateNotFoundError("client")
	}
	if err != nil {
		return nil, fmt.Errorf("lecture du client %s: %w", id, err)
	}
	return &client, nil
}

func (m *MongoSource) CreateClient(ctx context.Context, client *models.Client) error {
	now := time.Now()
	client.ID = primitive.NewObjectID()
	client.CreatedAt = now
	client.UpdatedAt = now

	err := m.run(ctx, func() error {
		_, err := Collection(ClientsCollection).InsertOne(ctx, client)
		return err
	})
	if err != nil {
		return fmt.Errorf("création du client: %w", err)
	}
	utils.LogDbOperation("insert", ClientsCollection, nil, client.ID.Hex())
	return nil
}

// UpdateClientFields $sets the given fields, which callers must have
// checked against models.ClientUpdatableFields, and returns the new record.
func (m *MongoSource) UpdateClientFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Client, error) {
	objID, err := parseObjectID(id, "client")
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	for name, value := range fields {
		set[name] = value
	}

	var updated models.Client
	err = m.run(ctx, func() error {
		return Collection(ClientsCollection).FindOneAndUpdate(ctx,
			bson.M{"_id": objID},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.CreateNotFoundError("client")
	}
	if err != nil {
		return nil, fmt.Errorf("mise à jour du client %s: %w", id, err)
	}
	utils.LogDbOperation("update", ClientsCollection, bson.M{"_id": id}, fields)
	return &updated, nil
}

// DeleteClient removes the client then every sale referencing it.
func (m *MongoSource) DeleteClient(ctx context.Context, id string) (int64, error) {
	objID, err := parseObjectID(id, "client")
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = m.run(ctx, func() error {
		res, err := Collection(ClientsCollection).DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("suppression du client %s: %w", id, err)
	}
	if deleted == 0 {
		return 0, utils.CreateNotFoundError("client")
	}

	var salesDeleted int64
	err = m.run(ctx, func() error {
		res, err := Collection(SalesCollection).DeleteMany(ctx, bson.M{"clientId": id})
		if err != nil {
			return err
		}
		salesDeleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("suppression des ventes du client %s: %w", id, err)
	}
	utils.LogDbOperation("delete", ClientsCollection, bson.M{"_id": id}, bson.M{"sales": salesDeleted})
	return salesDeleted, nil
}
