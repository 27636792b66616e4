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

func (m *MongoSource) ListSimulationTypes(ctx context.Context) ([]models.SimulationType, error) {
	templates := []models.SimulationType{}
	err := m.run(ctx, func() error {
		cursor, err := Collection(SimulationTypesCollection).Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "nom", Value: 1}}))
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &templates)
	})
	if err != nil {
		return nil, fmt.Errorf("lecture des modèles de simulation: %w", err)
	}
	return templates, nil
}

func (m *MongoSource) CreateSimulationType(ctx context.Context, template *models.SimulationType) error {
	now := time.Now()
	template.ID = primitive.NewObjectID()
	template.CreatedAt = now
	template.UpdatedAt = now

	err := m.run(ctx, func() error {
		_, err := Collection(SimulationTypesCollection).InsertOne(ctx, template)
		return err
	})
	if err != nil {
		return fmt.Errorf("création du modèle de simulation: %w", err)
	}
	utils.LogDbOperation("insert", SimulationTypesCollection, nil, template.Nom)
	return nil
}

func (m *MongoSource) UpdateSimulationType(ctx context.Context, id string, template *models.SimulationType) error {
	objID, err := parseObjectID(id, "modèle de simulation")
	if err != nil {
		return err
	}

	var updated models.SimulationType
	err = m.run(ctx, func() error {
		return Collection(SimulationTypesCollection).FindOneAndUpdate(ctx,
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{
				"nom":         template.Nom,
				"type":        template.Type,
				"description": template.Description,
				"updatedAt":   time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.CreateNotFoundError("modèle de simulation")
	}
	if err != nil {
		return fmt.Errorf("mise à jour du modèle de simulation %s: %w", id, err)
	}
	*template = updated
	return nil
}

func (m *MongoSource) DeleteSimulationType(ctx context.Context, id string) error {
	objID, err := parseObjectID(id, "modèle de simulation")
	if err != nil {
		return err
	}

	var deleted int64
	err = m.run(ctx, func() error {
		res, err := Collection(SimulationTypesCollection).DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return fmt.Errorf("suppression du modèle de simulation %s: %w", id, err)
	}
	if deleted == 0 {
		return utils.CreateNotFoundError("modèle de simulation")
	}
	return nil
}
