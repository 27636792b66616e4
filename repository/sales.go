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

// ListSales returns every sale, newest number first.
func (m *MongoSource) ListSales(ctx context.Context) ([]models.Sale, error) {
	sales := []models.Sale{}
	err := m.run(ctx, func() error {
		cursor, err := Collection(SalesCollection).Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "numero", Value: -1}}))
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &sales)
	})
	if err != nil {
		return nil, fmt.Errorf("lecture des ventes: %w", err)
	}
	utils.LogDbOperation("find", SalesCollection, nil, len(sales))
	return sales, nil
}

func (m *MongoSource) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	objID, err := parseObjectID(id, "vente")
	if err != nil {
		return nil, err
	}

	var sale models.Sale
	err = m.run(ctx, func() error {
		return Collection(SalesCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&sale)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.CreateNotFoundError("vente")
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de la vente %s: %w", id, err)
	}
	return &sale, nil
}

// CreateSale inserts sale with the next free sale number. The unique index
// on numero turns a concurrent insert into a duplicate key, which takes the
// following number.
func (m *MongoSource) CreateSale(ctx context.Context, sale *models.Sale) error {
	now := time.Now()
	sale.ID = primitive.NewObjectID()
	sale.CreatedAt = now
	sale.UpdatedAt = now

	err := insertNumbered(ctx, sale, m.nextSaleNumber, func() error {
		return m.run(ctx, func() error {
			_, err := Collection(SalesCollection).InsertOne(ctx, sale)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("création de la vente: %w", err)
	}
	utils.LogDbOperation("insert", SalesCollection, nil, bson.M{"_id": sale.ID.Hex(), "numero": sale.Numero})
	return nil
}

const saleNumberAttempts = 5

// insertNumbered numbers sale with next and inserts it, drawing a new number
// when another sale took it first.
func insertNumbered(ctx context.Context, sale *models.Sale, next func(context.Context) (int, error), insert func() error) error {
	var err error
	for i := 0; i < saleNumberAttempts; i++ {
		sale.Numero, err = next(ctx)
		if err != nil {
			return err
		}
		err = insert()
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
		utils.Logger.Warn().Int("numero", sale.Numero).Msg("sale number taken, retrying")
	}
	return err
}

func (m *MongoSource) nextSaleNumber(ctx context.Context) (int, error) {
	var last models.Sale
	err := m.run(ctx, func() error {
		return Collection(SalesCollection).FindOne(ctx, bson.M{},
			options.FindOne().SetSort(bson.D{{Key: "numero", Value: -1}}).SetProjection(bson.M{"numero": 1}),
		).Decode(&last)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lecture du dernier numéro de vente: %w", err)
	}
	return last.Numero + 1, nil
}

// UpdateSale replaces the editable fields of a sale; its id, number and
// creation date are kept.
func (m *MongoSource) UpdateSale(ctx context.Context, id string, sale *models.Sale) error {
	existing, err := m.GetSale(ctx, id)
	if err != nil {
		return err
	}

	sale.ID = existing.ID
	sale.Numero = existing.Numero
	sale.CreatedAt = existing.CreatedAt
	sale.UpdatedAt = time.Now()

	err = m.run(ctx, func() error {
		_, err := Collection(SalesCollection).ReplaceOne(ctx, bson.M{"_id": existing.ID}, sale)
		return err
	})
	if err != nil {
		return fmt.Errorf("mise à jour de la vente %s: %w", id, err)
	}
	utils.LogDbOperation("replace", SalesCollection, bson.M{"_id": id}, nil)
	return nil
}

func (m *MongoSource) DeleteSale(ctx context.Context, id string) error {
	objID, err := parseObjectID(id, "vente")
	if err != nil {
		return err
	}

	var deleted int64
	err = m.run(ctx, func() error {
		res, err := Collection(SalesCollection).DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return fmt.Errorf("suppression de la vente %s: %w", id, err)
	}
	if deleted == 0 {
		return utils.CreateNotFoundError("vente")
	}
	utils.LogDbOperation("delete", SalesCollection, bson.M{"_id": id}, nil)
	return nil
}
