package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoSource) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := m.run(ctx, func() error {
		cursor, err := Collection(ProductsCollection).Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "nom", Value: 1}}))
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &products)
	})
	if err != nil {
		return nil, fmt.Errorf("lecture des produits: %w", err)
	}
	return products, nil
}

// CreateProduct inserts product unless another one already has its name.
func (m *MongoSource) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := m.checkProductName(ctx, product.Nom, primitive.NilObjectID); err != nil {
		return err
	}

	now := time.Now()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := m.run(ctx, func() error {
		_, err := Collection(ProductsCollection).InsertOne(ctx, product)
		return err
	})
	if err != nil {
		return fmt.Errorf("création du produit: %w", err)
	}
	utils.LogDbOperation("insert", ProductsCollection, nil, product.Nom)
	return nil
}

// UpdateProduct renames or redescribes a product. Sales keep the name they
// were recorded with.
func (m *MongoSource) UpdateProduct(ctx context.Context, id string, product *models.Product) error {
	objID, err := parseObjectID(id, "produit")
	if err != nil {
		return err
	}
	if err := m.checkProductName(ctx, product.Nom, objID); err != nil {
		return err
	}

	product.UpdatedAt = time.Now()
	var updated models.Product
	err = m.run(ctx, func() error {
		return Collection(ProductsCollection).FindOneAndUpdate(ctx,
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{
				"nom":         product.Nom,
				"description": product.Description,
				"updatedAt":   product.UpdatedAt,
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.CreateNotFoundError("produit")
	}
	if err != nil {
		return fmt.Errorf("mise à jour du produit %s: %w", id, err)
	}
	*product = updated
	utils.LogDbOperation("update", ProductsCollection, bson.M{"_id": id}, product.Nom)
	return nil
}

// checkProductName rejects name when a product other than self already uses
// it, ignoring case.
func (m *MongoSource) checkProductName(ctx context.Context, name string, self primitive.ObjectID) error {
	filter := bson.M{
		"nom": bson.M{"$regex": "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$", "$options": "i"},
	}
	if !self.IsZero() {
		filter["_id"] = bson.M{"$ne": self}
	}

	var count int64
	err := m.run(ctx, func() error {
		var err error
		count, err = Collection(ProductsCollection).CountDocuments(ctx, filter)
		return err
	})
	if err != nil {
		return fmt.Errorf("vérification du produit: %w", err)
	}
	if count > 0 {
		return utils.NewApiError("ce produit existe déjà", http.StatusConflict, "DUPLICATE_PRODUCT")
	}
	return nil
}

func (m *MongoSource) DeleteProduct(ctx context.Context, id string) error {
	objID, err := parseObjectID(id, "produit")
	if err != nil {
		return err
	}

	var deleted int64
	err = m.run(ctx, func() error {
		res, err := Collection(ProductsCollection).DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return fmt.Errorf("suppression du produit %s: %w", id, err)
	}
	if deleted == 0 {
		return utils.CreateNotFoundError("produit")
	}
	return nil
}
