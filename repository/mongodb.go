package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpconseil/dossiers_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ClientsCollection         = "clients"
	SalesCollection           = "sales"
	ProductsCollection        = "products"
	SimulationTypesCollection = "simulationTypes"
	OperationLogsCollection   = "operationLogs"
)

var allCollections = []string{
	ClientsCollection,
	SalesCollection,
	ProductsCollection,
	SimulationTypesCollection,
	OperationLogsCollection,
}

var (
	client *mongo.Client
	db     *mongo.Database
)

// InitMongoDB connects to uri and selects dbName.
func InitMongoDB(ctx context.Context, uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("connexion MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping MongoDB: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")
	return nil
}

func CloseMongoDB(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("MongoDB disconnect failed")
		return
	}
	utils.Logger.Info().Msg("disconnected from MongoDB")
}

// Collection returns the named collection of the connected database.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// ExecuteDbOperation runs operation up to retries times (3 by default),
// backing off between attempts while the error is transient.
func ExecuteDbOperation(ctx context.Context, operation func() error, retries int) error {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) {
			break
		}
		utils.Logger.Warn().Err(err).Msgf("database operation failed, retrying (%d/%d)", i+1, retries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(500*(i+1)) * time.Millisecond):
		}
	}
	return lastErr
}

// retryableCodes are the server error codes worth another attempt.
var retryableCodes = map[int32]bool{
	6:     true, // HostUnreachable
	7:     true, // HostNotFound
	89:    true, // NetworkTimeout
	91:    true, // ShutdownInProgress
	189:   true, // PrimarySteppedDown
	10107: true, // NotWritablePrimary
	13436: true, // NotPrimaryNoSecondaryOk
	11600: true, // InterruptedAtShutdown
	11602: true, // InterruptedDueToReplStateChange
	10058: true, // ConnectionReset
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, context.Canceled) {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return retryableCodes[cmdErr.Code] || cmdErr.HasErrorLabel("RetryableWriteError")
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	return isNetworkError(err)
}

var networkErrors = []string{
	"connection refused",
	"connection reset",
	"connection closed",
	"no reachable servers",
	"timeout",
	"server selection error",
}

func isNetworkError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, ne := range networkErrors {
		if strings.Contains(msg, ne) {
			return true
		}
	}
	return false
}

// InitializeCollections creates missing collections and the sale indexes.
func InitializeCollections(ctx context.Context) error {
	for _, name := range allCollections {
		exists, err := CollectionExists(ctx, name)
		if err != nil {
			return fmt.Errorf("vérification de la collection %s: %w", name, err)
		}
		if exists {
			utils.Logger.Debug().Str("collection", name).Msg("collection exists")
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("création de la collection %s: %w", name, err)
		}
		utils.Logger.Info().Str("collection", name).Msg("collection created")
	}

	_, err := Collection(SalesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		{Keys: bson.D{{Key: "annee", Value: -1}}},
		{Keys: bson.D{{Key: "numero", Value: -1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("création des index des ventes: %w", err)
	}
	return nil
}

func CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// GetDatabaseStatus reports the document count of every collection.
func GetDatabaseStatus(ctx context.Context) (map[string]interface{}, error) {
	if db == nil {
		return nil, errors.New("base de données non initialisée")
	}

	result := make(map[string]interface{}, len(allCollections))
	for _, name := range allCollections {
		count, err := Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", name).Msg("count failed")
			result[name] = map[string]interface{}{"count": 0, "error": err.Error()}
			continue
		}
		result[name] = map[string]interface{}{"count": count}
	}
	return result, nil
}
