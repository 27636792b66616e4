package service

import (
	"context"

	"github.com/rpconseil/dossiers_end/models"
)

// Store is the data store behind the API: full reads for analytics plus
// single-record writes. Lookups of unknown ids return a not-found
// utils.ApiError; malformed ids return a bad-request one.
type Store interface {
	DataSource

	GetClient(ctx context.Context, id string) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClientFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Client, error)
	// DeleteClient removes the client and its sales, returning how many sales went with it.
	DeleteClient(ctx context.Context, id string) (int64, error)

	GetSale(ctx context.Context, id string) (*models.Sale, error)
	CreateSale(ctx context.Context, sale *models.Sale) error
	UpdateSale(ctx context.Context, id string, sale *models.Sale) error
	DeleteSale(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id string, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListSimulationTypes(ctx context.Context) ([]models.SimulationType, error)
	CreateSimulationType(ctx context.Context, template *models.SimulationType) error
	UpdateSimulationType(ctx context.Context, id string, template *models.SimulationType) error
	DeleteSimulationType(ctx context.Context, id string) error
}
