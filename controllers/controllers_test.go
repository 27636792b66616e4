package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/service"
	"github.com/rpconseil/dossiers_end/utils"
)

type memoryStore struct {
	mu        sync.Mutex
	clients   []models.Client
	sales     []models.Sale
	products  []models.Product
	templates []models.SimulationType
	listCalls int
	listErr   error
}

func (m *memoryStore) ListSales(ctx context.Context) ([]models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Sale(nil), m.sales...), nil
}

func (m *memoryStore) ListClients(ctx context.Context) ([]models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Client(nil), m.clients...), nil
}

func (m *memoryStore) clientIndex(id string) (int, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1, utils.CreateBadRequestError("identifiant de client invalide")
	}
	for i, c := range m.clients {
		if c.ID == objID {
			return i, nil
		}
	}
	return -1, utils.CreateNotFoundError("client")
}

func (m *memoryStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.clientIndex(id)
	if err != nil {
		return nil, err
	}
	c := m.clients[i]
	return &c, nil
}

func (m *memoryStore) CreateClient(ctx context.Context, client *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	client.ID = primitive.NewObjectID()
	m.clients = append(m.clients, *client)
	return nil
}

func (m *memoryStore) UpdateClientFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.clientIndex(id)
	if err != nil {
		return nil, err
	}
	c := &m.clients[i]
	for k, v := range fields {
		switch k {
		case "nom":
			c.Nom = v.(string)
		case "prenom":
			c.Prenom = v.(string)
		case "patrimoineBrut":
			c.PatrimoineBrut = v.(float64)
		case "objectifs":
			c.Objectifs = v.(string)
		}
	}
	out := *c
	return &out, nil
}

func (m *memoryStore) DeleteClient(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.clientIndex(id)
	if err != nil {
		return 0, err
	}
	m.clients = append(m.clients[:i], m.clients[i+1:]...)

	var kept []models.Sale
	var deleted int64
	for _, s := range m.sales {
		if s.ClientID == id {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.sales = kept
	return deleted, nil
}

func (m *memoryStore) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sales {
		if s.ID.Hex() == id {
			out := s
			return &out, nil
		}
	}
	return nil, utils.CreateNotFoundError("vente")
}

func (m *memoryStore) CreateSale(ctx context.Context, sale *models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sale.ID = primitive.NewObjectID()
	sale.Numero = len(m.sales) + 1
	m.sales = append(m.sales, *sale)
	return nil
}

func (m *memoryStore) UpdateSale(ctx context.Context, id string, sale *models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sales {
		if s.ID.Hex() == id {
			sale.ID = s.ID
			sale.Numero = s.Numero
			m.sales[i] = *sale
			return nil
		}
	}
	return utils.CreateNotFoundError("vente")
}

func (m *memoryStore) DeleteSale(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sales {
		if s.ID.Hex() == id {
			m.sales = append(m.sales[:i], m.sales[i+1:]...)
			return nil
		}
	}
	return utils.CreateNotFoundError("vente")
}

func (m *memoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Product{}, m.products...), nil
}

func (m *memoryStore) CreateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Nom == product.Nom {
			return utils.NewApiError("ce produit existe déjà", http.StatusConflict, "DUPLICATE_PRODUCT")
		}
	}
	product.ID = primitive.NewObjectID()
	m.products = append(m.products, *product)
	return nil
}

func (m *memoryStore) UpdateProduct(ctx context.Context, id string, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, p := range m.products {
		if p.ID.Hex() == id {
			idx = i
		} else if strings.EqualFold(p.Nom, product.Nom) {
			return utils.NewApiError("ce produit existe déjà", http.StatusConflict, "DUPLICATE_PRODUCT")
		}
	}
	if idx < 0 {
		return utils.CreateNotFoundError("produit")
	}
	product.ID = m.products[idx].ID
	m.products[idx] = *product
	return nil
}

func (m *memoryStore) ListSimulationTypes(ctx context.Context) ([]models.SimulationType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.SimulationType{}, m.templates...), nil
}

func (m *memoryStore) CreateSimulationType(ctx context.Context, template *models.SimulationType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	template.ID = primitive.NewObjectID()
	m.templates = append(m.templates, *template)
	return nil
}

func (m *memoryStore) UpdateSimulationType(ctx context.Context, id string, template *models.SimulationType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, tpl := range m.templates {
		if tpl.ID.Hex() == id {
			template.ID = tpl.ID
			m.templates[i] = *template
			return nil
		}
	}
	return utils.CreateNotFoundError("modèle de simulation")
}

func (m *memoryStore) DeleteSimulationType(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, tpl := range m.templates {
		if tpl.ID.Hex() == id {
			m.templates = append(m.templates[:i], m.templates[i+1:]...)
			return nil
		}
	}
	return utils.CreateNotFoundError("modèle de simulation")
}

func (m *memoryStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID.Hex() == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return utils.CreateNotFoundError("produit")
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitAuth("test-secret", "motdepasse")
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/login", Login)
	r.GET("/api/health", Health)
	r.GET("/api/db-status", DbStatus)

	r.GET("/api/clients", GetClients)
	r.POST("/api/clients", CreateClient)
	r.GET("/api/clients/:id", GetClient)
	r.PUT("/api/clients/:id", UpdateClient)
	r.DELETE("/api/clients/:id", DeleteClient)

	r.GET("/api/sales", GetSales)
	r.POST("/api/sales", CreateSale)
	r.PUT("/api/sales/:id", UpdateSale)
	r.DELETE("/api/sales/:id", DeleteSale)

	r.GET("/api/products", GetProductList)
	r.POST("/api/products", CreateProduct)
	r.PUT("/api/products/:id", UpdateProduct)
	r.DELETE("/api/products/:id", DeleteProduct)

	r.GET("/api/simulation-types", GetSimulationTypes)
	r.POST("/api/simulation-types", CreateSimulationType)
	r.PUT("/api/simulation-types/:id", UpdateSimulationType)
	r.DELETE("/api/simulation-types/:id", DeleteSimulationType)

	r.GET("/api/dashboard-stats", GetDashboardStats)
	r.GET("/api/billing", GetBilling)
	r.GET("/api/analysis", GetAnalysis)
	r.GET("/api/product-analysis/:name", GetProductAnalysis)
	r.GET("/api/simulator", GetSimulation)
	return r
}

// setup wires the handlers to a fresh store seeded with two clients:
// DUPONT Jean with two sales and MARTIN Claire, sponsored by him, with one.
func setup(t *testing.T) (*gin.Engine, *memoryStore) {
	t.Helper()

	dupont := models.Client{ID: primitive.NewObjectID(), Nom: "DUPONT", Prenom: "Jean", DateEntree: "01/01/2020"}
	martin := models.Client{ID: primitive.NewObjectID(), Nom: "MARTIN", Prenom: "Claire", DateEntree: "01/06/2022"}

	ms := &memoryStore{
		clients: []models.Client{dupont, martin},
		sales: []models.Sale{
			{
				ID: primitive.NewObjectID(), Numero: 1, ClientID: dupont.ID.Hex(), ClientNom: "DUPONT Jean",
				Produit: "PINEL", Type: models.SaleTypeFiche, DateVente: "15/03/2022", DateFacture: "15/04/2022",
				CAPerso: "1 000,00 €", CAGeneral: "2 000,00 €", MontantFacturable: "2 000,00 €",
				Statut: models.SaleStatusPaid, Annee: 2022,
			},
			{
				ID: primitive.NewObjectID(), Numero: 2, ClientID: dupont.ID.Hex(), ClientNom: "DUPONT Jean",
				Produit: "SCPI", Type: models.SaleTypeFiche, DateVente: "10/02/2023",
				CAPerso: "500,00 €", CAGeneral: "1 000,00 €", MontantFacturable: "1 000,00 €",
				Statut: models.SaleStatusToInvoice, Annee: 2023,
			},
			{
				ID: primitive.NewObjectID(), Numero: 3, ClientID: martin.ID.Hex(), ClientNom: "MARTIN Claire",
				Produit: "PINEL", Type: models.SaleTypeParrainage, Parrain: "DUPONT Jean", DateVente: "20/05/2023",
				CAPerso: "1 500,00 €", CAGeneral: "3 000,00 €", MontantFacturable: "3 000,00 €",
				Statut: models.SaleStatusPaid, Annee: 2023,
			},
		},
	}

	Configure(ms, service.NewSnapshotService(ms, time.Minute), analytics.DefaultThresholds())
	return newRouter(), ms
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func TestLogin(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/login", gin.H{"password": "faux"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Code)

	w, _ = do(t, r, http.MethodPost, "/api/auth/login", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, r, http.MethodPost, "/api/auth/login", gin.H{"password": "motdepasse"})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	decode(t, env.Data, &data)
	assert.Equal(t, "conseiller", data.User.Username)

	claims, err := utils.ParseToken(data.Token)
	require.NoError(t, err)
	assert.Equal(t, "conseiller", claims["username"])
}

func TestGetClients_RollupAndKeyword(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Clients []analytics.ClientSummary `json:"clients"`
		Total   int                       `json:"total"`
	}
	decode(t, env.Data, &data)
	require.Equal(t, 2, data.Total)
	// MARTIN has the most recent sale
	assert.Equal(t, "MARTIN Claire", data.Clients[0].DisplayName)
	assert.Equal(t, 2, data.Clients[1].SaleCount)
	assert.Equal(t, 1500.0, data.Clients[1].TotalCAPerso)

	_, env = do(t, r, http.MethodGet, "/api/clients?keyword=dup", nil)
	decode(t, env.Data, &data)
	require.Equal(t, 1, data.Total)
	assert.Equal(t, "DUPONT Jean", data.Clients[0].DisplayName)
}

func TestGetClient(t *testing.T) {
	r, ms := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/clients/"+ms.clients[0].ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary analytics.ClientSummary
	decode(t, env.Data, &summary)
	assert.Equal(t, 2, summary.SaleCount)

	w, env = do(t, r, http.MethodGet, "/api/clients/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Code)

	w, _ = do(t, r, http.MethodGet, "/api/clients/pas-un-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientWritesInvalidateSnapshot(t *testing.T) {
	r, ms := setup(t)

	do(t, r, http.MethodGet, "/api/clients", nil)
	do(t, r, http.MethodGet, "/api/clients", nil)
	assert.Equal(t, 1, ms.listCalls)

	w, _ := do(t, r, http.MethodPost, "/api/clients", gin.H{"nom": "BERNARD", "prenom": "Luc"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, env := do(t, r, http.MethodGet, "/api/clients", nil)
	var data struct {
		Total int `json:"total"`
	}
	decode(t, env.Data, &data)
	assert.Equal(t, 3, data.Total)
	assert.Equal(t, 2, ms.listCalls)
}

func TestCreateClient_RequiresNom(t *testing.T) {
	r, _ := setup(t)

	w, _ := do(t, r, http.MethodPost, "/api/clients", gin.H{"nom": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/clients", gin.H{"prenom": "Luc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateClient(t *testing.T) {
	r, ms := setup(t)
	id := ms.clients[0].ID.Hex()

	w, env := do(t, r, http.MethodPut, "/api/clients/"+id, gin.H{
		"patrimoineBrut": "250 000,00 €",
		"objectifs":      "retraite",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var client models.Client
	decode(t, env.Data, &client)
	assert.Equal(t, 250000.0, client.PatrimoineBrut)
	assert.Equal(t, "retraite", client.Objectifs)

	w, env = do(t, r, http.MethodPut, "/api/clients/"+id, gin.H{"totalCA": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "totalCA")

	w, _ = do(t, r, http.MethodPut, "/api/clients/"+id, gin.H{"nom": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteClient_CascadesToSales(t *testing.T) {
	r, ms := setup(t)

	w, env := do(t, r, http.MethodDelete, "/api/clients/"+ms.clients[0].ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		DeletedSales int64 `json:"deletedSales"`
	}
	decode(t, env.Data, &data)
	assert.Equal(t, int64(2), data.DeletedSales)

	_, env = do(t, r, http.MethodGet, "/api/sales", nil)
	var sales struct {
		Total int `json:"total"`
	}
	decode(t, env.Data, &sales)
	assert.Equal(t, 1, sales.Total)
}

func validSale(clientID string) gin.H {
	return gin.H{
		"clientId":  clientID,
		"produit":   "SCPI",
		"type":      "P",
		"parrain":   "DUPONT Jean",
		"dateVente": "01/09/2024",
		"caPerso":   "800,00 €",
		"statut":    models.SaleStatusToInvoice,
		"annee":     2024,
	}
}

func TestCreateSale(t *testing.T) {
	r, ms := setup(t)

	w, env := do(t, r, http.MethodPost, "/api/sales", validSale(ms.clients[1].ID.Hex()))
	require.Equal(t, http.StatusCreated, w.Code)
	var sale models.Sale
	decode(t, env.Data, &sale)
	assert.Equal(t, "MARTIN Claire", sale.ClientNom)
	assert.Equal(t, 4, sale.Numero)

	w, _ = do(t, r, http.MethodPost, "/api/sales", validSale(primitive.NewObjectID().Hex()))
	assert.Equal(t, http.StatusNotFound, w.Code)

	bad := validSale(ms.clients[1].ID.Hex())
	bad["type"] = "X"
	w, _ = do(t, r, http.MethodPost, "/api/sales", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSales_YearFilter(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/sales?year=2023", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Sales []models.Sale `json:"sales"`
		Total int           `json:"total"`
		Years []int         `json:"years"`
	}
	decode(t, env.Data, &data)
	require.Equal(t, 2, data.Total)
	assert.Equal(t, 3, data.Sales[0].Numero)
	assert.Equal(t, []int{2023, 2022}, data.Years)

	w, _ = do(t, r, http.MethodGet, "/api/sales?year=deux", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteSale(t *testing.T) {
	r, ms := setup(t)
	id := ms.sales[1].ID.Hex()

	body := validSale(ms.clients[0].ID.Hex())
	body["statut"] = models.SaleStatusCancelled
	w, _ := do(t, r, http.MethodPut, "/api/sales/"+id, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.SaleStatusCancelled, ms.sales[1].Statut)
	assert.Equal(t, 2, ms.sales[1].Numero)

	w, _ = do(t, r, http.MethodDelete, "/api/sales/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodDelete, "/api/sales/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProducts(t *testing.T) {
	r, ms := setup(t)

	w, _ := do(t, r, http.MethodPost, "/api/products", gin.H{"nom": " PINEL "})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PINEL", ms.products[0].Nom)

	w, env := do(t, r, http.MethodPost, "/api/products", gin.H{"nom": "PINEL"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_PRODUCT", env.Code)

	_, env = do(t, r, http.MethodGet, "/api/products", nil)
	var data struct {
		Total int `json:"total"`
	}
	decode(t, env.Data, &data)
	assert.Equal(t, 1, data.Total)

	w, _ = do(t, r, http.MethodDelete, "/api/products/"+ms.products[0].ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	r, ms := setup(t)

	do(t, r, http.MethodPost, "/api/products", gin.H{"nom": "PINEL"})
	do(t, r, http.MethodPost, "/api/products", gin.H{"nom": "SCPI"})
	pinel := ms.products[0].ID.Hex()

	w, env := do(t, r, http.MethodPut, "/api/products/"+pinel, gin.H{"nom": "Pinel+", "description": "zone A"})
	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	decode(t, env.Data, &product)
	assert.Equal(t, "Pinel+", product.Nom)
	assert.Equal(t, "zone A", ms.products[0].Description)

	w, env = do(t, r, http.MethodPut, "/api/products/"+pinel, gin.H{"nom": "scpi"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_PRODUCT", env.Code)

	w, _ = do(t, r, http.MethodPut, "/api/products/"+pinel, gin.H{"nom": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/products/"+primitive.NewObjectID().Hex(), gin.H{"nom": "LMNP"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductWritesInvalidateSnapshot(t *testing.T) {
	r, ms := setup(t)

	do(t, r, http.MethodGet, "/api/dashboard-stats", nil)
	w, _ := do(t, r, http.MethodPost, "/api/products", gin.H{"nom": "PER"})
	require.Equal(t, http.StatusCreated, w.Code)
	do(t, r, http.MethodGet, "/api/dashboard-stats", nil)
	assert.Equal(t, 2, ms.listCalls)

	w, _ = do(t, r, http.MethodDelete, "/api/products/"+ms.products[0].ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	do(t, r, http.MethodGet, "/api/dashboard-stats", nil)
	assert.Equal(t, 3, ms.listCalls)
}

func TestSimulationTypes(t *testing.T) {
	r, ms := setup(t)

	w, env := do(t, r, http.MethodPost, "/api/simulation-types", gin.H{
		"nom": "Retraite PER", "type": "PER", "description": "versements mensuels",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.SimulationType
	decode(t, env.Data, &created)
	assert.Equal(t, "PER", created.Type)
	id := ms.templates[0].ID.Hex()

	w, _ = do(t, r, http.MethodPost, "/api/simulation-types", gin.H{"nom": "Sans type"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/simulation-types/"+id, gin.H{"nom": "Retraite PER", "type": "PER individuel"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PER individuel", ms.templates[0].Type)

	_, env = do(t, r, http.MethodGet, "/api/simulation-types", nil)
	var data struct {
		SimulationTypes []models.SimulationType `json:"simulationTypes"`
		Total           int                     `json:"total"`
	}
	decode(t, env.Data, &data)
	assert.Equal(t, 1, data.Total)

	w, _ = do(t, r, http.MethodDelete, "/api/simulation-types/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodDelete, "/api/simulation-types/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDashboardStats(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/dashboard-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data models.DashboardDataResponse
	decode(t, env.Data, &data)
	assert.Equal(t, 2, data.ClientCount)
	assert.Equal(t, 3, data.SaleCount)
	assert.Equal(t, 3000.0, data.TotalCAPerso)
	require.Len(t, data.RecentSales, 3)
	assert.Equal(t, 3, data.RecentSales[0].Numero)
}

func TestGetBilling_Flags(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/billing?year=2022", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Years []struct {
			Year          int                    `json:"year"`
			ReferralRatio float64                `json:"referralRatio"`
			PaymentRate   float64                `json:"paymentRate"`
			Flags         analytics.BillingFlags `json:"flags"`
		} `json:"years"`
		Thresholds analytics.Thresholds `json:"thresholds"`
	}
	decode(t, env.Data, &data)
	require.Len(t, data.Years, 1)
	y := data.Years[0]
	assert.Equal(t, 2022, y.Year)
	assert.Equal(t, 0.0, y.ReferralRatio)
	assert.Equal(t, 100.0, y.PaymentRate)
	assert.True(t, y.Flags.LowReferral)
	assert.False(t, y.Flags.LowPayment)
	assert.False(t, y.Flags.HighCancellation)
	assert.Equal(t, analytics.DefaultThresholds(), data.Thresholds)
}

func TestGetAnalysis(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/analysis?year=2023", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Analysis analytics.Analysis `json:"analysis"`
		Years    []int              `json:"years"`
	}
	decode(t, env.Data, &data)
	assert.Equal(t, 2, data.Analysis.SaleCount)
	require.Len(t, data.Analysis.ReferralEdges, 1)
	assert.Equal(t, "DUPONT Jean", data.Analysis.ReferralEdges[0].Sponsor)
	assert.Equal(t, "MARTIN Claire", data.Analysis.ReferralEdges[0].Godchild)
	assert.Len(t, data.Analysis.Sources, 2)

	w, _ = do(t, r, http.MethodGet, "/api/analysis?year=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductAnalysis(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/product-analysis/PINEL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pa analytics.ProductAnalysis
	decode(t, env.Data, &pa)
	assert.Equal(t, "PINEL", pa.Product)
	assert.Equal(t, 2, pa.SaleCount)

	w, _ = do(t, r, http.MethodGet, "/api/product-analysis/LMNP", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSimulation(t *testing.T) {
	r, _ := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/simulator", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sim analytics.Simulation
	decode(t, env.Data, &sim)
	assert.Equal(t, 2023, sim.Reference.Year)
	assert.Equal(t, 2024, sim.ProjectedYear)
	assert.Equal(t, 2, sim.Count)
	assert.Len(t, sim.Monthly, 12)

	w, env = do(t, r, http.MethodGet, "/api/simulator?count=4&fichePct=25,5&avgCAPerso=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &sim)
	assert.Equal(t, 4, sim.Count)
	assert.Equal(t, 25.5, sim.FichePct)
	assert.Equal(t, 1, sim.FicheCount)
	assert.Equal(t, 4000.0, sim.TotalCAPerso)

	w, _ = do(t, r, http.MethodGet, "/api/simulator?count=beaucoup", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/simulator?avgCAGeneral=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnapshotFailureIsUnavailable(t *testing.T) {
	r, ms := setup(t)
	ms.listErr = errors.New("no reachable servers")

	w, env := do(t, r, http.MethodGet, "/api/dashboard-stats", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, env.Success)
}

func TestHealthAndDbStatus(t *testing.T) {
	r, _ := setup(t)

	w, _ := do(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	orig := dbStatus
	defer func() { dbStatus = orig }()

	dbStatus = func(ctx context.Context) (map[string]interface{}, error) {
		return map[string]interface{}{"sales": map[string]interface{}{"count": 3}}, nil
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-status", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)

	dbStatus = func(ctx context.Context) (map[string]interface{}, error) {
		return nil, errors.New("base de données non initialisée")
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
