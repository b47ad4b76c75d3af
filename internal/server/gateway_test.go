package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flower-storefront/internal/cache"
	"flower-storefront/internal/client"
	"flower-storefront/internal/config"
	"flower-storefront/internal/model"
	"flower-storefront/internal/repository"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gateway struct {
	backend  *fakeBackend
	handler  http.Handler
	cart     *store.CartStore
	orders   *store.OrderStore
	messages *store.MessageStore
	receipts repository.ReceiptRepository
	db       *gorm.DB
}

// newGateway wires the real stack against a fake backend and an in-memory
// database.
func newGateway(t testing.TB) *gateway {
	t.Helper()
	backend, srv := newFakeBackend(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Credential{}, &model.Receipt{}))

	l := log.New("test")
	l.SetOutput(io.Discard)

	storeClient := client.NewStoreClient(&config.Backend{
		APIBase: srv.URL,
		APIPath: testAPIPath,
		Timeout: 5 * time.Second,
	})
	credentialRepo := repository.NewCredentialRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	cartStore := store.NewCartStore()
	orderStore := store.NewOrderStore()
	messageStore := store.NewMessageStore(time.Minute)

	authService := service.NewAuthService(storeClient, credentialRepo, l)
	s := NewServer(Services{
		Cart:      service.NewCartService(storeClient, cartStore, l),
		Checkout:  service.NewCheckoutService(storeClient, cartStore, receiptRepo, l),
		Orders:    service.NewOrderService(storeClient, authService, orderStore, l),
		Products:  service.NewProductService(storeClient, authService, cache.NewCatalogCache(nil, 0, l), l),
		Auth:      authService,
		CartStore: cartStore,
		Messages:  messageStore,
	}, l)

	return &gateway{
		backend:  backend,
		handler:  s.Handler(),
		cart:     cartStore,
		orders:   orderStore,
		messages: messageStore,
		receipts: receiptRepo,
		db:       db,
	}
}

type response struct {
	Status int
	Body   []byte
}

func (r response) decode(t testing.TB, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, out), string(r.Body))
}

// errorMessage reads echo's {"message": "..."} error body.
func (r response) errorMessage() string {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(r.Body, &body)
	return body.Message
}

func (g *gateway) do(method, path string, body any, headers ...string) response {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)
	return response{Status: rec.Code, Body: rec.Body.Bytes()}
}
