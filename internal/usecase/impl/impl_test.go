package impl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testShopConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Shop = config.ShopConfig{
		Currency:               "Rs",
		FlatShippingFee:        250,
		FreeShippingThreshold:  3000,
		CatalogRefreshInterval: 5 * time.Minute,
	}
	cfg.Payment = config.PaymentConfig{
		Bank: entity.PaymentAccount{
			Method:        entity.PaymentBank,
			AccountName:   "Storefront Ltd",
			AccountNumber: "01234567890123",
			BankName:      "Meezan Bank",
			IBAN:          "PK36MEZN0001234567890123",
		},
		JazzCash: entity.PaymentAccount{
			Method:        entity.PaymentJazzCash,
			AccountName:   "Storefront Ltd",
			AccountNumber: "+923001112233",
		},
		Easypaisa: entity.PaymentAccount{
			Method:        entity.PaymentEasypaisa,
			AccountName:   "Storefront Ltd",
			AccountNumber: "+923004445566",
		},
	}

	return cfg
}

// memCartStore is an in-memory CartRepository that doubles as its own
// transaction manager, serializing units of work with a mutex.
type memCartStore struct {
	mu    sync.Mutex
	carts map[string][]entity.CartLine
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string][]entity.CartLine)}
}

func (s *memCartStore) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s)
}

func (s *memCartStore) NewCartRepository() repository.CartRepository {
	return s
}

func (s *memCartStore) FindLines(_ context.Context, cartID string) ([]entity.CartLine, error) {
	lines := make([]entity.CartLine, 0, len(s.carts[cartID]))
	for _, line := range s.carts[cartID] {
		if line.Quantity > 0 {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

func (s *memCartStore) ReplaceLines(_ context.Context, cartID string, lines []entity.CartLine) error {
	kept := make([]entity.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		delete(s.carts, cartID)

		return nil
	}
	s.carts[cartID] = kept

	return nil
}

// stubCatalog serves a fixed, pre-annotated snapshot.
type stubCatalog struct {
	snapshot *usecase.CatalogSnapshot
	err      error
}

func newStubCatalog(products ...entity.Product) *stubCatalog {
	snapshot := &usecase.CatalogSnapshot{
		Products:  products,
		FetchedAt: time.Now(),
	}
	snapshot.IndexProducts()

	return &stubCatalog{snapshot: snapshot}
}

func (s *stubCatalog) Snapshot(_ context.Context) (*usecase.CatalogSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.snapshot, nil
}

func (s *stubCatalog) Refresh(ctx context.Context) (*usecase.CatalogSnapshot, error) {
	return s.Snapshot(ctx)
}

// mockCatalogGateway is a testify mock of service.CatalogGateway.
type mockCatalogGateway struct {
	mock.Mock
}

func (m *mockCatalogGateway) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *mockCatalogGateway) FetchActiveOffers(ctx context.Context) ([]entity.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.Offer), args.Error(1)
}

func (m *mockCatalogGateway) FetchCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

// mockOrderGateway is a testify mock of service.OrderGateway.
type mockOrderGateway struct {
	mock.Mock
}

func (m *mockOrderGateway) CreateOrder(ctx context.Context, req *service.OrderRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

func (m *mockOrderGateway) UploadProof(ctx context.Context, upload *service.ProofUpload) error {
	args := m.Called(ctx, upload)

	return args.Error(0)
}

func (m *mockOrderGateway) DecrementStock(ctx context.Context, dec *service.StockDecrement) error {
	args := m.Called(ctx, dec)

	return args.Error(0)
}

// memProofStore stages proof files in a map.
type memProofStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	counter int
}

func newMemProofStore() *memProofStore {
	return &memProofStore{files: make(map[string][]byte)}
}

func (s *memProofStore) Save(_ context.Context, fileName, _ string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	key := fmt.Sprintf("staged/%d/%s", s.counter, fileName)
	s.files[key] = data

	return key, nil
}

func (s *memProofStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.files[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memProofStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)

	return nil
}

func (s *memProofStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.files)
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.OrderPlacedEvent
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, event *service.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []*service.OrderPlacedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.OrderPlacedEvent(nil), p.events...)
}

// stubQRService returns a fixed payload.
type stubQRService struct{}

func (stubQRService) GeneratePaymentQR(_ *entity.PaymentAccount, _ float64) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}
