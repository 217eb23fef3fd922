// Package order implements the OrderGateway against the remote order
// service's HTTP API: manual order creation, proof upload, and
// per-line stock decrements.
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

type httpGateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPGateway creates an OrderGateway talking to the configured
// upstream base URL.
func NewHTTPGateway(cfg *config.Config, logger *slog.Logger) service.OrderGateway {
	timeout := cfg.Upstream.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &httpGateway{
		baseURL: cfg.Upstream.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// envelope is the order service's response shape for all three endpoints.
type envelope struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// CreateOrder posts the order payload. The upstream message, when given,
// travels back verbatim inside an OrderCreationError.
func (g *httpGateway) CreateOrder(ctx context.Context, orderReq *service.OrderRequest) (string, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/order/place-manual", bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", domainerrors.NewOrderCreationError(err, "")
	}
	defer resp.Body.Close()

	env, decodeErr := decodeEnvelope(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !env.Success {
		message := ""
		if decodeErr == nil {
			message = env.Message
		}

		return "", domainerrors.NewOrderCreationError(
			errors.Errorf("order service returned status %d", resp.StatusCode),
			message,
		)
	}

	g.logger.Info("Order created",
		slog.String("order_id", env.OrderID),
		slog.String("payment_method", string(orderReq.PaymentMethod)),
	)

	return env.OrderID, nil
}

// UploadProof uploads the proof file as multipart form data tagged with
// the order id, transaction reference, and sender digits.
func (g *httpGateway) UploadProof(ctx context.Context, upload *service.ProofUpload) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("proof", upload.FileName)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return errors.Wrap(err, "copy proof content")
	}

	fields := map[string]string{
		"orderId":        upload.OrderID,
		"transactionRef": upload.TransactionRef,
		"senderLast4":    upload.SenderLast4,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := writer.Close(); err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/order/upload-proof", &buf)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	env, decodeErr := decodeEnvelope(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !env.Success {
		return errors.Errorf("proof upload returned status %d", resp.StatusCode)
	}

	return nil
}

// DecrementStock reduces stock for one resolved line. The endpoint is
// not idempotent, so this is never retried.
func (g *httpGateway) DecrementStock(ctx context.Context, dec *service.StockDecrement) error {
	body, err := json.Marshal(dec)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/product/decrement-stock", bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	env, decodeErr := decodeEnvelope(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !env.Success {
		return errors.Errorf("stock decrement for %s/%s returned status %d", dec.ProductID, dec.Color, resp.StatusCode)
	}

	return nil
}

func decodeEnvelope(body io.Reader) (*envelope, error) {
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil, errors.Wrap(err, "decode response body")
	}

	return &env, nil
}
