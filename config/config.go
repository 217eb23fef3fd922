// Package config loads the service configuration from YAML files with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"storefront/internal/domain/entity"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Shop holds the storefront's money rules.
	Shop ShopConfig `json:"shop" yaml:"shop"`

	// Upstream points at the remote catalog and order services.
	Upstream UpstreamConfig `json:"upstream" yaml:"upstream"`

	// Payment lists the receiving accounts shown during checkout.
	Payment PaymentConfig `json:"payment" yaml:"payment"`

	// ProofStore configures staging of proof-of-payment uploads.
	ProofStore *ProofStoreConfig `json:"proofStore" yaml:"proofStore"`

	// PubSub configuration for order event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for payment-instruction QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

// Log defines logging configuration.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// ShopConfig holds currency and shipping rules.
type ShopConfig struct {
	Currency string `json:"currency" yaml:"currency"`

	// FlatShippingFee is charged below the free-shipping threshold.
	FlatShippingFee float64 `json:"flatShippingFee" yaml:"flatShippingFee"`

	// FreeShippingThreshold waives shipping at and above this subtotal.
	FreeShippingThreshold float64 `json:"freeShippingThreshold" yaml:"freeShippingThreshold"`

	// CatalogRefreshInterval bounds how stale the annotated snapshot may get.
	CatalogRefreshInterval time.Duration `json:"catalogRefreshInterval" yaml:"catalogRefreshInterval"`
}

// UpstreamConfig points at the remote services this storefront consumes.
type UpstreamConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PaymentConfig lists receiving accounts per payment method.
type PaymentConfig struct {
	Bank      entity.PaymentAccount `json:"bank" yaml:"bank"`
	JazzCash  entity.PaymentAccount `json:"jazzCash" yaml:"jazzCash"`
	Easypaisa entity.PaymentAccount `json:"easypaisa" yaml:"easypaisa"`
}

// ProofStoreConfig defines where staged proof files live. BucketURL is a
// gocloud.dev blob URL, e.g. "file:///var/lib/storefront/proofs" or
// "gs://storefront-proofs".
type ProofStoreConfig struct {
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// Account returns the receiving account for a method, or nil for cash
// on delivery, which has no receiving account.
func (p *PaymentConfig) Account(method entity.PaymentMethod) *entity.PaymentAccount {
	switch method {
	case entity.PaymentBank:
		return &p.Bank
	case entity.PaymentJazzCash:
		return &p.JazzCash
	case entity.PaymentEasypaisa:
		return &p.Easypaisa
	}

	return nil
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SHOP_FLATSHIPPINGFEE -> shop.flatShippingFee
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the service configuration, applying defaults for the money
// rules so a minimal config file still yields a working storefront.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Shop.Currency == "" {
		cfg.Shop.Currency = "Rs"
	}
	if cfg.Shop.FlatShippingFee == 0 {
		cfg.Shop.FlatShippingFee = 250
	}
	if cfg.Shop.FreeShippingThreshold == 0 {
		cfg.Shop.FreeShippingThreshold = 3000
	}
	if cfg.Shop.CatalogRefreshInterval == 0 {
		cfg.Shop.CatalogRefreshInterval = 5 * time.Minute
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 30 * time.Second
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
