// Package qrcode renders payment-instruction QR codes.
package qrcode

import (
	"encoding/json"
	"fmt"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// paymentQRData is the payload encoded into the QR image. Wallet apps
// read the account number and amount; the rest is for display.
type paymentQRData struct {
	Method        string  `json:"method"`
	AccountName   string  `json:"account_name"`
	AccountNumber string  `json:"account_number"`
	BankName      string  `json:"bank_name,omitempty"`
	IBAN          string  `json:"iban,omitempty"`
	Amount        float64 `json:"amount"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePaymentQR encodes a receiving account and the amount due as a PNG QR code.
func (s *qrcodeService) GeneratePaymentQR(account *entity.PaymentAccount, amount float64) ([]byte, error) {
	data := paymentQRData{
		Method:        string(account.Method),
		AccountName:   account.AccountName,
		AccountNumber: account.AccountNumber,
		BankName:      account.BankName,
		IBAN:          account.IBAN,
		Amount:        amount,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
