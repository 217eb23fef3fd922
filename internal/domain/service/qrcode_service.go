package service

import "storefront/internal/domain/entity"

// QRCodeService renders payment-instruction QR codes so customers can
// scan the receiving account instead of copying it by hand.
type QRCodeService interface {
	// GeneratePaymentQR encodes a receiving account and the amount due
	// as a PNG QR code.
	GeneratePaymentQR(account *entity.PaymentAccount, amount float64) ([]byte, error)
}
