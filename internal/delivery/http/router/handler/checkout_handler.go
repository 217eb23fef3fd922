package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// proofFormField is the multipart field carrying the proof file.
const proofFormField = "proof"

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler drives the step-gated checkout over HTTP.
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// StartCheckoutRequest represents the request body for opening a session
type StartCheckoutRequest struct {
	CartID string `json:"cartId" validate:"required"`
}

// DetailsRequest represents the contact fields of the Details step.
// Field-level validation happens in the usecase so failures come back
// with per-field messages instead of a flat binding error.
type DetailsRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Note    string `json:"note"`
}

// PaymentRequest represents the Payment step selection
type PaymentRequest struct {
	Method         string `json:"method" validate:"required"`
	TransactionRef string `json:"transactionRef"`
	SenderLast4    string `json:"senderLast4"`
}

// Start opens a checkout session over a cart.
func (h *CheckoutHandler) Start(c echo.Context) error {
	var req StartCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	session, err := h.checkoutUC.Start(c.Request().Context(), req.CartID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, session, "Checkout session started")
}

// Session returns the current session state.
func (h *CheckoutHandler) Session(c echo.Context) error {
	session, err := h.checkoutUC.Session(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "Checkout session retrieved")
}

// SubmitDetails validates the contact fields and advances to Payment.
func (h *CheckoutHandler) SubmitDetails(c echo.Context) error {
	var req DetailsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}

	contact := entity.ContactInfo{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Note:    req.Note,
	}

	session, err := h.checkoutUC.SubmitDetails(c.Request().Context(), c.Param("id"), contact)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "Contact details saved")
}

// AttachProof stages an uploaded proof-of-payment file.
func (h *CheckoutHandler) AttachProof(c echo.Context) error {
	fileHeader, err := c.FormFile(proofFormField)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A proof file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "The proof file could not be read")
	}
	defer src.Close()

	file := &usecase.ProofFile{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Content:     src,
	}

	session, err := h.checkoutUC.AttachProof(c.Request().Context(), c.Param("id"), file)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "Proof of payment attached")
}

// RemoveProof discards a staged proof file.
func (h *CheckoutHandler) RemoveProof(c echo.Context) error {
	session, err := h.checkoutUC.RemoveProof(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "Proof of payment removed")
}

// SelectPayment records the method and advances to Review.
func (h *CheckoutHandler) SelectPayment(c echo.Context) error {
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.PaymentInput{
		Method:         entity.PaymentMethod(req.Method),
		TransactionRef: req.TransactionRef,
		SenderLast4:    req.SenderLast4,
	}

	session, err := h.checkoutUC.SelectPayment(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "Payment method selected")
}

// Back steps the session backward without losing data.
func (h *CheckoutHandler) Back(c echo.Context) error {
	session, err := h.checkoutUC.Back(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "Stepped back")
}

// Submit places the order and returns the confirmation.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	confirmation, err := h.checkoutUC.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, confirmation, "Order placed successfully")
}

// PaymentQR renders the receiving account as a PNG QR code.
func (h *CheckoutHandler) PaymentQR(c echo.Context) error {
	png, err := h.checkoutUC.PaymentQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// handleAppError handles application errors
func (h *CheckoutHandler) handleAppError(c echo.Context, err error) error {
	// Structured checkout errors keep their payload for the frontend.
	var missingErr *domainerrors.MissingProofError
	if errors.As(err, &missingErr) {
		return err
	}
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
