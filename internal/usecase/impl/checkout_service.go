package impl

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/pricing"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// phonePattern matches Pakistani mobile numbers in international form.
var phonePattern = regexp.MustCompile(`^\+923\d{9}$`)

// senderLast4Pattern matches exactly four digits.
var senderLast4Pattern = regexp.MustCompile(`^\d{4}$`)

var allowedProofTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"application/pdf": {},
}

type checkoutService struct {
	cart         usecase.CartUsecase
	orderGateway service.OrderGateway
	proofStore   service.ProofStore
	publisher    service.EventPublisher
	qrService    service.QRCodeService
	payment      config.PaymentConfig
	validate     *validator.Validate
	logger       *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*usecase.CheckoutSession

	// background tracks the post-confirmation settlement goroutines.
	background sync.WaitGroup
}

// NewCheckoutService creates the checkout orchestrator.
func NewCheckoutService(
	cart usecase.CartUsecase,
	orderGateway service.OrderGateway,
	proofStore service.ProofStore,
	publisher service.EventPublisher,
	qrService service.QRCodeService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		cart:         cart,
		orderGateway: orderGateway,
		proofStore:   proofStore,
		publisher:    publisher,
		qrService:    qrService,
		payment:      cfg.Payment,
		validate:     validator.New(),
		logger:       logger,
		sessions:     make(map[string]*usecase.CheckoutSession),
	}
}

// Start opens a session over the cart's current projection. The
// projection is frozen into the draft; later catalog changes do not
// reprice an in-flight checkout.
func (s *checkoutService) Start(ctx context.Context, cartID string) (*usecase.CheckoutSession, error) {
	projection, err := s.cart.View(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(projection.Lines) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}

	session := &usecase.CheckoutSession{
		ID:    uuid.New().String(),
		State: entity.CheckoutDetails,
		Draft: entity.OrderDraft{
			CartID:     cartID,
			Lines:      projection.Lines,
			Subtotal:   projection.Subtotal,
			Shipping:   projection.Shipping,
			GrandTotal: projection.GrandTotal,
			CreatedAt:  time.Now(),
		},
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Checkout session started",
		slog.String("session_id", session.ID),
		slog.String("cart_id", cartID),
		slog.Int("lines", len(projection.Lines)),
	)

	return cloneSession(session), nil
}

// Session returns a session by id.
func (s *checkoutService) Session(_ context.Context, sessionID string) (*usecase.CheckoutSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainerrors.ErrCheckoutSessionNotFound
	}

	return cloneSession(session), nil
}

// SubmitDetails validates the contact fields. From Details it advances to
// Payment; re-submitting from a later step updates the fields in place.
func (s *checkoutService) SubmitDetails(_ context.Context, sessionID string, contact entity.ContactInfo) (*usecase.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainerrors.ErrCheckoutSessionNotFound
	}

	switch session.State {
	case entity.CheckoutDetails, entity.CheckoutPayment, entity.CheckoutReview:
	default:
		return nil, domainerrors.ErrInvalidCheckoutState
	}

	fields := s.validateContact(&contact)
	if len(fields) > 0 {
		session.Errors = fields

		return cloneSession(session), domainerrors.NewValidationError(fields)
	}

	session.Draft.Contact = contact
	session.Errors = nil
	if session.State == entity.CheckoutDetails {
		session.State = entity.CheckoutPayment
	}

	return cloneSession(session), nil
}

// AttachProof validates and stages a proof-of-payment file. A previously
// staged file for the session is replaced.
func (s *checkoutService) AttachProof(ctx context.Context, sessionID string, file *usecase.ProofFile) (*usecase.CheckoutSession, error) {
	if err := validateProofFile(file); err != nil {
		return nil, err
	}

	key, err := s.proofStore.Save(ctx, file.FileName, file.ContentType, file.Content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok || session.State != entity.CheckoutPayment {
		s.mu.Unlock()
		s.discardStaged(ctx, key)
		if !ok {
			return nil, domainerrors.ErrCheckoutSessionNotFound
		}

		return nil, domainerrors.ErrInvalidCheckoutState
	}

	var previousKey string
	if session.Draft.Proof != nil {
		previousKey = session.Draft.Proof.StorageKey
	}

	proof := &entity.ProofOfPayment{
		StorageKey:  key,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Size:        file.Size,
	}
	if session.Draft.Proof != nil {
		proof.TransactionRef = session.Draft.Proof.TransactionRef
		proof.SenderLast4 = session.Draft.Proof.SenderLast4
	}
	session.Draft.Proof = proof
	cloned := cloneSession(session)
	s.mu.Unlock()

	if previousKey != "" {
		s.discardStaged(ctx, previousKey)
	}

	return cloned, nil
}

// RemoveProof discards the staged proof file.
func (s *checkoutService) RemoveProof(ctx context.Context, sessionID string) (*usecase.CheckoutSession, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()

		return nil, domainerrors.ErrCheckoutSessionNotFound
	}
	if session.State != entity.CheckoutPayment {
		s.mu.Unlock()

		return nil, domainerrors.ErrInvalidCheckoutState
	}

	var key string
	if session.Draft.Proof != nil {
		key = session.Draft.Proof.StorageKey
		session.Draft.Proof = nil
	}
	cloned := cloneSession(session)
	s.mu.Unlock()

	if key != "" {
		s.discardStaged(ctx, key)
	}

	return cloned, nil
}

// SelectPayment records the method and verification metadata and enforces
// the proof gate before advancing Payment -> Review. On a gate failure
// everything entered so far stays on the session.
func (s *checkoutService) SelectPayment(_ context.Context, sessionID string, input *usecase.PaymentInput) (*usecase.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainerrors.ErrCheckoutSessionNotFound
	}
	if session.State != entity.CheckoutPayment {
		return nil, domainerrors.ErrInvalidCheckoutState
	}
	if !input.Method.Valid() {
		return nil, domainerrors.ErrInvalidPaymentMethod
	}

	session.Draft.PaymentMethod = input.Method
	transactionRef := strings.TrimSpace(input.TransactionRef)
	senderLast4 := strings.TrimSpace(input.SenderLast4)

	if input.Method.RequiresProof() {
		var missing []string
		if session.Draft.Proof == nil {
			missing = append(missing, constants.MissingProofScreenshot)
		}
		if len(transactionRef) < constants.MinTransactionRefLength {
			missing = append(missing, constants.MissingTransactionRef)
		}
		if !senderLast4Pattern.MatchString(senderLast4) {
			missing = append(missing, constants.MissingSenderLast4)
		}
		if len(missing) > 0 {
			// Keep what was entered so the customer only fills the gaps.
			if session.Draft.Proof != nil {
				session.Draft.Proof.TransactionRef = transactionRef
				session.Draft.Proof.SenderLast4 = senderLast4
			}

			return cloneSession(session), domainerrors.NewMissingProofError(missing)
		}

		session.Draft.Proof.TransactionRef = transactionRef
		session.Draft.Proof.SenderLast4 = senderLast4
	} else if session.Draft.Proof != nil {
		session.Draft.Proof.TransactionRef = transactionRef
		session.Draft.Proof.SenderLast4 = senderLast4
	}

	session.Draft.AdvanceAmount = pricing.AdvanceAmount(session.Draft.GrandTotal, input.Method)
	session.State = entity.CheckoutReview

	return cloneSession(session), nil
}

// Back steps Review -> Payment or Payment -> Details, keeping all data.
func (s *checkoutService) Back(_ context.Context, sessionID string) (*usecase.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainerrors.ErrCheckoutSessionNotFound
	}

	switch session.State {
	case entity.CheckoutReview:
		session.State = entity.CheckoutPayment
	case entity.CheckoutPayment:
		session.State = entity.CheckoutDetails
	default:
		return nil, domainerrors.ErrInvalidCheckoutState
	}

	return cloneSession(session), nil
}

// Submit drives the three-phase submission. Phase one, order creation,
// blocks the caller; a failure puts the session back in Review with the
// upstream message attached. After a success the cart is cleared, the
// confirmation is returned immediately, and phases two and three settle
// in the background.
func (s *checkoutService) Submit(ctx context.Context, sessionID string) (*entity.OrderConfirmation, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()

		return nil, domainerrors.ErrCheckoutSessionNotFound
	}
	if session.State != entity.CheckoutReview {
		s.mu.Unlock()

		return nil, domainerrors.ErrInvalidCheckoutState
	}
	session.State = entity.CheckoutSubmitting
	draft := session.Draft
	s.mu.Unlock()

	orderID, err := s.orderGateway.CreateOrder(ctx, buildOrderRequest(&draft))
	if err != nil {
		s.mu.Lock()
		session.State = entity.CheckoutReview
		s.mu.Unlock()

		s.logger.Error("Order creation failed",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)

		return nil, err
	}

	if clearErr := s.cart.Clear(ctx, draft.CartID); clearErr != nil {
		// The order exists upstream; a stale cart is the lesser problem.
		s.logger.Error("Cart clear after order creation failed",
			slog.String("cart_id", draft.CartID),
			slog.String("order_id", orderID),
			slog.Any("error", clearErr),
		)
	}

	s.mu.Lock()
	session.State = entity.CheckoutSucceeded
	s.mu.Unlock()

	s.logger.Info("Order created",
		slog.String("session_id", sessionID),
		slog.String("order_id", orderID),
		slog.String("payment_method", string(draft.PaymentMethod)),
		slog.Float64("total", draft.GrandTotal),
	)

	// Phases two and three must survive the request context.
	backgroundCtx := context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.settle(backgroundCtx, orderID, &draft)
	}()

	return &entity.OrderConfirmation{
		OrderID:       orderID,
		Name:          draft.Contact.Name,
		AdvanceAmount: draft.AdvanceAmount,
	}, nil
}

// PaymentQR renders the receiving account of the session's method with
// the advance amount as a PNG QR code.
func (s *checkoutService) PaymentQR(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.RUnlock()

		return nil, domainerrors.ErrCheckoutSessionNotFound
	}
	method := session.Draft.PaymentMethod
	total := session.Draft.GrandTotal
	advance := session.Draft.AdvanceAmount
	s.mu.RUnlock()

	account := s.payment.Account(method)
	if account == nil {
		return nil, domainerrors.ErrInvalidPaymentMethod
	}

	amount := advance
	if amount == 0 {
		amount = pricing.AdvanceAmount(total, method)
	}

	return s.qrService.GeneratePaymentQR(account, amount)
}

// WaitBackground blocks until all in-flight settlement goroutines finish.
// Used by graceful shutdown.
func (s *checkoutService) WaitBackground() {
	s.background.Wait()
}

// settle runs the best-effort tail of a submission: the proof upload,
// the per-line stock decrements, and the order-placed event. Failures
// are logged and never surfaced to the customer.
func (s *checkoutService) settle(ctx context.Context, orderID string, draft *entity.OrderDraft) {
	logger := s.logger.With(slog.String("order_id", orderID))

	if draft.Proof != nil {
		s.uploadProof(ctx, orderID, draft.Proof, logger)
	}

	// Every line is attempted regardless of sibling failures.
	var waitGroup sync.WaitGroup
	for i := range draft.Lines {
		line := draft.Lines[i]
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			err := s.orderGateway.DecrementStock(ctx, &service.StockDecrement{
				ProductID: line.ProductID,
				Color:     line.Variant,
				Quantity:  line.Quantity,
			})
			if err != nil {
				logger.Error("Stock decrement failed",
					slog.String("product_id", line.ProductID),
					slog.String("color", line.Variant),
					slog.Int("quantity", line.Quantity),
					slog.Any("error", err),
				)
			}
		}()
	}
	waitGroup.Wait()

	event := &service.OrderPlacedEvent{
		OrderID:       orderID,
		CartID:        draft.CartID,
		PaymentMethod: string(draft.PaymentMethod),
		Total:         draft.GrandTotal,
		AdvanceAmount: draft.AdvanceAmount,
		ItemCount:     len(draft.Lines),
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		logger.Error("Order event publish failed", slog.Any("error", err))
	}
}

func (s *checkoutService) uploadProof(ctx context.Context, orderID string, proof *entity.ProofOfPayment, logger *slog.Logger) {
	content, err := s.proofStore.Open(ctx, proof.StorageKey)
	if err != nil {
		logger.Error("Staged proof open failed",
			slog.String("storage_key", proof.StorageKey),
			slog.Any("error", err),
		)

		return
	}
	defer func() {
		if closeErr := content.Close(); closeErr != nil {
			logger.Warn("Staged proof close failed", slog.Any("error", closeErr))
		}
	}()

	err = s.orderGateway.UploadProof(ctx, &service.ProofUpload{
		OrderID:        orderID,
		FileName:       proof.FileName,
		ContentType:    proof.ContentType,
		TransactionRef: proof.TransactionRef,
		SenderLast4:    proof.SenderLast4,
		Content:        content,
	})
	if err != nil {
		logger.Error("Proof upload failed",
			slog.String("storage_key", proof.StorageKey),
			slog.Any("error", err),
		)

		return
	}

	s.discardStaged(ctx, proof.StorageKey)
}

func (s *checkoutService) discardStaged(ctx context.Context, key string) {
	if err := s.proofStore.Delete(ctx, key); err != nil {
		s.logger.Warn("Staged proof delete failed",
			slog.String("storage_key", key),
			slog.Any("error", err),
		)
	}
}

func (s *checkoutService) validateContact(contact *entity.ContactInfo) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(contact.Name) == "" {
		fields["name"] = "Name is required"
	}
	if !phonePattern.MatchString(strings.TrimSpace(contact.Phone)) {
		fields["phone"] = "Enter a valid Pakistani mobile number (+923XXXXXXXXX)"
	}
	if email := strings.TrimSpace(contact.Email); email == "" {
		fields["email"] = "Email is required"
	} else if err := s.validate.Var(email, "email"); err != nil {
		fields["email"] = "Enter a valid email address"
	}
	if strings.TrimSpace(contact.Address) == "" {
		fields["address"] = "Address is required"
	}
	if strings.TrimSpace(contact.City) == "" {
		fields["city"] = "City is required"
	}
	if strings.TrimSpace(contact.State) == "" {
		fields["state"] = "State is required"
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}

func validateProofFile(file *usecase.ProofFile) error {
	contentType := strings.ToLower(strings.TrimSpace(file.ContentType))
	if _, ok := allowedProofTypes[contentType]; !ok {
		// Some clients send a generic content type; fall back to the
		// file extension before rejecting.
		switch strings.ToLower(filepath.Ext(file.FileName)) {
		case ".jpg", ".jpeg", ".png", ".pdf":
		default:
			return domainerrors.ErrProofInvalidType
		}
	}

	if file.Size > constants.MaxProofFileSize {
		return domainerrors.ErrProofTooLarge
	}

	return nil
}

func buildOrderRequest(draft *entity.OrderDraft) *service.OrderRequest {
	items := make([]service.OrderItem, 0, len(draft.Lines))
	for i := range draft.Lines {
		line := &draft.Lines[i]
		items = append(items, service.OrderItem{
			ProductID: line.ProductID,
			Key:       line.Key,
			Name:      line.Name,
			Image:     line.Image,
			Variant:   line.Variant,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.LineTotal,
		})
	}

	req := &service.OrderRequest{
		Name:            draft.Contact.Name,
		Phone:           draft.Contact.Phone,
		Email:           draft.Contact.Email,
		Address:         draft.Contact.Address,
		City:            draft.Contact.City,
		State:           draft.Contact.State,
		Note:            draft.Contact.Note,
		PaymentMethod:   draft.PaymentMethod,
		Items:           items,
		Subtotal:        draft.Subtotal,
		Shipping:        draft.Shipping,
		Total:           draft.GrandTotal,
		AdvanceRequired: draft.AdvanceAmount,
	}
	if draft.Proof != nil {
		req.TransactionRef = draft.Proof.TransactionRef
		req.SenderLast4 = draft.Proof.SenderLast4
	}

	return req
}

func cloneSession(session *usecase.CheckoutSession) *usecase.CheckoutSession {
	cloned := *session
	if session.Draft.Proof != nil {
		proof := *session.Draft.Proof
		cloned.Draft.Proof = &proof
	}
	if session.Errors != nil {
		errs := make(map[string]string, len(session.Errors))
		for field, msg := range session.Errors {
			errs[field] = msg
		}
		cloned.Errors = errs
	}

	return &cloned
}
