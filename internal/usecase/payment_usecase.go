package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrInvalidPaymentID      = errors.New("invalid payment id")
	ErrInvalidRegistrationID = errors.New("invalid registration_id")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrRegistrationNotOpen   = errors.New("registration not open for payment")
)

// InitiationRequest carries the caller's initiation parameters. The amount is
// never part of it: the registration record is the source of truth for what
// is owed.
type InitiationRequest struct {
	Gateway   string
	ReturnURL string
	CancelURL string
	Currency  string
}

// IPaymentUseCase encapsulates payment creation and provider initiation.

type IPaymentUseCase interface {
	CreateAndInitiate(ctx context.Context, registrationID string, req InitiationRequest) (entities.Payment, entities.InitResult, error)
	Initiate(ctx context.Context, paymentID string, opts entities.InitOptions) (entities.Payment, entities.InitResult, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByRegistrationID(ctx context.Context, registrationID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	regRepo  interfaces.IRegistrationRepository
	selector interfaces.IGatewaySelector
	locks    *PaymentLocks
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, regRepo interfaces.IRegistrationRepository, selector interfaces.IGatewaySelector, locks *PaymentLocks) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, regRepo: regRepo, selector: selector, locks: locks}
}

// CreateAndInitiate creates the payment record for a registration and runs
// provider initiation in one go. The gateway identifier is resolved before
// anything is written so an unsupported gateway never leaves a dangling
// payment behind.
func (u *PaymentUseCase) CreateAndInitiate(ctx context.Context, registrationID string, req InitiationRequest) (entities.Payment, entities.InitResult, error) {
	registrationID = strings.TrimSpace(registrationID)
	log.Printf("[payment][usecase] create-and-initiate start registration_id=%s gateway=%s", registrationID, req.Gateway)
	if registrationID == "" {
		return entities.Payment{}, entities.InitResult{}, ErrInvalidRegistrationID
	}

	adapter, err := u.selector.Resolve(req.Gateway)
	if err != nil {
		log.Printf("[payment][usecase] gateway resolution failed registration_id=%s gateway=%q err=%v", registrationID, req.Gateway, err)
		return entities.Payment{}, entities.InitResult{}, err
	}

	reg, err := u.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading registration registration_id=%s err=%v", registrationID, err)
		return entities.Payment{}, entities.InitResult{}, err
	}
	if reg.ID == "" {
		return entities.Payment{}, entities.InitResult{}, ErrRegistrationNotFound
	}
	if reg.Status == entities.RegistrationStatusCancelled {
		log.Printf("[payment][usecase] registration not payable registration_id=%s status=%s", registrationID, reg.Status)
		return entities.Payment{}, entities.InitResult{}, ErrRegistrationNotOpen
	}

	currency := reg.Currency
	if req.Currency != "" {
		currency = req.Currency
	}

	now := time.Now().UTC()
	p := entities.Payment{
		ID:               uuid.NewString(),
		RegistrationID:   reg.ID,
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		Gateway:          adapter.Descriptor().Slug,
		Amount:           reg.AmountDue,
		Currency:         currency,
		PaymentReference: newPaymentReference(),
		Status:           entities.PaymentStatusPending,
		GatewayResponse:  entities.GatewayResponse{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment create failed registration_id=%s err=%v", registrationID, err)
		return entities.Payment{}, entities.InitResult{}, err
	}
	log.Printf("[payment][usecase] payment created payment_id=%s reference=%s amount=%d %s", created.ID, created.PaymentReference, created.Amount, created.Currency)

	return u.initiate(ctx, created, adapter, entities.InitOptions{
		ReturnURL: req.ReturnURL,
		CancelURL: req.CancelURL,
		Currency:  req.Currency,
	})
}

// Initiate re-runs provider initiation for an existing payment, e.g. after a
// provider outage. Terminal payments are rejected, not retried.
func (u *PaymentUseCase) Initiate(ctx context.Context, paymentID string, opts entities.InitOptions) (entities.Payment, entities.InitResult, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, entities.InitResult{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, entities.InitResult{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, entities.InitResult{}, ErrPaymentNotFound
	}

	adapter, err := u.selector.Resolve(p.Gateway)
	if err != nil {
		return entities.Payment{}, entities.InitResult{}, err
	}
	return u.initiate(ctx, p, adapter, opts)
}

func (u *PaymentUseCase) initiate(ctx context.Context, p entities.Payment, adapter interfaces.IPaymentGateway, opts entities.InitOptions) (entities.Payment, entities.InitResult, error) {
	if p.Status.IsTerminal() {
		log.Printf("[payment][usecase] initiation on terminal payment rejected payment_id=%s status=%s", p.ID, p.Status)
		return entities.Payment{}, entities.InitResult{}, fmt.Errorf("%w: payment %s is %s", entities.ErrAlreadyCompleted, p.ID, p.Status)
	}

	unlock := u.locks.Lock(p.ID)
	defer unlock()

	before := p.Status
	result, err := adapter.InitializePayment(ctx, &p, opts)
	if err != nil {
		log.Printf("[payment][usecase] initiation failed payment_id=%s gateway=%s err=%v", p.ID, p.Gateway, err)
		return entities.Payment{}, entities.InitResult{}, err
	}

	if len(result.Evidence) > 0 {
		ns := p.EvidenceNamespace(entities.ChannelInitialization)
		p.GatewayResponse = p.GatewayResponse.Merge(ns, result.Evidence)
		if err := u.repo.AppendGatewayResponse(ctx, p.ID, ns, p.GatewayResponse[ns]); err != nil {
			log.Printf("[payment][usecase] initiation evidence write failed payment_id=%s err=%v", p.ID, err)
			return entities.Payment{}, entities.InitResult{}, err
		}
	}

	// Persist the adapter's transitional write, if any. Adapters may only
	// move pending -> processing; anything else is ignored here.
	if before == entities.PaymentStatusPending && p.Status == entities.PaymentStatusProcessing {
		applied, err := u.repo.TransitionStatus(ctx, p.ID, before, entities.PaymentStatusProcessing, entities.PaymentStatusUpdate{})
		if err != nil {
			return entities.Payment{}, entities.InitResult{}, err
		}
		if !applied {
			log.Printf("[payment][usecase] transitional write lost race payment_id=%s", p.ID)
		}
	}

	log.Printf("[payment][usecase] initiation success payment_id=%s gateway=%s kind=%s", p.ID, p.Gateway, result.Kind)
	return p, result, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByRegistrationID(ctx context.Context, registrationID string) ([]entities.Payment, error) {
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return nil, ErrInvalidRegistrationID
	}
	return u.repo.ListByRegistrationID(ctx, registrationID)
}

// newPaymentReference generates the provider-facing correlation reference.
// Short enough for providers that cap reference length, unique enough to
// never collide within a deployment.
func newPaymentReference() string {
	return "SCE-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}
