package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendaops/tienda-backend/pkg/db/models"
	"github.com/tiendaops/tienda-backend/pkg/enums"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
	"github.com/tiendaops/tienda-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RecordPaymentInput carries the data for a customer payment.
type RecordPaymentInput struct {
	CustomerID  uuid.UUID
	AmountCents int
	Method      string
	Notes       *string
}

// Service defines the payment engine operations.
type Service interface {
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Payment, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.OpsMetrics
}

// NewService builds a payment service with the required dependencies.
func NewService(repo Repository, tx txRunner, ops *metrics.OpsMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, metrics: ops}, nil
}

// RecordPayment appends a payment and decrements the customer's balance,
// flooring at zero so overpayments are absorbed. Both writes share one
// transaction.
func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error) {
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	method, err := enums.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	var recorded *models.Payment
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindCustomer(ctx, input.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("customer %s not found", input.CustomerID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading customer")
		}

		payment := &models.Payment{
			ID:          uuid.New(),
			CustomerID:  input.CustomerID,
			AmountCents: input.AmountCents,
			Method:      method,
			Notes:       input.Notes,
		}
		if _, err := repo.Create(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating payment")
		}
		if err := repo.SettleBalance(ctx, input.CustomerID, input.AmountCents); err != nil {
			return err
		}
		recorded = payment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.metrics.IncPaymentsRecorded()
	return recorded, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Payment, error) {
	payments, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing payments")
	}
	return payments, nil
}
