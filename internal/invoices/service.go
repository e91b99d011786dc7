package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

// CreateInvoiceInput carries the data needed to issue an invoice for an order.
type CreateInvoiceInput struct {
	OrderID       uuid.UUID
	PaymentMethod string
	// PaidCents nil means the invoice is paid in full.
	PaidCents *int
}

// Service defines the invoicing engine operations.
type Service interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error)
	Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.OpsMetrics
}

// NewService builds an invoicing service with the required dependencies.
func NewService(repo Repository, tx txRunner, ops *metrics.OpsMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, metrics: ops}, nil
}

// CreateInvoice issues an invoice for an order and, when it is not fully
// paid, accrues the shortfall onto the customer's balance. The invoice row
// and the balance increment land in the same transaction.
func (s *service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if input.PaidCents != nil && *input.PaidCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid amount cannot be negative")
	}

	var issued *models.Invoice
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", input.OrderID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
		}

		paid := order.TotalCents
		if input.PaidCents != nil {
			paid = *input.PaidCents
		}
		balanceDue := order.TotalCents - paid
		if balanceDue < 0 {
			balanceDue = 0
		}

		invoice := &models.Invoice{
			ID:              uuid.New(),
			InvoiceNumber:   newInvoiceNumber(),
			OrderID:         order.ID,
			CustomerID:      order.CustomerID,
			TotalCents:      order.TotalCents,
			PaymentMethod:   method,
			PaidCents:       paid,
			BalanceDueCents: balanceDue,
		}
		if _, err := repo.Create(ctx, invoice); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating invoice")
		}

		if balanceDue > 0 {
			if err := repo.AccrueBalance(ctx, order.CustomerID, balanceDue); err != nil {
				return err
			}
		}

		loaded, err := repo.FindByID(ctx, invoice.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading invoice")
		}
		issued = loaded
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.metrics.IncInvoicesIssued()
	return issued, nil
}

func (s *service) Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("invoice %s not found", invoiceID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading invoice")
	}
	return invoice, nil
}

func (s *service) List(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing invoices")
	}
	return invoices, nil
}

func newInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("INV-%s-%s", time.Now().UTC().Format("20060102150405"), suffix)
}
