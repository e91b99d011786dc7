package metrics

import "github.com/prometheus/client_golang/prometheus"

// OpsMetrics counts the business operations the ledger engines perform.
type OpsMetrics struct {
	ordersPlaced         prometheus.Counter
	reservationConflicts prometheus.Counter
	invoicesIssued       prometheus.Counter
	paymentsRecorded     prometheus.Counter
}

// NewOpsMetrics registers the operation counters on the provided registerer.
func NewOpsMetrics(reg prometheus.Registerer) *OpsMetrics {
	if reg == nil {
		return &OpsMetrics{}
	}
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tienda_orders_placed_total",
		Help: "Orders successfully placed.",
	})
	reservationConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tienda_reservation_conflicts_total",
		Help: "Order attempts rejected because stock ran out.",
	})
	invoicesIssued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tienda_invoices_issued_total",
		Help: "Invoices issued.",
	})
	paymentsRecorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tienda_payments_recorded_total",
		Help: "Customer payments recorded.",
	})
	reg.MustRegister(ordersPlaced, reservationConflicts, invoicesIssued, paymentsRecorded)
	return &OpsMetrics{
		ordersPlaced:         ordersPlaced,
		reservationConflicts: reservationConflicts,
		invoicesIssued:       invoicesIssued,
		paymentsRecorded:     paymentsRecorded,
	}
}

func (m *OpsMetrics) IncOrdersPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

func (m *OpsMetrics) IncReservationConflicts() {
	if m == nil || m.reservationConflicts == nil {
		return
	}
	m.reservationConflicts.Inc()
}

func (m *OpsMetrics) IncInvoicesIssued() {
	if m == nil || m.invoicesIssued == nil {
		return
	}
	m.invoicesIssued.Inc()
}

func (m *OpsMetrics) IncPaymentsRecorded() {
	if m == nil || m.paymentsRecorded == nil {
		return
	}
	m.paymentsRecorded.Inc()
}
