package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status of a payment from the booking's point of view
type Status string

const (
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

// Result of dispatching a payment
type Result struct {
	Method         string     `json:"method"`
	Status         Status     `json:"status"`
	TransactionRef string     `json:"transaction_ref"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
}

// Dispatcher validates method-specific details and settles the payment.
// Immediate methods come back paid; deferred methods come back unpaid
// pending external confirmation.
type Dispatcher interface {
	Methods() []Method
	Get(name string) (Method, error)
	Dispatch(ctx context.Context, methodName string, details Details) (*Result, error)
}

type dispatcher struct {
	methods map[string]Method
	order   []string
}

func NewDispatcher() Dispatcher {
	d := &dispatcher{methods: make(map[string]Method)}
	for _, method := range []Method{creditCard{}, bankTransfer{}, eWallet{}, momo{}} {
		d.methods[method.Name()] = method
		d.order = append(d.order, method.Name())
	}
	return d
}

func (d *dispatcher) Methods() []Method {
	result := make([]Method, 0, len(d.order))
	for _, name := range d.order {
		result = append(result, d.methods[name])
	}
	return result
}

func (d *dispatcher) Get(name string) (Method, error) {
	method, ok := d.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return method, nil
}

func (d *dispatcher) Dispatch(ctx context.Context, methodName string, details Details) (*Result, error) {
	method, err := d.Get(methodName)
	if err != nil {
		return nil, err
	}

	if err := method.ValidateDetails(details); err != nil {
		return nil, err
	}

	result := &Result{
		Method:         method.Name(),
		TransactionRef: "TXN-" + uuid.NewString(),
	}

	if method.Settlement() == SettlementImmediate {
		now := time.Now()
		result.Status = StatusPaid
		result.PaidAt = &now
	} else {
		result.Status = StatusUnpaid
	}

	return result, nil
}
