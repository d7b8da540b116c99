package register

import (
	"context"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const tracerName = "github.com/govalues/register"

var errInsufficientCash = errors.New("cash tendered is less than price")

// Result is the outcome of a transaction: the drawer status and the change to
// hand back to the customer.
//
// Change lists the paid-out units from the largest denomination to the
// smallest, omitting denominations that are not used.
// When Status is [Closed], Change is the whole drawer in canonical order,
// zero amounts included.
// When Status is [InsufficientFunds], Change is empty.
// Change is never nil, so it encodes to JSON as [] rather than null.
type Result struct {
	Status Status `json:"status"`
	Change []Unit `json:"change"`
}

// Option configures a [Calculator].
type Option func(*Calculator)

// WithLogger sets the logger used for per-transaction debug entries.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTracerProvider sets the provider of the tracer that wraps every
// computation in a span.
// A nil provider is ignored.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Calculator) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// Calculator computes change for point-of-sale transactions.
// It holds no drawer state; every call works on a private copy of its input.
// Calculator is safe for concurrent use by multiple goroutines.
type Calculator struct {
	log    *zap.Logger
	tracer trace.Tracer
}

// NewCalculator returns a calculator that discards logs and traces unless
// configured otherwise.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		log:    zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = NewCalculator()

// Compute is like [Calculator.Compute] but uses a calculator without logging
// or tracing.
func Compute(price, cash decimal.Decimal, drawer Drawer) (Result, error) {
	return defaultCalculator.Compute(context.Background(), price, cash, drawer)
}

// ComputeFloat64 is like [Compute] but accepts the price and the cash
// tendered as floats.
// See also constructor [DecimalFromFloat64].
func ComputeFloat64(price, cash float64, drawer Drawer) (Result, error) {
	p, err := DecimalFromFloat64(price)
	if err != nil {
		return Result{}, fmt.Errorf("price: %w", err)
	}
	c, err := DecimalFromFloat64(cash)
	if err != nil {
		return Result{}, fmt.Errorf("cash: %w", err)
	}
	return Compute(p, c, drawer)
}

// Compute returns the status of the drawer and the change owed for a
// transaction with the given price and cash tendered.
// The drawer is not modified; use [Drawer.Sub] to apply the change to it.
//
// The change owed, cash - price, is converted to cents and compared with the
// total of the drawer:
//   - less than the total: the change is made greedily, taking as much of
//     the largest denomination as fits before moving to the next one.
//     If the greedy pass cannot reach the exact amount, the status is
//     [InsufficientFunds]. Otherwise it is [Open].
//   - equal to the total: the status is [Closed] and the change is the
//     whole drawer.
//   - greater than the total: the status is [InsufficientFunds].
//
// Compute returns an error if:
//   - the price is negative or the cash is less than the price;
//   - the drawer fails [Drawer.Validate];
//   - an amount in cents does not fit into int64.
func (c *Calculator) Compute(ctx context.Context, price, cash decimal.Decimal, drawer Drawer) (Result, error) {
	_, span := c.tracer.Start(ctx, "register.Compute")
	defer span.End()

	res, owed, avail, err := compute(price, cash, drawer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Debug("rejected transaction",
			zap.Stringer("price", price),
			zap.Stringer("cash", cash),
			zap.Error(err))
		return Result{}, err
	}

	span.SetAttributes(
		attribute.String("register.status", res.Status.String()),
		attribute.Int64("register.change_owed_cents", owed),
		attribute.Int64("register.funds_available_cents", avail),
	)
	c.log.Debug("computed change",
		zap.Stringer("status", res.Status),
		zap.Int64("change_owed_cents", owed),
		zap.Int64("funds_available_cents", avail),
		zap.Int("change_units", len(res.Change)))
	return res, nil
}

func compute(price, cash decimal.Decimal, drawer Drawer) (res Result, owed, avail int64, err error) {
	if price.IsNeg() {
		return Result{}, 0, 0, fmt.Errorf("price %v: %w", price, errNegativeAmount)
	}
	if cash.Cmp(price) < 0 {
		return Result{}, 0, 0, fmt.Errorf("computing [%v - %v]: %w", cash, price, errInsufficientCash)
	}
	diff, err := cash.Sub(price)
	if err != nil {
		return Result{}, 0, 0, fmt.Errorf("computing [%v - %v]: %w", cash, price, err)
	}
	owed, err = toMinorUnits(diff)
	if err != nil {
		return Result{}, 0, 0, err
	}
	if err = drawer.Validate(); err != nil {
		return Result{}, 0, 0, err
	}
	work, avail, err := drawer.minorUnits()
	if err != nil {
		return Result{}, 0, 0, err
	}

	switch {
	case avail < owed:
		return insufficient(), owed, avail, nil
	case avail == owed:
		change := make([]Unit, len(drawer))
		for i, u := range drawer {
			change[i] = unitFromMinorUnits(u.Denom, work[i])
		}
		return Result{Status: Closed, Change: change}, owed, avail, nil
	}

	change, ok := countChange(drawer, work, owed)
	if !ok {
		return insufficient(), owed, avail, nil
	}
	return Result{Status: Open, Change: change}, owed, avail, nil
}

func insufficient() Result {
	return Result{Status: InsufficientFunds, Change: []Unit{}}
}

// countChange takes as much of each denomination as fits into the change
// owed, from the largest denomination to the smallest, and reports whether
// the taken amounts add up to the change owed exactly.
// The working copy is debited in place.
func countChange(drawer Drawer, work []int64, owed int64) ([]Unit, bool) {
	change := []Unit{}
	counted := int64(0)
	for i := len(drawer) - 1; i >= 0; i-- {
		face := drawer[i].Denom.MinorUnits()
		n := min((owed-counted)/face, work[i]/face)
		if n <= 0 {
			continue
		}
		taken := n * face
		counted += taken
		work[i] -= taken
		change = append(change, unitFromMinorUnits(drawer[i].Denom, taken))
	}
	return change, counted == owed
}
