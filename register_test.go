package register

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// emptyDrawer returns a drawer in canonical order with every amount set to zero
// except the given ones.
func emptyDrawer(units ...Unit) Drawer {
	d := make(Drawer, 0, 9)
	for _, denom := range Denominations() {
		u := unitFromMinorUnits(denom, 0)
		for _, v := range units {
			if v.Denom == denom {
				u = v
			}
		}
		d = append(d, u)
	}
	return d
}

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		price  string
		cash   string
		drawer Drawer
		want   string
	}{
		{
			name:   "two quarters",
			price:  "19.5",
			cash:   "20",
			drawer: sampleDrawer(),
			want:   `{"status":"OPEN","change":[["QUARTER",0.5]]}`,
		},
		{
			name:   "largest denominations first",
			price:  "3.26",
			cash:   "100",
			drawer: sampleDrawer(),
			want:   `{"status":"OPEN","change":[["TWENTY",60],["TEN",20],["FIVE",15],["ONE",1],["QUARTER",0.5],["DIME",0.2],["PENNY",0.04]]}`,
		},
		{
			name:   "drawer total below change owed",
			price:  "19.5",
			cash:   "20",
			drawer: emptyDrawer(MustNewUnit("PENNY", "0.01")),
			want:   `{"status":"INSUFFICIENT_FUNDS","change":[]}`,
		},
		{
			name:   "change cannot be composed",
			price:  "19.5",
			cash:   "20",
			drawer: emptyDrawer(MustNewUnit("PENNY", "0.01"), MustNewUnit("ONE", "1")),
			want:   `{"status":"INSUFFICIENT_FUNDS","change":[]}`,
		},
		{
			name:   "change drains the drawer",
			price:  "19.5",
			cash:   "20",
			drawer: emptyDrawer(MustNewUnit("PENNY", "0.5")),
			want:   `{"status":"CLOSED","change":[["PENNY",0.5],["NICKEL",0],["DIME",0],["QUARTER",0],["ONE",0],["FIVE",0],["TEN",0],["TWENTY",0],["ONE HUNDRED",0]]}`,
		},
		{
			name:   "exact payment",
			price:  "20",
			cash:   "20",
			drawer: sampleDrawer(),
			want:   `{"status":"OPEN","change":[]}`,
		},
		{
			name:   "exact payment into an empty drawer",
			price:  "20",
			cash:   "20",
			drawer: emptyDrawer(),
			want:   `{"status":"CLOSED","change":[["PENNY",0],["NICKEL",0],["DIME",0],["QUARTER",0],["ONE",0],["FIVE",0],["TEN",0],["TWENTY",0],["ONE HUNDRED",0]]}`,
		},
		{
			name:   "no drawer at all",
			price:  "1",
			cash:   "2",
			drawer: nil,
			want:   `{"status":"INSUFFICIENT_FUNDS","change":[]}`,
		},
		{
			name:  "partial drawer",
			price: "0.65",
			cash:  "5",
			drawer: Drawer{
				MustNewUnit("DIME", "1"),
				MustNewUnit("QUARTER", "0.25"),
				MustNewUnit("ONE", "10"),
			},
			want: `{"status":"OPEN","change":[["ONE",4],["QUARTER",0.25],["DIME",0.1]]}`,
		},
		{
			name:  "greedy skips what it cannot use",
			price: "0.7",
			cash:  "1",
			drawer: Drawer{
				MustNewUnit("DIME", "0.3"),
				MustNewUnit("QUARTER", "0.25"),
			},
			want: `{"status":"INSUFFICIENT_FUNDS","change":[]}`,
		},
		{
			name:   "sub-cent price is rounded",
			price:  "19.499",
			cash:   "20",
			drawer: sampleDrawer(),
			want:   `{"status":"OPEN","change":[["QUARTER",0.5]]}`,
		},
		{
			name:   "half a cent is rounded up",
			price:  "19.495",
			cash:   "20",
			drawer: sampleDrawer(),
			want:   `{"status":"OPEN","change":[["QUARTER",0.5],["PENNY",0.01]]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compute(decimal.MustParse(tt.price), decimal.MustParse(tt.cash), tt.drawer)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, mustMarshal(t, got))
			assert.NotNil(t, got.Change)
		})
	}
}

func TestCompute_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		price  string
		cash   string
		drawer Drawer
	}{
		{"negative price", "-1", "20", sampleDrawer()},
		{"cash below price", "20", "19.5", sampleDrawer()},
		{"negative drawer amount", "19.5", "20", Drawer{MustNewUnit("PENNY", "-1")}},
		{"drawer out of order", "19.5", "20", Drawer{MustNewUnit("ONE", "1"), MustNewUnit("PENNY", "1")}},
		{"duplicate denomination", "19.5", "20", Drawer{MustNewUnit("ONE", "1"), MustNewUnit("ONE", "1")}},
		{"unknown denomination", "19.5", "20", Drawer{{Denom: Denomination(9), Amount: decimal.MustParse("1")}}},
		{"change overflows cents", "0", "9999999999999999999", sampleDrawer()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compute(decimal.MustParse(tt.price), decimal.MustParse(tt.cash), tt.drawer)
			assert.Error(t, err)
		})
	}
}

func TestComputeFloat64(t *testing.T) {
	t.Parallel()

	// 100 - 3.26 is 96.74000000000001 in binary floating point.
	got, err := ComputeFloat64(3.26, 100, sampleDrawer())
	require.NoError(t, err)
	assert.Equal(t, Open, got.Status)
	assert.JSONEq(t,
		`[["TWENTY",60],["TEN",20],["FIVE",15],["ONE",1],["QUARTER",0.5],["DIME",0.2],["PENNY",0.04]]`,
		mustMarshal(t, got.Change))

	_, err = ComputeFloat64(3.26, math.NaN(), sampleDrawer())
	assert.Error(t, err)
}

func TestCompute_DoesNotModifyDrawer(t *testing.T) {
	t.Parallel()

	drawer := sampleDrawer()
	before := mustMarshal(t, drawer)

	for _, price := range []string{"3.26", "19.5", "0", "99.99"} {
		_, err := Compute(decimal.MustParse(price), decimal.MustParse("100"), drawer)
		require.NoError(t, err)
		assert.Equal(t, before, mustMarshal(t, drawer))
	}

	res, err := Compute(decimal.MustParse("0"), decimal.MustParse("335.41"), drawer)
	require.NoError(t, err)
	require.Equal(t, Closed, res.Status)
	res.Change[0] = MustNewUnit("PENNY", "0")
	assert.Equal(t, before, mustMarshal(t, drawer), "result shares memory with the drawer")
}

// randomDrawer returns a drawer in canonical order holding a random number of
// coins or notes of each denomination.
func randomDrawer(rnd *rand.Rand) Drawer {
	d := make(Drawer, 0, 9)
	for _, denom := range Denominations() {
		if rnd.Intn(4) == 0 {
			continue
		}
		count := int64(rnd.Intn(6))
		d = append(d, unitFromMinorUnits(denom, count*denom.MinorUnits()))
	}
	return d
}

func TestCompute_Properties(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		drawer := randomDrawer(rnd)
		price := int64(rnd.Intn(20000))
		cash := price + int64(rnd.Intn(30000))

		got, err := Compute(fromMinorUnits(price), fromMinorUnits(cash), drawer)
		require.NoError(t, err)

		owed := cash - price
		_, avail, err := drawer.minorUnits()
		require.NoError(t, err)

		switch {
		case avail < owed:
			require.Equal(t, InsufficientFunds, got.Status, "drawer %v, owed %v", drawer, owed)
			require.Empty(t, got.Change)
		case avail == owed:
			require.Equal(t, Closed, got.Status, "drawer %v, owed %v", drawer, owed)
			require.Equal(t, mustMarshal(t, drawer), mustMarshal(t, Drawer(got.Change)))
		default:
			if got.Status == InsufficientFunds {
				require.Empty(t, got.Change)
				continue
			}
			require.Equal(t, Open, got.Status, "drawer %v, owed %v", drawer, owed)

			held := make(map[Denomination]int64, len(drawer))
			for _, u := range drawer {
				held[u.Denom], err = u.MinorUnits()
				require.NoError(t, err)
			}
			var sum int64
			for j, u := range got.Change {
				units, err := u.MinorUnits()
				require.NoError(t, err)
				require.Positive(t, units, "zero entry in change %v", got.Change)
				require.LessOrEqual(t, units, held[u.Denom], "change %v exceeds drawer %v", u, drawer)
				if j > 0 {
					require.Greater(t, got.Change[j-1].Denom, u.Denom, "change %v is not in descending order", got.Change)
				}
				_, err = u.Count()
				require.NoError(t, err)
				sum += units
			}
			require.Equal(t, owed, sum, "drawer %v, change %v", drawer, got.Change)

			_, err = drawer.Sub(got.Change)
			require.NoError(t, err)
		}
	}
}

func TestCompute_Concurrent(t *testing.T) {
	t.Parallel()

	drawer := sampleDrawer()
	want := `{"status":"OPEN","change":[["TWENTY",60],["TEN",20],["FIVE",15],["ONE",1],["QUARTER",0.5],["DIME",0.2],["PENNY",0.04]]}`
	price, cash := decimal.MustParse("3.26"), decimal.MustParse("100")

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := Compute(price, cash, drawer)
			if err != nil {
				results[i] = err.Error()
				return
			}
			b, _ := json.Marshal(res)
			results[i] = string(b)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.JSONEq(t, want, got)
	}
}

func TestCalculator_Logging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	calc := NewCalculator(WithLogger(zap.New(core)))

	_, err := calc.Compute(context.Background(), decimal.MustParse("19.5"), decimal.MustParse("20"), sampleDrawer())
	require.NoError(t, err)

	entries := logs.FilterMessage("computed change").AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "OPEN", fields["status"])
	assert.Equal(t, int64(50), fields["change_owed_cents"])
	assert.Equal(t, int64(33541), fields["funds_available_cents"])
	assert.Equal(t, int64(1), fields["change_units"])

	_, err = calc.Compute(context.Background(), decimal.MustParse("20"), decimal.MustParse("19.5"), sampleDrawer())
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("rejected transaction").Len())
}

func TestCalculator_Tracing(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})
	calc := NewCalculator(WithTracerProvider(provider), WithLogger(nil))

	_, err := calc.Compute(context.Background(), decimal.MustParse("19.5"), decimal.MustParse("20"), emptyDrawer(MustNewUnit("PENNY", "0.5")))
	require.NoError(t, err)
	_, err = calc.Compute(context.Background(), decimal.MustParse("-1"), decimal.MustParse("20"), sampleDrawer())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "register.Compute", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("register.status", "CLOSED"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("register.change_owed_cents", 50))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.NotEmpty(t, spans[1].Events(), "error was not recorded")
}
