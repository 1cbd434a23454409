package anomaly

import (
	"fmt"
	"math"

	"github.com/pulsedash/pulsedash/internal/analytics"
)

// ARIMADetector flags months whose in-sample one-step residual under an
// ARIMA(p,d,q) model deviates from the robust residual dispersion.
type ARIMADetector struct{}

func init() {
	RegisterDetector("arima", &ARIMADetector{})
}

// Name returns the algorithm name.
func (d *ARIMADetector) Name() string {
	return "arima"
}

// Detect runs ARIMA residual detection with the fixed default order. A
// positive Options.MaxIterations overrides the model's iteration budget.
func (d *ARIMADetector) Detect(series analytics.Series, opts Options) ([]Record, error) {
	model := NewARIMAModel()
	if opts.MaxIterations > 0 {
		model.MaxIterations = opts.MaxIterations
	}
	return detectAutoregressive(series, opts.Threshold, model)
}

// ARIMAModel is a fixed-order autoregressive-integrated-moving-average model
// used to extract in-sample residuals. The order is ARIMA(2,1,2) by default;
// an automatic order search is deliberately not attempted.
type ARIMAModel struct {
	P int // AR order
	D int // Differencing order
	Q int // MA order

	// MaxIterations bounds the moving-average estimation loop. Exceeding it
	// is a fit failure, never a hang.
	MaxIterations int
}

// NewARIMAModel returns an ARIMA(2,1,2) model with the default iteration
// budget.
func NewARIMAModel() *ARIMAModel {
	return &ARIMAModel{
		P:             2,
		D:             1,
		Q:             2,
		MaxIterations: 50,
	}
}

// DetectAutoregressive fits the default ARIMA model, computes in-sample
// one-step residuals (observed minus one-step fitted value), and flags months
// where |residual| exceeds threshold times the robust residual dispersion
// (MAD * 1.4826). Fit failures are reported as ErrModelFit so callers can
// degrade to an empty result.
func DetectAutoregressive(series analytics.Series, threshold float64) ([]Record, error) {
	return detectAutoregressive(series, threshold, NewARIMAModel())
}

func detectAutoregressive(series analytics.Series, threshold float64, model *ARIMAModel) ([]Record, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: threshold must be positive, got %v", analytics.ErrValidation, threshold)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	residuals, start, err := model.Fit(series.Values())
	if err != nil {
		return nil, err
	}

	// Residual index j refers to original index j + D; the first start
	// residuals have no fitted value and are excluded from scoring.
	scored := residuals[start:]
	scale := RobustScale(scored)

	var records []Record
	for j := start; j < len(residuals); j++ {
		residual := residuals[j]
		score, ok := scoreResidual(residual, scale)
		if !ok || score <= threshold {
			continue
		}
		t := j + model.D
		records = append(records, Record{
			Month:    series[t].Month,
			Value:    series[t].Value,
			Expected: series[t].Value - residual,
			Residual: residual,
			Score:    score,
		})
	}

	return records, nil
}

// Fit estimates the model on values and returns the in-sample one-step
// residuals of the differenced series plus the index of the first residual
// backed by a fitted value. Residual j corresponds to original index j + D.
func (m *ARIMAModel) Fit(values []float64) (residuals []float64, start int, err error) {
	diffed := difference(values, m.D)
	if len(diffed) < m.P+m.Q+1 {
		return nil, 0, fmt.Errorf("%w: need at least %d observations after differencing, got %d",
			ErrModelFit, m.P+m.Q+1, len(diffed))
	}

	// Work on the mean-centered differenced series so residuals of a steady
	// trend sit near zero.
	mu := mean(diffed)
	centered := make([]float64, len(diffed))
	for i, v := range diffed {
		centered[i] = v - mu
	}

	acf, ok := autocorrelation(centered, m.P)
	if !ok {
		return nil, 0, fmt.Errorf("%w: differenced series has zero variance", ErrModelFit)
	}
	arCoeffs := levinsonDurbin(acf, m.P)

	maCoeffs, err := m.estimateMA(centered, arCoeffs)
	if err != nil {
		return nil, 0, err
	}

	start = m.P
	if m.Q > start {
		start = m.Q
	}
	return armaResiduals(centered, arCoeffs, maCoeffs, start), start, nil
}

// estimateMA refines moving-average coefficients by alternating residual
// computation and residual-autocorrelation updates (damped for stability)
// until the coefficients settle or the iteration budget runs out.
func (m *ARIMAModel) estimateMA(values []float64, arCoeffs []float64) ([]float64, error) {
	if m.Q == 0 {
		return nil, nil
	}

	const tolerance = 1e-4
	start := m.P
	if m.Q > start {
		start = m.Q
	}

	maCoeffs := make([]float64, m.Q)
	for iter := 0; iter < m.MaxIterations; iter++ {
		residuals := armaResiduals(values, arCoeffs, maCoeffs, start)

		acf, ok := autocorrelation(residuals[start:], m.Q)
		if !ok {
			// Residuals collapsed to a constant: the MA part has nothing
			// left to model.
			return maCoeffs, nil
		}

		delta := 0.0
		for i := 0; i < m.Q; i++ {
			next := acf[i] * 0.5 // damping keeps the update contractive
			if d := math.Abs(next - maCoeffs[i]); d > delta {
				delta = d
			}
			maCoeffs[i] = next
		}

		if delta < tolerance {
			return maCoeffs, nil
		}
	}

	return nil, fmt.Errorf("%w: moving-average estimation did not converge within %d iterations",
		ErrModelFit, m.MaxIterations)
}

// armaResiduals computes one-step residuals of an ARMA fit on values. The
// first start entries are zero placeholders without a fitted value.
func armaResiduals(values, arCoeffs, maCoeffs []float64, start int) []float64 {
	residuals := make([]float64, len(values))
	for t := start; t < len(values); t++ {
		fitted := 0.0
		for i, phi := range arCoeffs {
			fitted += phi * values[t-1-i]
		}
		for i, theta := range maCoeffs {
			fitted += theta * residuals[t-1-i]
		}
		residuals[t] = values[t] - fitted
	}
	return residuals
}

// difference applies first differencing d times.
func difference(values []float64, d int) []float64 {
	result := values
	for i := 0; i < d && len(result) > 1; i++ {
		diffed := make([]float64, len(result)-1)
		for j := 1; j < len(result); j++ {
			diffed[j-1] = result[j] - result[j-1]
		}
		result = diffed
	}
	return result
}

// autocorrelation calculates the autocorrelation function up to lag k.
// ok is false when the series has no variance.
func autocorrelation(values []float64, k int) ([]float64, bool) {
	n := len(values)
	if n == 0 || k <= 0 {
		return nil, false
	}

	mu := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mu
		variance += diff * diff
	}
	if variance == 0 {
		return nil, false
	}

	acf := make([]float64, k)
	for lag := 1; lag <= k; lag++ {
		cov := 0.0
		for t := lag; t < n; t++ {
			cov += (values[t] - mu) * (values[t-lag] - mu)
		}
		acf[lag-1] = cov / variance
	}
	return acf, true
}

// levinsonDurbin solves the Yule-Walker equations for AR coefficients.
func levinsonDurbin(acf []float64, p int) []float64 {
	if len(acf) == 0 || p == 0 {
		return nil
	}
	if len(acf) < p {
		p = len(acf)
	}

	phi := make([][]float64, p+1)
	for i := range phi {
		phi[i] = make([]float64, p+1)
	}

	phi[1][1] = acf[0]
	v := 1 - acf[0]*acf[0]

	for k := 2; k <= p; k++ {
		num := acf[k-1]
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-1-j]
		}

		if v == 0 {
			break
		}
		phi[k][k] = num / v

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
		v = v * (1 - phi[k][k]*phi[k][k])
	}

	result := make([]float64, p)
	for i := 1; i <= p; i++ {
		result[i-1] = phi[p][i]
	}
	return result
}
