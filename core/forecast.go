package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// MinPointsForForecast is the smallest history that supports a trend fit.
// Two points pin a line; anything less has no trend at all.
const MinPointsForForecast = 2

// PolynomialClampFactor bounds quadratic extrapolation at a multiple of the
// historical maximum, so a convex fit cannot run away over long horizons.
const PolynomialClampFactor = 3.0

// ForecastRevenue produces an ensemble forecast over the configured horizon.
// It fits a linear trend, a bounded quadratic and a seasonal-naive model,
// combines their point estimates with the configured weights, and derives
// confidence bounds from the weighted residual spread.
func ForecastRevenue(ctx context.Context, cfg *contract.Config, series *schema.RevenueSeries) (*schema.ForecastResult, error) {
	values := series.Revenues()
	if len(values) < MinPointsForForecast {
		return nil, fmt.Errorf("%w: forecasting needs at least %d points (have %d)",
			contract.ErrInsufficientHistory, MinPointsForForecast, len(values))
	}
	if err := contract.ValidateModelWeights(cfg.ModelWeights); err != nil {
		return nil, err
	}

	fits := []func() schema.ModelForecast{
		func() schema.ModelForecast { return fitLinearModel(values, cfg.Horizon) },
		func() schema.ModelForecast { return fitPolynomialModel(values, cfg.Horizon) },
		func() schema.ModelForecast { return fitSeasonalNaiveModel(values, cfg.SeasonalPeriod, cfg.Horizon) },
	}
	models := make([]schema.ModelForecast, 0, len(fits))
	for _, fit := range fits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		models = append(models, fit())
	}

	// Weighted ensemble of point estimates, with variance propagated
	// through the squared weights.
	points := make([]float64, cfg.Horizon)
	var ensembleVariance float64
	for _, model := range models {
		w := cfg.ModelWeights[model.Model]
		for h := range points {
			points[h] += w * model.Points[h]
		}
		ensembleVariance += w * w * model.ResidualStd * model.ResidualStd
	}
	ensembleStd := math.Sqrt(ensembleVariance)

	z := normalQuantile(0.5 + cfg.Confidence/2)
	lower := make([]float64, cfg.Horizon)
	upper := make([]float64, cfg.Horizon)
	for h := range points {
		lower[h] = points[h] - z*ensembleStd
		upper[h] = points[h] + z*ensembleStd
	}

	periods := make([]time.Time, cfg.Horizon)
	next := series.Points[len(series.Points)-1].Period
	for h := range periods {
		next = NextPeriod(next, series.Granularity)
		periods[h] = next
	}

	weights := make(map[schema.ModelName]float64, len(cfg.ModelWeights))
	for model, w := range cfg.ModelWeights {
		weights[model] = w
	}

	return &schema.ForecastResult{
		Horizon:         cfg.Horizon,
		Periods:         periods,
		PointEstimates:  points,
		LowerBound:      lower,
		UpperBound:      upper,
		ConfidenceLevel: cfg.Confidence,
		ModelWeights:    weights,
		Models:          models,
	}, nil
}

// fitLinearModel fits an ordinary least squares line over the history and
// extrapolates it forward.
func fitLinearModel(values []float64, horizon int) schema.ModelForecast {
	slope, intercept := linearFit(values)

	n := len(values)
	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = intercept + slope*float64(i)
	}

	points := make([]float64, horizon)
	for h := range points {
		points[h] = intercept + slope*float64(n+h)
	}

	return buildModelForecast(schema.LinearModel, values, fitted, points)
}

// linearFit returns the OLS slope and intercept for y over x = 0..n-1.
func linearFit(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// fitPolynomialModel fits a degree-2 polynomial via the normal equations and
// clamps extrapolations into a sane band so the quadratic term cannot blow up.
func fitPolynomialModel(values []float64, horizon int) schema.ModelForecast {
	coeffs, ok := polyFit2(values)
	if !ok {
		// Degenerate design matrix, fall back to the linear fit.
		model := fitLinearModel(values, horizon)
		model.Model = schema.PolynomialModel
		return model
	}

	histMax := 0.0
	for _, v := range values {
		if v > histMax {
			histMax = v
		}
	}
	clampHigh := PolynomialClampFactor * histMax

	eval := func(x float64) float64 {
		y := coeffs[0] + coeffs[1]*x + coeffs[2]*x*x
		if y < 0 {
			return 0
		}
		if y > clampHigh {
			return clampHigh
		}
		return y
	}

	n := len(values)
	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = eval(float64(i))
	}

	points := make([]float64, horizon)
	for h := range points {
		points[h] = eval(float64(n + h))
	}

	return buildModelForecast(schema.PolynomialModel, values, fitted, points)
}

// polyFit2 solves the 3x3 normal equations for a quadratic fit using
// Gaussian elimination with partial pivoting. Returns false when the system
// is singular.
func polyFit2(values []float64) ([3]float64, bool) {
	var coeffs [3]float64

	// Power sums for the design matrix.
	var s [5]float64 // sum of x^0 .. x^4
	var t [3]float64 // sum of y*x^0 .. y*x^2
	for i, y := range values {
		x := float64(i)
		xp := 1.0
		for p := 0; p < 5; p++ {
			s[p] += xp
			if p < 3 {
				t[p] += y * xp
			}
			xp *= x
		}
	}

	m := [3][4]float64{
		{s[0], s[1], s[2], t[0]},
		{s[1], s[2], s[3], t[1]},
		{s[2], s[3], s[4], t[2]},
	}

	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return coeffs, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := 0; row < 3; row++ {
			if row == col {
				continue
			}
			factor := m[row][col] / m[col][col]
			for k := col; k < 4; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	for i := range coeffs {
		coeffs[i] = m[i][3] / m[i][i]
	}
	return coeffs, true
}

// fitSeasonalNaiveModel extrapolates the decomposition trend linearly and
// lays the repeating seasonal index on top. With less than two full cycles of
// history the seasonal signal cannot be separated from noise, so it degrades
// to the linear trend.
func fitSeasonalNaiveModel(values []float64, period, horizon int) schema.ModelForecast {
	n := len(values)
	if period < 2 || n < MinPeriodsForDecomposition*period {
		model := fitLinearModel(values, horizon)
		model.Model = schema.SeasonalNaiveModel
		return model
	}

	decomp, err := DecomposeSeries(values, period)
	if err != nil {
		model := fitLinearModel(values, horizon)
		model.Model = schema.SeasonalNaiveModel
		return model
	}

	// Fit a line through the defined stretch of the moving average trend,
	// keeping its offset on the series axis so extrapolation continues from
	// the right index. The NaN half-windows sit at both ends, so the defined
	// stretch is contiguous.
	trendVals := make([]float64, 0, n)
	offset := -1
	for i, tv := range decomp.Trend {
		if math.IsNaN(tv) {
			continue
		}
		if offset < 0 {
			offset = i
		}
		trendVals = append(trendVals, tv)
	}
	slope, intercept := linearFit(trendVals)
	trendAt := func(i int) float64 {
		return intercept + slope*float64(i-offset)
	}

	indices := SeasonalIndices(decomp)
	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = trendAt(i) + indices[i%period]
	}

	points := make([]float64, horizon)
	for h := range points {
		idx := n + h
		points[h] = trendAt(idx) + indices[idx%period]
	}

	return buildModelForecast(schema.SeasonalNaiveModel, values, fitted, points)
}

// buildModelForecast computes the fit diagnostics shared by every model.
func buildModelForecast(name schema.ModelName, actual, fitted, points []float64) schema.ModelForecast {
	n := len(actual)

	var mean float64
	for _, v := range actual {
		mean += v
	}
	mean /= float64(n)

	var ssRes, ssTot, absErr float64
	for i, v := range actual {
		resid := v - fitted[i]
		ssRes += resid * resid
		ssTot += (v - mean) * (v - mean)
		absErr += math.Abs(resid)
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return schema.ModelForecast{
		Model:       name,
		Points:      points,
		ResidualStd: math.Sqrt(ssRes / float64(n)),
		R2:          r2,
		MAE:         absErr / float64(n),
	}
}

// normalQuantile computes the inverse CDF of the standard normal
// distribution using the Acklam rational approximation, accurate to about
// 1e-9 over the open unit interval.
func normalQuantile(p float64) float64 {
	if p <= 0 || p >= 1 {
		return math.NaN()
	}

	a := [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	b := [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	c := [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	d := [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}

	const pLow = 0.02425
	const pHigh = 1 - pLow

	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > pHigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}
