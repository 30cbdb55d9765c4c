package costs

// Estimator turns provider-reported token counts into a USD cost figure.
// It is a pure calculator over an immutable pricing table and is safe for
// concurrent use.
type Estimator struct {
	table *PricingTable
}

// NewEstimator creates an estimator over the given pricing table. A nil
// table selects the built-in default table.
func NewEstimator(table *PricingTable) *Estimator {
	if table == nil {
		table = DefaultPricingTable()
	}
	return &Estimator{table: table}
}

// EstimateCost computes the USD cost for the given usage:
//
//	(tokensIn / 1e6) * input_price + (tokensOut / 1e6) * output_price
//
// The calculation is deterministic and side-effect free. Negative counts
// are clamped to zero so the result is never negative.
func (e *Estimator) EstimateCost(model string, tokensIn, tokensOut int) float64 {
	if tokensIn < 0 {
		tokensIn = 0
	}
	if tokensOut < 0 {
		tokensOut = 0
	}

	entry := e.table.Lookup(model)
	inputCost := float64(tokensIn) / 1_000_000 * entry.InputPerMTok
	outputCost := float64(tokensOut) / 1_000_000 * entry.OutputPerMTok
	return inputCost + outputCost
}
