// Package formulas provides the technical indicator math used by the advisory
// engine. All functions are pure and deterministic: identical inputs always
// yield identical outputs, which the engine relies on for reproducible
// recommendations.
package formulas

import (
	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// Volatility calculates price volatility as the population standard deviation
// of simple period-over-period returns, expressed as a percentage.
//
// Steps where the previous price is exactly zero are skipped to avoid
// division by zero. Returns 0 for series shorter than 2 points or when no
// valid returns could be computed.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
		}
	}

	if len(returns) == 0 {
		return 0
	}

	return stat.PopStdDev(returns, nil) * 100
}

// RSI calculates the Relative Strength Index over the given period.
//
// RSI Formula:
//
//	RSI = 100 - (100 / (1 + RS))
//	where RS = Average Gain / Average Loss over the last N periods
//
// Gains and losses are computed over the full series and the trailing
// `period` values are averaged. Returns the neutral value 50 when the series
// is shorter than period+1 points, and 100 when the average loss is zero.
func RSI(prices []float64, period int) float64 {
	if len(prices) < period+1 {
		return 50
	}

	gains := make([]float64, 0, len(prices)-1)
	losses := make([]float64, 0, len(prices)-1)

	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	if len(gains) < period {
		return 50
	}

	avgGain := stat.Mean(gains[len(gains)-period:], nil)
	avgLoss := stat.Mean(losses[len(losses)-period:], nil)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// Momentum calculates the percentage price change from the first to the last
// point of the series. The look-back window is selected upstream by the data
// fetch, not sliced here. Returns 0 for series shorter than 2 points or when
// the first price is zero.
func Momentum(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	first := prices[0]
	last := prices[len(prices)-1]

	if first == 0 {
		return 0
	}

	return (last - first) / first * 100
}

// SMA returns the latest simple moving average over the given period, or nil
// if the series is too short.
func SMA(prices []float64, period int) *float64 {
	if len(prices) < period {
		return nil
	}

	sma := talib.Sma(prices, period)
	if len(sma) == 0 || isNaN(sma[len(sma)-1]) {
		return nil
	}

	result := sma[len(sma)-1]
	return &result
}

// EMA returns the latest exponential moving average over the given period, or
// nil if the series is too short.
func EMA(prices []float64, period int) *float64 {
	if len(prices) < period {
		return nil
	}

	ema := talib.Ema(prices, period)
	if len(ema) == 0 || isNaN(ema[len(ema)-1]) {
		return nil
	}

	result := ema[len(ema)-1]
	return &result
}

// HighLow returns the highest and lowest prices in the series.
// Returns (0, 0) for an empty series.
func HighLow(prices []float64) (high, low float64) {
	if len(prices) == 0 {
		return 0, 0
	}

	high, low = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	return high, low
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
