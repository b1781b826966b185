package analytics

import (
	"github.com/montanaflynn/stats"

	"quantfolio/types"
)

// GenerateSignals produces one target position state per close: 1 long,
// -1 short/flat, 0 neutral. Deterministic, and the signal at index t uses
// only closes up to and including t.
func GenerateSignals(closes []float64, strategy types.Strategy, params types.StrategyParams) ([]int, error) {
	switch strategy {
	case types.SMACrossover:
		return smaCrossoverSignals(closes, params.ShortPeriod, params.LongPeriod), nil
	case types.Momentum:
		return momentumSignals(closes, params.LookbackPeriod, params.MomentumThreshold), nil
	case types.RSIStrategy:
		return rsiSignals(closes, params.RSIPeriod, params.Oversold, params.Overbought), nil
	case types.MeanReversion:
		return bollingerSignals(closes, params.BBPeriod, params.BBStd), nil
	case types.BuyAndHold:
		signals := make([]int, len(closes))
		for i := range signals {
			signals[i] = types.SignalLong
		}
		return signals, nil
	default:
		_, err := types.LookupStrategy(strategy)
		return nil, err
	}
}

// sma computes the trailing simple moving average, averaging the period
// closes strictly before each index. Entries before the window fills are 0.
func sma(data []float64, period int) []float64 {
	out := make([]float64, len(data))
	if period <= 0 {
		return out
	}
	for i := period; i < len(data); i++ {
		sum := 0.0
		for _, v := range data[i-period : i] {
			sum += v
		}
		out[i] = sum / float64(period)
	}
	return out
}

func smaCrossoverSignals(closes []float64, shortPeriod, longPeriod int) []int {
	shortSMA := sma(closes, shortPeriod)
	longSMA := sma(closes, longPeriod)
	signals := make([]int, len(closes))
	for i := range closes {
		if shortSMA[i] > longSMA[i] {
			signals[i] = types.SignalLong
		} else {
			signals[i] = types.SignalShort
		}
	}
	return signals
}

func momentumSignals(closes []float64, lookback int, threshold float64) []int {
	returns := Returns(closes)
	momentum := make([]float64, len(closes))
	for i := lookback; i < len(closes); i++ {
		sum := 0.0
		for _, r := range returns[i-lookback : i] {
			sum += r
		}
		momentum[i] = sum
	}
	signals := make([]int, len(closes))
	for i := range closes {
		if momentum[i] > threshold {
			signals[i] = types.SignalLong
		} else {
			signals[i] = types.SignalShort
		}
	}
	return signals
}

// rsi implements the classic Wilder oscillator: the first average gain/loss
// is a simple mean over the warm-up window, subsequent ones use exponential
// smoothing. Entries before the window fills are 0.
func rsi(data []float64, period int) []float64 {
	out := make([]float64, len(data))
	if period <= 0 || len(data) <= period {
		return out
	}

	gains := make([]float64, len(data)-1)
	losses := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		delta := data[i] - data[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	avgGain := make([]float64, len(data))
	avgLoss := make([]float64, len(data))
	for _, g := range gains[:period] {
		avgGain[period] += g / float64(period)
	}
	for _, l := range losses[:period] {
		avgLoss[period] += l / float64(period)
	}
	for i := period + 1; i < len(data); i++ {
		avgGain[i] = (avgGain[i-1]*float64(period-1) + gains[i-1]) / float64(period)
		avgLoss[i] = (avgLoss[i-1]*float64(period-1) + losses[i-1]) / float64(period)
	}

	for i := period; i < len(data); i++ {
		rs := avgGain[i]
		if avgLoss[i] != 0 {
			rs = avgGain[i] / avgLoss[i]
		}
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

func rsiSignals(closes []float64, period int, oversold, overbought float64) []int {
	values := rsi(closes, period)
	signals := make([]int, len(closes))
	for i := range closes {
		switch {
		case values[i] < oversold:
			signals[i] = types.SignalLong
		case values[i] > overbought:
			signals[i] = types.SignalShort
		}
	}
	return signals
}

// bollingerSignals is genuine Bollinger-band mean reversion: long below the
// lower band, short above the upper band, neutral inside. Neutral until the
// band window fills.
func bollingerSignals(closes []float64, period int, width float64) []int {
	signals := make([]int, len(closes))
	if period <= 0 {
		return signals
	}
	for i := period; i < len(closes); i++ {
		window := closes[i-period : i]
		mid, err := stats.Mean(window)
		if err != nil {
			continue
		}
		sd, err := stats.StandardDeviationPopulation(window)
		if err != nil {
			continue
		}
		switch {
		case closes[i] < mid-width*sd:
			signals[i] = types.SignalLong
		case closes[i] > mid+width*sd:
			signals[i] = types.SignalShort
		}
	}
	return signals
}
