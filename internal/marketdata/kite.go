package marketdata

import (
	"context"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/types"
)

// KiteProvider fetches historical candles from the Kite Connect REST API.
// Instrument tokens are resolved from the instrument dump when the session is
// valid, with a small static fallback for common NSE symbols.
type KiteProvider struct {
	kc       *kiteconnect.Client
	exchange string
	mapper   *instrumentMapper
}

var _ interfaces.Provider = (*KiteProvider)(nil)

func NewKiteProvider(apiKey, accessToken, exchange string) *KiteProvider {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)

	return &KiteProvider{
		kc:       kc,
		exchange: exchange,
		mapper:   newInstrumentMapper(),
	}
}

func (k *KiteProvider) History(ctx context.Context, symbol, timeframe string, bars int) ([]types.Candle, error) {
	token, err := k.resolveToken(ctx, symbol)
	if err != nil {
		return nil, err
	}

	interval := kiteInterval(timeframe)
	to := time.Now()
	from := to.Add(-historySpan(timeframe, bars))

	data, err := k.kc.GetHistoricalData(int(token), interval, from, to, false, false)
	if err != nil {
		return nil, fmt.Errorf("kite historical data for %s %s: %w", symbol, interval, err)
	}

	candles := make([]types.Candle, 0, len(data))
	for _, d := range data {
		candles = append(candles, types.Candle{
			Ts:    d.Date.Time.Unix(),
			Open:  d.Open,
			High:  d.High,
			Low:   d.Low,
			Close: d.Close,
			Vol:   float64(d.Volume),
		})
	}
	if len(candles) > bars {
		candles = candles[len(candles)-bars:]
	}
	return candles, nil
}

func (k *KiteProvider) resolveToken(ctx context.Context, symbol string) (uint32, error) {
	if token, ok := k.mapper.getToken(symbol); ok {
		return token, nil
	}

	instruments, err := k.kc.GetInstruments()
	if err != nil {
		logger.Warn(ctx, "Instrument dump unavailable, using fallback tokens", "error", err)
		if token, ok := fallbackTokens[symbol]; ok {
			return token, nil
		}
		return 0, fmt.Errorf("resolve instrument token for %s: %w", symbol, err)
	}

	for _, inst := range instruments {
		if inst.Exchange == k.exchange {
			k.mapper.addMapping(inst.Tradingsymbol, uint32(inst.InstrumentToken))
		}
	}

	if token, ok := k.mapper.getToken(symbol); ok {
		return token, nil
	}
	if token, ok := fallbackTokens[symbol]; ok {
		return token, nil
	}
	return 0, fmt.Errorf("symbol %s not found on exchange %s", symbol, k.exchange)
}

// kiteInterval maps engine timeframes onto Kite's candle intervals. Kite has
// no native 4 hour interval, so both intraday frames read hourly candles.
func kiteInterval(timeframe string) string {
	switch timeframe {
	case "1H", "4H":
		return "60minute"
	default:
		return "day"
	}
}

func historySpan(timeframe string, bars int) time.Duration {
	per := time.Duration(barSeconds(timeframe)) * time.Second
	// Pad for weekends and holidays so enough trading bars come back.
	return time.Duration(float64(per) * float64(bars) * 1.6)
}

var fallbackTokens = map[string]uint32{
	"RELIANCE":   256265,
	"TCS":        2953217,
	"HDFCBANK":   341249,
	"INFY":       408065,
	"HCLTECH":    1850625,
	"LT":         2939649,
	"SBIN":       779521,
	"ICICIBANK":  1270529,
	"AXISBANK":   1510401,
	"KOTAKBANK":  492033,
	"ITC":        424961,
	"TATAMOTORS": 884737,
	"TITAN":      897537,
	"JSWSTEEL":   3001089,
	"ULTRACEMCO": 2952193,
	"BAJFINANCE": 81153,
	"HDFCLIFE":   119553,
	"BHARTIARTL": 2714625,
	"ASIANPAINT": 60417,
	"MARUTI":     2815745,
}
