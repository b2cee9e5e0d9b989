// Command volsurface builds a volatility surface from a JSON market snapshot
// and prints a delta-ladder table per fitted tenor. Tenors that fail to fit
// are logged and skipped (partial-success policy).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meenmo/fxsmile/market"
	"github.com/meenmo/fxsmile/surface"
)

type snapshotFile struct {
	Pair    string      `json:"pair"`
	Version string      `json:"version"`
	AsOf    time.Time   `json:"asof"`
	Quotes  []quoteJSON `json:"quotes"`
}

type quoteJSON struct {
	Tenor        string             `json:"tenor"`
	ATMVol       float64            `json:"atm_vol"`
	RRByDelta    map[string]float64 `json:"rr_by_delta"`
	BFByDelta    map[string]float64 `json:"bf_by_delta"`
	Spot         float64            `json:"spot"`
	DomesticRate float64            `json:"domestic_rate"`
	ForeignRate  float64            `json:"foreign_rate"`
}

func main() {
	var (
		file      = flag.String("file", "snapshot.json", "market snapshot JSON file")
		tenorsArg = flag.String("tenors", "", "comma-separated tenor labels (default: all quoted)")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "volsurface:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	snapFile, err := loadSnapshot(*file)
	if err != nil {
		logger.Fatal("load snapshot", zap.String("file", *file), zap.Error(err))
	}
	pair, err := market.ParsePair(snapFile.Pair)
	if err != nil {
		logger.Fatal("parse pair", zap.Error(err))
	}

	quotes := make([]market.MarketQuote, 0, len(snapFile.Quotes))
	for _, q := range snapFile.Quotes {
		mq, err := toMarketQuote(pair, q)
		if err != nil {
			logger.Warn("skipping malformed quote", zap.String("tenor", q.Tenor), zap.Error(err))
			continue
		}
		quotes = append(quotes, mq)
	}

	snap, err := market.NewQuoteSet(snapFile.Version, snapFile.AsOf, quotes)
	if err != nil {
		logger.Fatal("build snapshot", zap.Error(err))
	}

	builder := surface.NewBuilder(snap)
	var (
		srf      *surface.Surface
		buildErr error
	)
	if *tenorsArg == "" {
		srf, buildErr = builder.BuildAll(pair)
	} else {
		tenors, err := market.ParseTenors(strings.Split(*tenorsArg, ","))
		if err != nil {
			logger.Fatal("parse tenors", zap.Error(err))
		}
		srf, buildErr = builder.Build(pair, tenors)
	}
	if buildErr != nil {
		logger.Fatal("build surface", zap.Error(buildErr))
	}

	for _, f := range srf.Failures() {
		logger.Warn("tenor failed to fit",
			zap.String("pair", pair.String()),
			zap.String("tenor", f.Tenor.Label),
			zap.Error(f.Err))
	}
	logger.Info("surface built",
		zap.String("pair", pair.String()),
		zap.String("version", srf.Version()),
		zap.Int("tenors", len(srf.Tenors())),
		zap.Int("failures", len(srf.Failures())))

	printDeltaLadder(srf)
}

func loadSnapshot(path string) (*snapshotFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s snapshotFile
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func toMarketQuote(pair market.CurrencyPair, q quoteJSON) (market.MarketQuote, error) {
	tenor, err := market.ParseTenor(q.Tenor)
	if err != nil {
		return market.MarketQuote{}, err
	}
	rr, err := toBuckets(q.RRByDelta)
	if err != nil {
		return market.MarketQuote{}, err
	}
	bf, err := toBuckets(q.BFByDelta)
	if err != nil {
		return market.MarketQuote{}, err
	}
	return market.MarketQuote{
		Pair:         pair,
		Tenor:        tenor,
		ATMVol:       q.ATMVol,
		RRByDelta:    rr,
		BFByDelta:    bf,
		Spot:         q.Spot,
		DomesticRate: q.DomesticRate,
		ForeignRate:  q.ForeignRate,
	}, nil
}

func toBuckets(m map[string]float64) (map[int]float64, error) {
	out := make(map[int]float64, len(m))
	for k, v := range m {
		d, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("bad delta bucket %q", k)
		}
		out[d] = v
	}
	return out, nil
}

func printDeltaLadder(srf *surface.Surface) {
	deltas := []float64{0.05, 0.10, 0.15, 0.25, 0.35, 0.50, 0.65, 0.75, 0.85, 0.90, 0.95}

	fmt.Printf("%-5s", "tenor")
	for _, d := range deltas {
		fmt.Printf(" %6.0fd", d*100)
	}
	fmt.Println()

	for _, tenor := range srf.Tenors() {
		crv, _ := srf.Curve(tenor)
		fmt.Printf("%-5s", tenor)
		for _, d := range deltas {
			strike := crv.StrikeForDelta(d)
			fmt.Printf(" %6.2f%%", crv.VolAt(strike)*100)
		}
		fmt.Println()
	}
}
