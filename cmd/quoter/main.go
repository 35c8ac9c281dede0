package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	"github.com/jmolinari/stableswap-quoter/internal/bps"
	"github.com/jmolinari/stableswap-quoter/internal/platform/config"
	"github.com/jmolinari/stableswap-quoter/internal/platform/observability"
	"github.com/jmolinari/stableswap-quoter/internal/pool"
	"github.com/jmolinari/stableswap-quoter/internal/quote"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single quote cycle and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	log.Println("Loading configuration...")
	cfg := config.MustLoad(*configPath)

	// Setup observability (foundational - must be first)
	logger := observability.NewLogger(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	metrics, err := observability.NewMetrics("stableswap-quoter", cfg.Observability.Metrics.Enabled)
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	logger.Info("observability setup complete")

	// Pool state cache: refreshed from config on expiry, shared with any
	// future on-chain refresher.
	stateCache := pool.NewStateCache(cfg.Cache.MaxSize, cfg.Cache.TTL)
	defer stateCache.Close()

	pools, err := buildPools(cfg, logger)
	if err != nil {
		logger.LogError(ctx, "failed to build pool states", err)
		log.Fatalf("Failed to build pool states: %v", err)
	}

	batch := quote.NewBatchQuoter(cfg.Quote.Workers, logger, metrics)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, gracefully stopping...")
		cancel()
	}()

	logger.Info("starting quoter",
		"pools", len(pools),
		"trade_sizes", len(cfg.Quote.TradeSizesParsed()),
		"interval", cfg.Quote.Interval.String(),
	)

	if *once {
		slippage := bps.BPS(cfg.Quote.SlippageBPS)
		if err := quoteCycle(ctx, cfg, pools, stateCache, batch, slippage, logger, metrics); err != nil {
			logger.LogError(ctx, "quote cycle failed", err)
			os.Exit(1)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runHTTPServer(gctx, cfg.HTTP.Port, metrics, logger)
	})
	g.Go(func() error {
		return runQuoteLoop(gctx, cfg, pools, stateCache, batch, logger, metrics)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.LogError(ctx, "quoter stopped with error", err)
		os.Exit(1)
	}

	logger.Info("application stopped")
}

// namedPool pairs a configured pool with its cache key.
type namedPool struct {
	name    string
	key     solana.PublicKey
	rebuild func() *pool.State
}

// buildPools turns the configured pools into state builders. Pool names in
// TOKEN-TOKEN form resolve their mints from the token registry.
func buildPools(cfg *config.Config, logger *observability.Logger) ([]namedPool, error) {
	pools := make([]namedPool, 0, len(cfg.Pools))
	for i := range cfg.Pools {
		pc := &cfg.Pools[i]

		var key solana.PublicKey
		if pc.Address != "" {
			var err error
			key, err = solana.PublicKeyFromBase58(pc.Address)
			if err != nil {
				return nil, fmt.Errorf("pool %q: invalid address: %w", pc.Name, err)
			}
		} else {
			// No on-chain address configured: derive a stable synthetic key
			// from the pool name so the cache still has a unique slot.
			copy(key[:], pc.Name)
		}

		var mintA, mintB solana.PublicKey
		if base, quoteTok, err := config.ParsePairName(pc.Name); err == nil {
			mintA = solana.MustPublicKeyFromBase58(base.Mint)
			mintB = solana.MustPublicKeyFromBase58(quoteTok.Mint)
		} else {
			logger.Warn("pool name does not resolve to known tokens",
				"pool", pc.Name, "error", err.Error())
		}

		pools = append(pools, namedPool{
			name: pc.Name,
			key:  key,
			rebuild: func() *pool.State {
				return &pool.State{
					TokenAMint:  mintA,
					TokenBMint:  mintB,
					InitialAmp:  pc.InitialAmp,
					TargetAmp:   pc.TargetAmp,
					RampStartTs: pc.RampStartTs,
					RampStopTs:  pc.RampStopTs,
					TradeFeeBPS: pc.TradeFeeBPS,
					BalanceA:    pc.BalanceAParsed(),
					BalanceB:    pc.BalanceBParsed(),
					LPSupply:    pc.LPSupplyParsed(),
				}
			},
		})
	}
	return pools, nil
}

// runQuoteLoop prices every configured trade size against every pool on a
// fixed interval until the context ends.
func runQuoteLoop(
	ctx context.Context,
	cfg *config.Config,
	pools []namedPool,
	stateCache *pool.StateCache,
	batch *quote.BatchQuoter,
	logger *observability.Logger,
	metrics *observability.Metrics,
) error {
	ticker := time.NewTicker(cfg.Quote.Interval)
	defer ticker.Stop()

	slippage := bps.BPS(cfg.Quote.SlippageBPS)

	// Quote once immediately, then on every tick.
	for {
		if err := quoteCycle(ctx, cfg, pools, stateCache, batch, slippage, logger, metrics); err != nil {
			return err
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			logger.Info("context cancelled, stopping quote loop")
			return nil
		}
	}
}

func quoteCycle(
	ctx context.Context,
	cfg *config.Config,
	pools []namedPool,
	stateCache *pool.StateCache,
	batch *quote.BatchQuoter,
	slippage bps.BPS,
	logger *observability.Logger,
	metrics *observability.Metrics,
) error {
	start := time.Now()

	requests := make([]quote.Request, 0, len(pools)*len(cfg.Quote.TradeSizesParsed())*2)
	for _, np := range pools {
		st, ok := stateCache.Get(np.key)
		if ok {
			metrics.RecordCacheHit(ctx)
		} else {
			metrics.RecordCacheMiss(ctx)
			st = np.rebuild()
			stateCache.Set(np.key, st)
		}

		reportPoolHealth(ctx, np.name, st, cfg.Quote.MaxImbalanceRatio, logger, metrics)

		for _, size := range cfg.Quote.TradeSizesParsed() {
			requests = append(requests,
				quote.Request{
					ID:        fmt.Sprintf("%s/a_to_b/%d", np.name, size),
					Pool:      st,
					Direction: quote.AToB,
					AmountIn:  size,
					Slippage:  slippage,
				},
				quote.Request{
					ID:        fmt.Sprintf("%s/b_to_a/%d", np.name, size),
					Pool:      st,
					Direction: quote.BToA,
					AmountIn:  size,
					Slippage:  slippage,
				},
			)
		}
	}

	outcomes, err := batch.QuoteAll(ctx, requests)
	if err != nil {
		return fmt.Errorf("quote cycle: %w", err)
	}

	failures := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failures++
			continue
		}
		logger.Info("quote",
			"id", o.ID,
			"amount_in", o.Quote.AmountIn,
			"amount_out", o.Quote.AmountOut,
			"min_amount_out", o.Quote.MinAmountOut,
			"impact_ppb", o.Quote.ImpactPPB,
		)
	}

	logger.Info("quote cycle complete",
		"quotes", len(outcomes),
		"failures", failures,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func reportPoolHealth(
	ctx context.Context,
	name string,
	st *pool.State,
	maxImbalanceRatio uint64,
	logger *observability.Logger,
	metrics *observability.Metrics,
) {
	q := quote.NewQuoter(st)

	if !q.Balanced(maxImbalanceRatio) {
		logger.Warn("pool imbalanced beyond threshold",
			"pool", name,
			"balance_a", st.BalanceA,
			"balance_b", st.BalanceB,
			"max_ratio", maxImbalanceRatio,
		)
	}

	vp, err := q.VirtualPrice()
	if err != nil {
		metrics.RecordError(ctx, "virtual_price")
		logger.LogError(ctx, "virtual price unavailable", err, "pool", name)
		return
	}

	logger.Info("pool state",
		"pool", name,
		"amp", q.Amp(),
		"balance_a", st.BalanceA,
		"balance_b", st.BalanceB,
		"lp_supply", st.LPSupply,
		"virtual_price", vp.String(),
	)
}

// runHTTPServer serves health checks and metrics until the context ends.
func runHTTPServer(ctx context.Context, port int, metrics *observability.Metrics, logger *observability.Logger) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})

	mux.Handle("/metrics", metrics.Handler())

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("HTTP server listening", "address", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
