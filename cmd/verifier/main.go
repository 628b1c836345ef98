package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/block"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/sigverify"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/transaction"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/service/replay"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/source/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/store/bolt"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/store/memory"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/utxo/clickhouse"
	utxomemory "github.com/goodnatureofminers/blockinsight7000-consensus/internal/utxo/memory"
	"github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Network       string        `long:"network" env:"VERIFIER_NETWORK" description:"network name (mainnet, testnet, regtest)" required:"true"`
	RPCURL        string        `long:"rpc-url" env:"VERIFIER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"VERIFIER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"VERIFIER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	ZMQAddr       string        `long:"zmq-addr" env:"VERIFIER_ZMQ_ADDR" description:"ZMQ hashblock endpoint; polling only when empty"`
	BoltPath      string        `long:"bolt-path" env:"VERIFIER_BOLT_PATH" description:"bbolt file for headers and blocks; in-memory when empty"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"VERIFIER_CLICKHOUSE_DSN" description:"ClickHouse DSN for the UTXO set and block records; in-memory when empty"`
	MetricsAddr   string        `long:"metrics-addr" env:"VERIFIER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	Workers       int           `long:"workers" env:"VERIFIER_WORKERS" description:"concurrent RPC requests and transaction checks" default:"4"`
	HeadersPage   int           `long:"headers-page" env:"VERIFIER_HEADERS_PAGE" description:"headers requested per round" default:"2000"`
	PollInterval  time.Duration `long:"poll-interval" env:"VERIFIER_POLL_INTERVAL" description:"wait between rounds once caught up" default:"10s"`
	RetryInterval time.Duration `long:"retry-interval" env:"VERIFIER_RETRY_INTERVAL" description:"wait after a failed round" default:"5s"`
	Mempool       bool          `long:"mempool" env:"VERIFIER_MEMPOOL" description:"verify node mempool transactions once synchronized"`
	MempoolLimit  int           `long:"mempool-limit" env:"VERIFIER_MEMPOOL_LIMIT" description:"new mempool transactions fetched per round" default:"5000"`
	MempoolSize   uint64        `long:"mempool-size" env:"VERIFIER_MEMPOOL_SIZE" description:"mempool entries kept; zero is unbounded" default:"300000"`
	SigCacheSize  uint64        `long:"sigcache-size" env:"VERIFIER_SIGCACHE_SIZE" description:"verified signatures cached" default:"500000"`
	ForceLowS     bool          `long:"policy-low-s" env:"VERIFIER_POLICY_LOW_S" description:"reject high-S signatures in the mempool"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.BoltPath != "" && cfg.ClickhouseDSN == "" {
		logger.Fatal("a bolt chain store needs the ClickHouse UTXO set; set --clickhouse-dsn or drop --bolt-path")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("verifier failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	net, err := params.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	chainParams, err := params.ForNetwork(net)
	if err != nil {
		return err
	}
	network := model.Network(net.String())
	logger = logger.With(zap.String("network", string(network)))

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	var (
		utxos   block.UTXOSet
		headers chain.HeaderStore
		blocks  chain.BlockStore
		sink    replay.BlockSink
	)
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, network, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
		utxos, sink = repo, repo
	} else {
		utxos = utxomemory.New()
	}

	if cfg.BoltPath != "" {
		store, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()
		headers, blocks = store, store
	} else {
		headers, blocks = memory.NewHeaderStore(), memory.NewBlockStore()
	}

	var recorder *replay.BlockRecorder
	if sink != nil {
		recorder, err = replay.NewBlockRecorder(blocks, sink, logger)
		if err != nil {
			return err
		}
		recorder.Start(ctx)
		defer recorder.Stop()
		blocks = recorder
	}

	sigs := sigverify.NewCached(sigverify.New(), cfg.SigCacheSize, sigverify.DefaultCacheTTL, metrics.NewSignatureCache(network))
	go sigs.Start()
	defer sigs.Stop()

	clk := clock.NewDefaultClock()
	txMetrics := metrics.NewTransactionVerifier(network)

	var pool *mempool.Pool
	if cfg.Mempool {
		pool = mempool.New(mempool.Config{
			Verifier: transaction.New(transaction.Config{
				Params:    chainParams,
				UTXOs:     utxos,
				Signature: sigs,
				Metrics:   txMetrics,
				Policy:    transaction.Policy{ForceLowS: cfg.ForceLowS, StrictNumberEncoding: true},
				SpendKind: model.MempoolSpend,
			}, logger),
			UTXOs:    utxos,
			Clock:    clk,
			Metrics:  metrics.NewMempool(network),
			Capacity: cfg.MempoolSize,
		}, logger)
		pool.Start()
		defer pool.Stop()
	}

	blockCfg := block.Config{
		Params:             chainParams,
		UTXOs:              utxos,
		Signature:          sigs,
		Workers:            cfg.Workers,
		Metrics:            metrics.NewBlockVerifier(network),
		TransactionMetrics: txMetrics,
	}
	if pool != nil {
		blockCfg.Mempool = pool
	}

	c, err := chain.New(ctx, chain.Config{
		Params:         chainParams,
		Headers:        headers,
		Blocks:         blocks,
		Verifier:       block.New(blockCfg, logger),
		Clock:          clk,
		Metrics:        metrics.NewChain(network),
		MaxHeadersPage: cfg.HeadersPage,
	}, logger)
	if err != nil {
		return fmt.Errorf("init chain: %w", err)
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	source, err := bitcoin.NewSource(
		bitcoin.NewObservedClient(rpcClient, metrics.NewRPCClient(network)),
		cfg.Workers,
		logger,
	)
	if err != nil {
		return err
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}

	svcCfg := replay.Config{
		Chain:         c,
		Source:        source,
		Metrics:       metrics.NewReplay(network),
		Clock:         clk,
		Network:       network,
		HeadersPage:   cfg.HeadersPage,
		MempoolLimit:  cfg.MempoolLimit,
		PollInterval:  cfg.PollInterval,
		RetryInterval: cfg.RetryInterval,
		BlockSignal:   blockSignal,
	}
	if pool != nil {
		svcCfg.Mempool = pool
	}
	if recorder != nil {
		svcCfg.Recorder = recorder
	}

	svc, err := replay.NewService(svcCfg, logger)
	if err != nil {
		return err
	}

	err = svc.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
