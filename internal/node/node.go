// Package node wires storage, the ledger and the HTTP API into one process.
package node

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"dominion_dao/contract"
	"dominion_dao/internal/config"
	"dominion_dao/internal/server"
	"dominion_dao/internal/storage/sqlite"
	"dominion_dao/internal/txsig"
)

// Node is a running ledger with its API.
type Node struct {
	cfg        config.Config
	logger     *log.Logger
	store      *sqlite.Store
	ledger     *contract.Contract
	httpServer *http.Server
	listener   net.Listener
}

// New opens state, loads genesis and prepares the HTTP server. With an empty
// DBPath the ledger lives in memory and is lost on exit.
func New(cfg config.Config, logger *log.Logger) (*Node, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[DAO] ", log.LstdFlags)
	}
	genesis, err := config.LoadGenesisFile(cfg.GenesisFile)
	if err != nil {
		return nil, err
	}

	n := &Node{cfg: cfg, logger: logger}
	var st contract.State
	if strings.TrimSpace(cfg.DBPath) == "" {
		logger.Printf("state: in memory")
		st = contract.NewMockState()
	} else {
		store, err := openStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		n.store = store
		st = store
	}

	ledger, err := contract.New(st, genesis, contract.WithLogger(logger))
	if err != nil {
		n.Close()
		return nil, fmt.Errorf("init ledger: %w", err)
	}
	n.ledger = ledger

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	deps := &server.Deps{
		Ledger:   ledger,
		Verifier: txsig.Verifier{Asset: ledger.Config().NativeAsset},
		Logger:   logger,
	}
	if n.store != nil {
		deps.Stats = n.store
	}
	n.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewEngine(deps, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return n, nil
}

func openStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	return store, nil
}

// Ledger exposes the contract, mostly for tests.
func (n *Node) Ledger() *contract.Contract {
	return n.ledger
}

// Listen binds the configured address. Serve calls it when it has not been called.
func (n *Node) Listen() (net.Addr, error) {
	if n.listener != nil {
		return n.listener.Addr(), nil
	}
	ln, err := net.Listen("tcp", n.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", n.cfg.Addr, err)
	}
	n.listener = ln
	return ln.Addr(), nil
}

// Serve runs the HTTP server until ctx ends, then shuts it down gracefully.
func (n *Node) Serve(ctx context.Context) error {
	addr, err := n.Listen()
	if err != nil {
		return err
	}
	n.logger.Printf("dao listening on %s", addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := n.httpServer.Serve(n.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), n.cfg.ShutdownTimeout)
		defer cancel()
		if err := n.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close releases the state store.
func (n *Node) Close() {
	if n == nil || n.store == nil {
		return
	}
	if err := n.store.Close(); err != nil {
		n.logger.Printf("close state store: %v", err)
	}
}

// Run builds a node, serves until ctx ends and closes it.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	n, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer n.Close()
	return n.Serve(ctx)
}
