package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/murkotick/product-pricing-service/internal/app/product/queries/get_price_history"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/get_product"
	"github.com/murkotick/product-pricing-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-pricing-service/internal/app/product/relay"
	"github.com/murkotick/product-pricing-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-pricing-service/internal/app/product/usecases/delete_product"
	"github.com/murkotick/product-pricing-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-pricing-service/internal/app/product/validation"
	"github.com/murkotick/product-pricing-service/internal/config"
	"github.com/murkotick/product-pricing-service/internal/integrations/exchangerate"
	"github.com/murkotick/product-pricing-service/internal/pkg/clock"
	"github.com/murkotick/product-pricing-service/internal/pkg/logging"
	"github.com/murkotick/product-pricing-service/internal/transport/events"
	grpchealth "github.com/murkotick/product-pricing-service/internal/transport/grpc/health"
	httptransport "github.com/murkotick/product-pricing-service/internal/transport/http"
	httpproduct "github.com/murkotick/product-pricing-service/internal/transport/http/product"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stdout, logging.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.Server.ServiceName,
		Environment: cfg.Server.Environment,
	})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		log.Fatalf("server: %v", err)
	}
}

// run serves until ctx is cancelled or a component fails. Every resource it
// opens is released before it returns.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.close()

	dispatcher, err := events.NewDispatcher(ctx, events.Config{
		Driver:       cfg.Bus.Driver,
		Prefix:       cfg.Bus.Prefix,
		NATSURL:      cfg.Bus.NATSURL,
		KafkaBrokers: cfg.Bus.KafkaBrokers,
		Redis: events.RedisConfig{
			Addr:     cfg.Bus.RedisAddr,
			Password: cfg.Bus.RedisPassword,
			DB:       cfg.Bus.RedisDB,
			MaxLen:   cfg.Bus.RedisStreamMax,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("bus: %w", err)
	}
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logger.Warn("close bus", slog.String("error", err.Error()))
		}
	}()

	rates := exchangerate.New(exchangerate.Config{
		BaseURL:      cfg.ExchangeRate.BaseURL,
		APIKey:       cfg.ExchangeRate.APIKey,
		Endpoint:     cfg.ExchangeRate.Endpoint,
		BaseCurrency: cfg.ExchangeRate.BaseCurrency,
		Timeout:      cfg.ExchangeRate.Timeout,
		CacheTTL:     cfg.ExchangeRate.CacheTTL,
		CacheSize:    cfg.ExchangeRate.CacheSize,
	}, logger)

	clk := clock.System
	v := validation.New()

	// CQRS wiring
	cmds := httpproduct.Commands{
		Create: create_product.NewInteractor(st.tx, v, clk),
		Update: update_product.NewInteractor(st.tx, v, clk),
		Delete: delete_product.NewInteractor(st.tx, clk),
	}
	qrys := httpproduct.Queries{
		Get:     get_product.NewHandler(st.readModel, rates),
		List:    list_products.NewHandler(st.readModel, rates),
		History: get_price_history.NewHandler(st.readModel, rates),
	}
	router := httptransport.NewRouter(httpproduct.NewHandler(cmds, qrys, logger), logger)
	httpSrv := httptransport.NewServer(cfg.Server.HTTPAddr, router)

	healthSrv := grpchealth.NewServer()
	lis, err := net.Listen("tcp", cfg.Server.GRPCHealthAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.GRPCHealthAddr, err)
	}

	outboxRelay := relay.New(st.outbox, dispatcher, clk, logger, cfg.Outbox.PollInterval, cfg.Outbox.BatchSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.Server.HTTPAddr), slog.String("store", cfg.Store.Driver))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("grpc health server listening", slog.String("addr", cfg.Server.GRPCHealthAddr))
		return healthSrv.Serve(lis)
	})
	g.Go(func() error {
		return outboxRelay.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		healthSrv.SetServing(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpSrv.Shutdown(shutdownCtx)
		healthSrv.Stop(shutdownTimeout)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("server stopped")
	return nil
}
