// Package app assembles the recommender from configuration. The HTTP service
// and the operator CLI share it so both see the same catalogs.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/config"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/db"
	dbRedis "github.com/Tejass087/Skin-Care-Reccomadation/internal/db/redis"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	catalogrepo "github.com/Tejass087/Skin-Care-Reccomadation/internal/repository/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/repository/curated"
	smtpTransport "github.com/Tejass087/Skin-Care-Reccomadation/internal/transport/smtp"
	deliveryuc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/delivery"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/matcher"
	recommenduc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/recommend"
)

// OpenStore connects to the configured store and waits until it answers.
// It returns a nil store when none is configured.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	// Valkey speaks the Redis protocol; rueidis serves both drivers.
	switch cfg.Driver {
	case "redis", "valkey":
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to database",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}

// Engines builds one engine per configured catalog, in stable kind order.
func Engines(cfg config.Config, logger *zap.Logger) ([]*recommenduc.Engine, error) {
	var engines []*recommenduc.Engine
	for _, kind := range domcat.Kinds() {
		cc, ok := cfg.Catalogs[string(kind)]
		if !ok {
			continue
		}
		profile, err := domcat.DefaultProfile(kind)
		if err != nil {
			return nil, err
		}
		profile = profile.WithTopK(cc.SimilarityTopK, cc.FilterTopK)
		engines = append(engines, recommenduc.NewEngine(profile, logger))
	}
	if len(engines) == 0 {
		return nil, fmt.Errorf("no catalogs configured")
	}
	return engines, nil
}

// Sources builds the snapshot source of every configured catalog.
// store may be nil when no catalog uses the redis source.
func Sources(cfg config.Config, store db.Store, logger *zap.Logger) (catalogrepo.Mux, error) {
	policy, err := catalogrepo.ParsePricePolicy(cfg.Import.PricePolicy)
	if err != nil {
		return nil, err
	}

	csvPaths := make(map[domcat.Kind]string)
	parquetPaths := make(map[domcat.Kind]string)
	var redisKinds []domcat.Kind
	for name, cc := range cfg.Catalogs {
		kind, err := domcat.ParseKind(name)
		if err != nil {
			return nil, err
		}
		switch cc.Source {
		case config.SourceCSV:
			csvPaths[kind] = cc.Path
		case config.SourceParquet:
			parquetPaths[kind] = cc.Path
		case config.SourceRedis:
			redisKinds = append(redisKinds, kind)
		default:
			return nil, fmt.Errorf("catalogs.%s: unknown source %q", name, cc.Source)
		}
	}

	mux := make(catalogrepo.Mux, len(cfg.Catalogs))
	csvSrc := catalogrepo.NewCSV(csvPaths, policy, logger)
	for kind := range csvPaths {
		mux[kind] = csvSrc
	}
	parquetSrc := catalogrepo.NewParquet(parquetPaths, policy, logger)
	for kind := range parquetPaths {
		mux[kind] = parquetSrc
	}
	if len(redisKinds) > 0 {
		if store == nil {
			return nil, fmt.Errorf("redis catalog source requires a database")
		}
		repo := catalogrepo.NewRedis(store, cfg.Database.KeyPrefix, logger)
		for _, kind := range redisKinds {
			mux[kind] = repo
		}
	}
	return mux, nil
}

// Recommender wires engines, sources and the metrics recorder into a service.
// Catalogs are not loaded; call ReloadAll.
func Recommender(
	cfg config.Config,
	store db.Store,
	recorder recommenduc.Recorder,
	logger *zap.Logger,
) (*recommenduc.Service, error) {
	engines, err := Engines(cfg, logger)
	if err != nil {
		return nil, err
	}
	sources, err := Sources(cfg, store, logger)
	if err != nil {
		return nil, err
	}

	svc := recommenduc.New(logger, engines...).WithRecorder(recorder)
	for kind, src := range sources {
		svc.WithSource(kind, src)
	}
	return svc, nil
}

// Matcher loads the curated table and builds the matcher.
func Matcher(cfg config.CuratedConfig, logger *zap.Logger) (*matcher.Matcher, error) {
	table, err := curated.Load(cfg.Path)
	if err != nil {
		return nil, err
	}
	return matcher.New(table, logger), nil
}

// Delivery builds the email service. Without SMTP settings every send fails
// with domain.ErrDeliveryFailed.
func Delivery(cfg config.SMTPConfig, logger *zap.Logger) (*deliveryuc.Service, error) {
	if !cfg.Enabled() {
		logger.Info("Email delivery disabled: smtp.host not set")
		return deliveryuc.New(nil, logger), nil
	}

	sender, err := smtpTransport.New(smtpTransport.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		From:     cfg.From,
		FromName: cfg.FromName,
		Username: cfg.Username,
		Password: cfg.Password,
		UseTLS:   cfg.UseTLS,
		Timeout:  time.Duration(cfg.TimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("smtp sender: %w", err)
	}

	breaker := smtpTransport.NewBreaker(sender, smtpTransport.BreakerSettings{}, logger)
	return deliveryuc.New(breaker, logger), nil
}
