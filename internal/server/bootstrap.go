package server

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"kosymspell/internal/config"
	"kosymspell/internal/corrector"
	"kosymspell/internal/customdict"
	"kosymspell/internal/dictsource"
)

// Bootstrap opens the dictionary source and the custom word store named by
// cfg and builds the correction service over them. The returned func
// releases the connections.
func Bootstrap(ctx context.Context, cfg *config.Config) (*corrector.SpellCorrector, func(), error) {
	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("close: %v", err)
			}
		}
	}

	var source dictsource.Source
	if cfg.Database.URL != "" {
		db, err := dictsource.OpenPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, db.Close)
		source = dictsource.NewPostgresSource(db)
		log.Printf("dictionary source: postgres")
	} else if cfg.Dictionary.Unigrams != "" {
		source = dictsource.NewFileSource(cfg.Dictionary.Unigrams, cfg.Dictionary.Bigrams)
		log.Printf("dictionary source: %s", cfg.Dictionary.Unigrams)
	}

	var store corrector.WordStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("warning: redis %s unavailable: %v", cfg.Redis.Addr, err)
		}
		store = customdict.NewWithKey(client, cfg.Redis.Key)
	}

	sc, err := corrector.NewSpellCorrector(ctx, cfg.Corrector(), source, store)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init corrector: %w", err)
	}
	return sc, cleanup, nil
}
