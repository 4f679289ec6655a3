package repositories

import (
	"fmt"

	"orders-api/config"
)

// Store bundles the repositories of the configured backend.
type Store struct {
	Users  UserRepository
	Orders OrderRepository
	close  func()
}

func Open(cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case "mongo":
		client, err := config.ConnectMongo(cfg)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		return &Store{
			Users:  NewMongoUserRepository(db, cfg.StoreTimeout),
			Orders: NewMongoOrderRepository(db, cfg.StoreTimeout),
			close:  func() { config.CloseMongo(client) },
		}, nil
	case "postgres":
		pool, err := config.ConnectPostgres(cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:  NewPostgresUserRepository(pool, cfg.StoreTimeout),
			Orders: NewPostgresOrderRepository(pool, cfg.StoreTimeout),
			close:  func() { config.ClosePostgres(pool) },
		}, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func NewMemoryStore() *Store {
	return &Store{
		Users:  NewMemoryUserRepository(),
		Orders: NewMemoryOrderRepository(),
	}
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
