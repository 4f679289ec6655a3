package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"orders-api/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("Failed to connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("Failed to ping test mongo: %v", err)
	}

	db := client.Database("orders_api_test_" + time.Now().Format("150405"))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("Failed to connect to test database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("Failed to ping test database: %v", err)
	}

	if err := config.RunMigrations(dsn, "../database/migration"); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE users, orders"); err != nil {
		pool.Close()
		t.Fatalf("Failed to clean up tables: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

func TestMongoUserRepository(t *testing.T) {
	testUserRepository(t, NewMongoUserRepository(setupMongo(t), 5*time.Second))
}

func TestMongoOrderRepository(t *testing.T) {
	testOrderRepository(t, NewMongoOrderRepository(setupMongo(t), 5*time.Second))
}

func TestPostgresUserRepository(t *testing.T) {
	testUserRepository(t, NewPostgresUserRepository(setupPostgres(t), 5*time.Second))
}

func TestPostgresOrderRepository(t *testing.T) {
	testOrderRepository(t, NewPostgresOrderRepository(setupPostgres(t), 5*time.Second))
}
