package integration

import (
	"context"
	"testing"
	"time"

	"restaurant-ordering/internal/catalog"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/database"
	"restaurant-ordering/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestEnv holds the two stores backing an integration run.
type TestEnv struct {
	Pool      *pgxpool.Pool
	MenuColl  *mongo.Collection
	MenuStore catalog.Store
}

// SetupTestEnv starts PostgreSQL and MongoDB containers, migrates the ledger
// schema and returns handles to both stores.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, config.DatabaseConfig{MaxConnections: 10, MinConnections: 2}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongodb container: %v", err)
	}
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate mongodb container: %v", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get mongodb connection string: %v", err)
	}

	mongoCfg := config.MongoConfig{URI: uri, Database: "testdb", Collection: "menuitems", Timeout: 10 * time.Second}
	client, err := database.NewMongoClient(ctx, mongoCfg, logger)
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	coll := client.Database(mongoCfg.Database).Collection(mongoCfg.Collection)

	return &TestEnv{
		Pool:      pool,
		MenuColl:  coll,
		MenuStore: catalog.NewMongoStore(coll, logger),
	}
}

// SeedMenu replaces the catalog with a burger and fries and returns the
// stored items in that order.
func SeedMenu(t *testing.T, env *TestEnv) []model.MenuItem {
	t.Helper()

	ctx := context.Background()
	if _, err := env.MenuColl.DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("failed to clear menu: %v", err)
	}

	var items []model.MenuItem
	for _, in := range []model.MenuItemInput{
		{Name: "Burger", Description: "Beef, cheddar", Category: "Mains", Price: 5.00},
		{Name: "Fries", Description: "Sea salt", Category: "Sides", Price: 2.50},
	} {
		item, err := env.MenuStore.Create(ctx, &in)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", in.Name, err)
		}
		items = append(items, *item)
	}
	return items
}

// CleanupLedger removes all orders and users.
func CleanupLedger(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"order_items", "orders", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// CountOrders returns the number of rows in the orders table.
func CountOrders(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM orders").Scan(&n); err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return n
}
