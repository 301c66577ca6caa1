package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Stack is a database and a Redis server running on a private network
type Stack struct {
	Network        *testcontainers.DockerNetwork
	DBContainer    testcontainers.Container
	RedisContainer testcontainers.Container

	DBHost    string
	DBPort    string
	RedisAddr string
}

// Terminate stops the containers and removes the network. t may be nil.
func (s *Stack) Terminate(t testing.TB) {
	ctx := context.Background()
	if s.RedisContainer != nil {
		if err := s.RedisContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Redis: %v", err)
		}
	}
	if s.DBContainer != nil {
		if err := s.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if s.Network != nil {
		if err := s.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// Env returns the settings that point the service at the stack
func (s *Stack) Env() map[string]string {
	return map[string]string{
		"DB_HOST":       s.DBHost,
		"DB_PORT":       s.DBPort,
		"SESSION_STORE": "redis",
		"REDIS_ADDR":    s.RedisAddr,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// StartStack starts the database named by DB_TYPE and DB_IMAGE, creates the
// records and accounts users, and starts Redis. t may be nil.
func StartStack(t testing.TB) (*Stack, error) {
	ctx := context.Background()
	stack := &Stack{}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	stack.Network = nw

	dbType := getenv("DB_TYPE", "postgres")
	image, port := "postgres:17-alpine", "5432"
	if dbType == "mysql" || dbType == "mariadb" {
		image, port = "mariadb:11", "3306"
	}
	tcpDBPort, err := nat.NewPort("tcp", port)
	if err != nil {
		stack.Terminate(t)
		return nil, fmt.Errorf("failed to create database port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getenv("DB_IMAGE", image),
			ExposedPorts: []string{string(tcpDBPort)},
			Env:          dbInitEnv(dbType),
			WaitingFor:   wait.ForListeningPort(tcpDBPort).WithStartupTimeout(60 * time.Second),
			Networks:     []string{nw.Name},
		},
		Started: true,
	})
	if err != nil {
		stack.Terminate(t)
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	stack.DBContainer = dbContainer

	stack.DBHost, _ = dbContainer.Host(ctx)
	mapped, _ := dbContainer.MappedPort(ctx, tcpDBPort)
	stack.DBPort = mapped.Port()
	logMessage(t, "DB_HOST=%s DB_PORT=%s", stack.DBHost, stack.DBPort)

	if err := initUsers(dbType, stack.DBHost, stack.DBPort); err != nil {
		stack.Terminate(t)
		return nil, fmt.Errorf("failed to initialize database users: %w", err)
	}

	tcpRedisPort, _ := nat.NewPort("tcp", "6379")
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getenv("REDIS_IMAGE", "redis:7-alpine"),
			ExposedPorts: []string{string(tcpRedisPort)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Networks:     []string{nw.Name},
		},
		Started: true,
	})
	if err != nil {
		stack.Terminate(t)
		return nil, fmt.Errorf("failed to start redis: %w", err)
	}
	stack.RedisContainer = redisContainer

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, tcpRedisPort)
	stack.RedisAddr = redisHost + ":" + redisPort.Port()
	logMessage(t, "REDIS_ADDR=%s", stack.RedisAddr)

	return stack, nil
}

func dbInitEnv(dbType string) map[string]string {
	switch dbType {
	case "mysql", "mariadb":
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": getenv("DB_ROOT_PASSWORD", "root"),
			"MYSQL_DATABASE":      getenv("DB_DATABASE", "citenote"),
			"MYSQL_USER":          getenv("DB_APP_USER", "citenote_app"),
			"MYSQL_PASSWORD":      getenv("DB_APP_PASSWORD", "citenote_app"),
		}
	default:
		return map[string]string{
			"POSTGRES_USER":     getenv("DB_APP_USER", "citenote_app"),
			"POSTGRES_PASSWORD": getenv("DB_APP_PASSWORD", "citenote_app"),
			"POSTGRES_DB":       getenv("DB_DATABASE", "citenote"),
		}
	}
}

// initUsers creates the accounts user next to the records user the image created
func initUsers(dbType, host, port string) error {
	database := getenv("DB_DATABASE", "citenote")
	user := getenv("DB_USER", "citenote_auth")
	password := getenv("DB_PASSWORD", "citenote_auth")

	var dialector gorm.Dialector
	var statements []string
	switch dbType {
	case "mysql", "mariadb":
		dsn := mysqldriver.NewConfig()
		dsn.User = "root"
		dsn.Passwd = getenv("DB_ROOT_PASSWORD", "root")
		dsn.Net = "tcp"
		dsn.Addr = host + ":" + port
		dialector = mysql.Open(dsn.FormatDSN())
		statements = []string{
			fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", user, password),
			fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", database, user),
			"FLUSH PRIVILEGES",
		}
	default:
		dialector = postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, getenv("DB_APP_USER", "citenote_app"), getenv("DB_APP_PASSWORD", "citenote_app"), database))
		statements = []string{
			fmt.Sprintf("CREATE USER %s WITH PASSWORD '%s'", user, password),
			fmt.Sprintf("GRANT ALL PRIVILEGES ON DATABASE %s TO %s", database, user),
			fmt.Sprintf("GRANT ALL ON SCHEMA public TO %s", user),
			fmt.Sprintf("ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON TABLES TO %s", user),
			fmt.Sprintf("ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON SEQUENCES TO %s", user),
		}
	}

	var db *gorm.DB
	var err error
	// the port listens before the server accepts logins
	for i := 0; i < 30; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%w: when executing > %s", err, stmt)
		}
	}
	return nil
}

func logMessage(t testing.TB, format string, args ...interface{}) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}
