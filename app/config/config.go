package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Config holds everything the process needs from the environment. It is
// built once in Load and injected from main, never read ad hoc in handlers.
type Config struct {
	AppPort     string
	JWTSecret   string
	FrontendURL string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	DB *sql.DB
}

var AppConfig *Config

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port, err := strconv.Atoi(get("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	cfg := &Config{
		AppPort:     get("APP_PORT", "8080"),
		JWTSecret:   get("JWT_SECRET", "scolapay-dev-secret"),
		FrontendURL: get("FRONTEND_URL", "http://localhost:3000"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     port,
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", ""),
		DBName:     get("DB_NAME", "scolapay"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),
	}
	AppConfig = cfg
	return cfg
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// InitDB opens the connection pool and verifies connectivity.
func (c *Config) InitDB() {
	db, err := sql.Open("postgres", c.DSN())
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	c.DB = db
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
