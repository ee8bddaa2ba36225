package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Cart     CartConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	WebAPIKey       string
}

type CartConfig struct {
	Backend       string // postgres, redis or memory
	SlotKeyPrefix string
	CookieName    string
	RedisTTLHours int
}

type CheckoutConfig struct {
	ShippingFee    int64 // whole naira
	PaymentDelayMS int
}

func Load() *Config {
	// .env is optional; viper falls back to real env vars
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CART_BACKEND", "postgres")
	viper.SetDefault("CART_SLOT_PREFIX", "kam-cart")
	viper.SetDefault("CART_COOKIE_NAME", "kam_cart_session")
	viper.SetDefault("CART_REDIS_TTL_HOURS", 72)
	viper.SetDefault("CHECKOUT_SHIPPING_FEE", 1500)
	viper.SetDefault("CHECKOUT_PAYMENT_DELAY_MS", 1500)

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       viper.GetString("FIREBASE_PROJECT_ID"),
			CredentialsFile: viper.GetString("FIREBASE_CREDENTIALS_FILE"),
			WebAPIKey:       viper.GetString("FIREBASE_WEB_API_KEY"),
		},
		Cart: CartConfig{
			Backend:       viper.GetString("CART_BACKEND"),
			SlotKeyPrefix: viper.GetString("CART_SLOT_PREFIX"),
			CookieName:    viper.GetString("CART_COOKIE_NAME"),
			RedisTTLHours: viper.GetInt("CART_REDIS_TTL_HOURS"),
		},
		Checkout: CheckoutConfig{
			ShippingFee:    viper.GetInt64("CHECKOUT_SHIPPING_FEE"),
			PaymentDelayMS: viper.GetInt("CHECKOUT_PAYMENT_DELAY_MS"),
		},
	}
}
