package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret         string
	StaffEmail        string
	StaffPasswordHash string
	AppEnv            string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] no .env file found, using system ENV")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	StaffEmail = GetEnv("STAFF_EMAIL")
	StaffPasswordHash = GetEnv("STAFF_PASSWORD_HASH")
	AppEnv = GetEnv("APP_ENV", "development")

	if JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set, staff dashboard login will fail")
	}
	if StaffEmail == "" || StaffPasswordHash == "" {
		log.Println("[WARN] STAFF_EMAIL / STAFF_PASSWORD_HASH not set, staff login disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
