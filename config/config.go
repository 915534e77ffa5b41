package config

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/forkline/restaurant-admin-api/models"
)

// Config holds the project config values
type Config struct {
	URL             string
	DatabaseName    string
	BaseURL         string
	Port            string
	Brand           string
	ExpoPushURL     string
	ExpoAccessToken string
	LoyaltySyncURL  string
	SendgridAPIKey  string
	DigestEmail     string

	CloudinaryUploadPreset string
	CloudinaryAPISecret    string
}

// New sets up all config related services
func New() *Config {
	// .env is optional, deployed pods set env vars directly
	_ = godotenv.Load()

	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:             os.Getenv("DB_URI"),
		DatabaseName:    os.Getenv("DB_NAME"),
		BaseURL:         os.Getenv("BASE_URL"),
		Port:            os.Getenv("PORT"),
		Brand:           os.Getenv("BRAND"),
		ExpoPushURL:     os.Getenv("EXPO_PUSH_URL"),
		ExpoAccessToken: os.Getenv("EXPO_ACCESS_TOKEN"),
		LoyaltySyncURL:  os.Getenv("LOYALTY_SYNC_URL"),
		SendgridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		DigestEmail:     os.Getenv("DIGEST_EMAIL"),

		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
	}
}

// setLogger returns a zap logger for the given APP_ENV value. Anything other than
// production or development falls back to the example logger used in tests.
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)

	errText := ""
	if err != nil {
		errText = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{Message: message, Error: errText},
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
