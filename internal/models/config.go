package models

// AppConfig is the singleton application configuration record.
type AppConfig struct {
	DarkMode            bool `json:"darkMode"`
	WhatsAppIntegration bool `json:"whatsappIntegration"`
}

// DefaultAppConfig returns the configuration created when the store
// holds no config blob yet.
func DefaultAppConfig() AppConfig {
	return AppConfig{DarkMode: false, WhatsAppIntegration: true}
}
