package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so an operator-managed config file can spell
// lifetimes as "15m" or "24h".
type StructuredJSONConfig struct {
	App struct {
		Env       string `json:"env"`
		ClientURL string `json:"client_url"`
		Version   string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		AccessSecret        string   `json:"access_secret"`
		VerifyEmailSecret   string   `json:"verify_email_secret"`
		ResetPasswordSecret string   `json:"reset_password_secret"`
		Issuer              string   `json:"issuer"`
		AccessTTL           Duration `json:"access_ttl"`
		RefreshDays         int      `json:"refresh_days"`
		VerifyTTL           Duration `json:"verify_ttl"`
		ResetTTL            Duration `json:"reset_ttl"`
		BcryptCost          int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"mail,omitempty"`

	MailCheck struct {
		BaseURL string `json:"base_url"`
		APIKey  string `json:"api_key"`
	} `json:"mailcheck,omitempty"`

	OAuth struct {
		GoogleClientID     string `json:"google_client_id"`
		GoogleClientSecret string `json:"google_client_secret"`
		GoogleRedirectURL  string `json:"google_redirect_url"`
	} `json:"oauth,omitempty"`

	Workers struct {
		SweepInterval    Duration `json:"sweep_interval"`
		SessionRetention Duration `json:"session_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:       jsonCfg.App.Env,
			ClientURL: jsonCfg.App.ClientURL,
			Version:   jsonCfg.App.Version,
		},
		Auth: Auth{
			AccessSecret:        jsonCfg.Auth.AccessSecret,
			VerifyEmailSecret:   jsonCfg.Auth.VerifyEmailSecret,
			ResetPasswordSecret: jsonCfg.Auth.ResetPasswordSecret,
			Issuer:              jsonCfg.Auth.Issuer,
			AccessTTL:           time.Duration(jsonCfg.Auth.AccessTTL),
			RefreshDays:         jsonCfg.Auth.RefreshDays,
			VerifyTTL:           time.Duration(jsonCfg.Auth.VerifyTTL),
			ResetTTL:            time.Duration(jsonCfg.Auth.ResetTTL),
			BcryptCost:          jsonCfg.Auth.BcryptCost,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Mail: Mail{
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
		},
		MailCheck: MailCheck{
			BaseURL: jsonCfg.MailCheck.BaseURL,
			APIKey:  jsonCfg.MailCheck.APIKey,
		},
		OAuth: OAuth{
			GoogleClientID:     jsonCfg.OAuth.GoogleClientID,
			GoogleClientSecret: jsonCfg.OAuth.GoogleClientSecret,
			GoogleRedirectURL:  jsonCfg.OAuth.GoogleRedirectURL,
		},
		Workers: Workers{
			SweepInterval:    time.Duration(jsonCfg.Workers.SweepInterval),
			SessionRetention: time.Duration(jsonCfg.Workers.SessionRetention),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
