package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/airhockey-mp/config"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	LastAddress string `json:"lastAddress"`
	ShowStats   bool   `json:"showStats"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "airhockey",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings returns nil, nil when nothing has been saved yet.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}
	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// RememberAddress stores the last server that accepted a connection.
func RememberAddress(address string) {
	saved := &SavedSettings{
		LastAddress: address,
		ShowStats:   cfg.Debug.ShowStats,
	}
	_ = SaveSettings(saved)
}

// ApplySavedSettings copies loaded settings into the global config.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}
	if saved.LastAddress != "" {
		cfg.Net.Address = saved.LastAddress
	}
	cfg.Debug.ShowStats = saved.ShowStats
}
