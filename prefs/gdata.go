package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

// settingsItem is the item name inside the app's data directory.
const settingsItem = "audio_settings"

// GData persists volumes as a JSON item in the platform data directory
// (XDG on Linux, AppData on Windows, local storage on wasm).
type GData struct {
	m *gdata.Manager
}

// OpenGData opens the data directory for appName.
func OpenGData(appName string) (*GData, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("prefs: open data dir: %w", err)
	}
	return &GData{m: m}, nil
}

// Load reads the saved volumes. No item on disk means nothing was saved
// yet; that is not an error.
func (g *GData) Load() (Volumes, bool, error) {
	var v Volumes
	data, err := g.m.LoadItem(settingsItem)
	if err != nil {
		return v, false, fmt.Errorf("prefs: load %s: %w", settingsItem, err)
	}
	if len(data) == 0 {
		return v, false, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("prefs: parse %s: %w", settingsItem, err)
	}
	return v.Clamp(), true, nil
}

// Save writes the volumes, replacing any previous item.
func (g *GData) Save(v Volumes) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("prefs: encode settings: %w", err)
	}
	if err := g.m.SaveItem(settingsItem, data); err != nil {
		return fmt.Errorf("prefs: save %s: %w", settingsItem, err)
	}
	return nil
}
