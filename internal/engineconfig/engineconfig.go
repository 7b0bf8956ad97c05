package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds window and overlay preferences for the demo viewer. Persisted across runs.
// Simulation parameters live in the scene file, not here.
type EnginePrefs struct {
	ShowFPS      bool `json:"show_fps"`
	ShowStats    bool `json:"show_stats"`
	ShowContacts bool `json:"show_contacts"`
	GridVisible  bool `json:"grid_visible"`
	Fullscreen   bool `json:"fullscreen"`
	WindowWidth  int  `json:"window_width"`
	WindowHeight int  `json:"window_height"`
	TargetFPS    int  `json:"target_fps"`
}

// Default returns default engine preferences (FPS and stats on, grid on, 1280x720 at 60 FPS).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      true,
		ShowStats:    true,
		ShowContacts: false,
		GridVisible:  true,
		Fullscreen:   false,
		WindowWidth:  1280,
		WindowHeight: 720,
		TargetFPS:    60,
	}
}

// Load reads engine preferences from config/engine.json.
func Load() (EnginePrefs, error) {
	return LoadFrom(EngineConfigPath)
}

// LoadFrom reads engine preferences from path. If the file is missing or invalid,
// returns Default() and does not create a file. Non-positive sizes fall back to defaults.
func LoadFrom(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	def := Default()
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = def.WindowWidth, def.WindowHeight
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = def.TargetFPS
	}
	return p, nil
}

// Save writes engine preferences to config/engine.json.
func Save(p EnginePrefs) error {
	return SaveTo(EngineConfigPath, p)
}

// SaveTo writes engine preferences to path, creating the directory if needed.
func SaveTo(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
