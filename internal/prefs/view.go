package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const viewFile = "view.json"

// View holds TUI presentation preferences that survive restarts.
type View struct {
	HideDone bool `json:"hide_done"`
}

func viewPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "taskdeck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, viewFile), nil
}

func SaveView(v View) error {
	path, err := viewPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadView returns the zero View when no preferences were saved yet.
func LoadView() (View, error) {
	path, err := viewPath()
	if err != nil {
		return View{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return View{}, nil
		}
		return View{}, err
	}
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, err
	}
	return v, nil
}
