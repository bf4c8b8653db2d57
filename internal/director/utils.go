package director

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/telop/internal/system"
)

var scriptExtensions = []string{".yaml", ".yml", ".json"}

// GenerateScriptPath creates a timestamped script filename inside dir.
func GenerateScriptPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("telop_%s.yaml", timestamp))
}

// FindLatestScript returns the most recently modified script file in dir.
func FindLatestScript(dir string) (string, error) {
	return system.FindLatest(dir, scriptExtensions)
}
