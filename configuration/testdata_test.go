package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const scenarioTOML = `
[swipe.up]
3 = "ctrl+t"
4 = "super+Up"

[swipe.down]
3 = "ctrl+w"

[pinch]
in = "ctrl+minus"

[gesture.trigger.pinch.in]
scale = 0.3

[firefox.swipe.up]
3 = "ctrl+y"

[chrome.swipe.up]
3 = ""
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
