package scene

import "fmt"

// ConfigError reports a malformed scene script. It is returned before any
// rasterization happens.
type ConfigError struct {
	Line    int    // 1-based; 0 when the problem is not tied to a line
	Keyword string // directive involved, if any
	Msg     string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Line > 0 && e.Keyword != "":
		return fmt.Sprintf("scene: line %d: %s: %s", e.Line, e.Keyword, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("scene: line %d: %s", e.Line, e.Msg)
	case e.Keyword != "":
		return fmt.Sprintf("scene: %s: %s", e.Keyword, e.Msg)
	}
	return "scene: " + e.Msg
}
