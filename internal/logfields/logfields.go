package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by the render pipeline, cache and preview server.
const (
	KeyPage       = "page"
	KeyLanguage   = "language"
	KeyMode       = "mode"
	KeyModeSource = "mode_source"
	KeyLayout     = "layout"
	KeyAdmonition = "admonition_kind"
	KeyBuildID    = "build_id"
	KeyDurationMS = "duration_ms"
	KeyCache      = "cache"
	KeyPath       = "path"
	KeyPages      = "pages"
	KeyError      = "error"
)

func Page(p string) slog.Attr       { return slog.String(KeyPage, p) }
func Language(l string) slog.Attr   { return slog.String(KeyLanguage, l) }
func Mode(m string) slog.Attr       { return slog.String(KeyMode, m) }
func ModeSource(s string) slog.Attr { return slog.String(KeyModeSource, s) }
func Layout(l string) slog.Attr     { return slog.String(KeyLayout, l) }
func Admonition(k string) slog.Attr { return slog.String(KeyAdmonition, k) }
func BuildID(id string) slog.Attr   { return slog.String(KeyBuildID, id) }
func Cache(result string) slog.Attr { return slog.String(KeyCache, result) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Pages(n int) slog.Attr         { return slog.Int(KeyPages, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
