// Package logfields centralises slog attribute keys so log output stays
// consistent across packages.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeyConfig    = "config"
	KeySidebar   = "sidebar"
	KeyDocID     = "doc_id"
	KeyPath      = "path"
	KeyURL       = "url"
	KeyPlugin    = "plugin"
	KeyDocument  = "document"
	KeyPolicy    = "policy"
	KeyCount     = "count"
	KeyDuration  = "duration_ms"
	KeyMethod    = "method"
	KeyStatus    = "status"
	KeyRequestID = "request_id"
	KeySnapshot  = "snapshot"
	KeyError     = "error"
)

func Config(path string) slog.Attr    { return slog.String(KeyConfig, path) }
func Sidebar(id string) slog.Attr     { return slog.String(KeySidebar, id) }
func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Document(name string) slog.Attr  { return slog.String(KeyDocument, name) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func Snapshot(hash string) slog.Attr  { return slog.String(KeySnapshot, hash) }

// Duration reports d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDuration, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
