package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var L zerolog.Logger

// Init routes the package logger to stdout, or to an append-only file when
// path is non-empty. The terminal UI owns stdout while it runs, so the UI
// mode always passes a file path.
func Init(path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		w = file
	}
	L = log.Output(zerolog.ConsoleWriter{Out: w})
	return nil
}

func Info(v ...interface{})             { L.Info().Msgf("%v", v...) }
func Error(v ...interface{})            { L.Error().Msgf("%v", v...) }
func Infof(f string, v ...interface{})  { L.Info().Msgf(f, v...) }
func Warnf(f string, v ...interface{})  { L.Warn().Msgf(f, v...) }
func Errorf(f string, v ...interface{}) { L.Error().Msgf(f, v...) }
