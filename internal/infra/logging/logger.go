package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup はグローバルロガーを設定する。dev はコンソール、それ以外はJSON。
func Setup(dev bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if dev {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	// ctxにロガーが無いときも出す
	zerolog.DefaultContextLogger = &log.Logger
	return log.Logger
}
