package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/kumihan/log"
)

func Example_text() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("parse complete", slog.Int("nodes", 4))
	logger.Debug("not shown")

	// Output:
	// level=INFO msg="parse complete" nodes=4
}
