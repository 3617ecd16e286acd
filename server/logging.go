package server

import (
	"context"
	"fmt"
	"time"

	logstash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/distribution/mdhash/configuration"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/sirupsen/logrus"
)

// ConfigureLogging prepares the context with a logger using the
// configuration.
func ConfigureLogging(ctx context.Context, config *configuration.Configuration) (context.Context, error) {
	logrus.SetLevel(logLevel(config.Log.Level))
	logrus.SetReportCaller(config.Log.ReportCaller)

	formatter := config.Log.Formatter
	if formatter == "" {
		formatter = "text" // default formatter
	}

	switch formatter {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:   time.RFC3339Nano,
			DisableHTMLEscape: true,
		})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "logstash":
		logrus.SetFormatter(&logstash.LogstashFormatter{
			Formatter: &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano},
			Fields:    logrus.Fields{"@version": "1", "type": "mdsum"},
		})
	default:
		return ctx, fmt.Errorf("unsupported logging formatter: %q", config.Log.Formatter)
	}

	logrus.Debugf("using %q logging formatter", formatter)

	if len(config.Log.Fields) > 0 {
		ctx = dcontext.WithLogger(ctx, dcontext.GetLoggerWithFields(ctx, config.Log.Fields))
	}

	dcontext.SetDefaultLogger(dcontext.GetLogger(ctx))
	return ctx, nil
}

func logLevel(level configuration.Loglevel) logrus.Level {
	l, err := logrus.ParseLevel(string(level))
	if err != nil {
		l = logrus.InfoLevel
		logrus.Warnf("error parsing level %q: %v, using %q", level, err, l)
	}

	return l
}
