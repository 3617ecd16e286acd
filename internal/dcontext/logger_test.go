package dcontext

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func bufferLogger(buf *bytes.Buffer) *logrus.Entry {
	logger := logrus.New()
	logger.Out = buf
	logger.Formatter = &logrus.JSONFormatter{}
	return logrus.NewEntry(logger)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	buf.Reset()
	return fields
}

func TestGetLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), bufferLogger(&buf))

	GetLoggerWithFields(ctx, map[string]any{"algorithm": "md5", "size": 3}).Info("done")
	fields := decodeLine(t, &buf)
	require.Equal(t, "md5", fields["algorithm"])
	require.EqualValues(t, 3, fields["size"])

	// the context logger is left untouched
	GetLogger(ctx).Info("again")
	require.NotContains(t, decodeLine(t, &buf), "algorithm")
}

type testKey string

func TestGetLoggerKeys(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), bufferLogger(&buf))
	ctx = context.WithValue(ctx, testKey("job"), "nightly")

	GetLogger(ctx, testKey("job"), testKey("missing")).Warn("slow")
	fields := decodeLine(t, &buf)
	require.Equal(t, "nightly", fields["job"])
	require.NotContains(t, fields, "missing")
}

func TestSetDefaultLogger(t *testing.T) {
	defaultLoggerMu.RLock()
	saved := defaultLogger
	defaultLoggerMu.RUnlock()
	t.Cleanup(func() { SetDefaultLogger(saved) })

	var buf bytes.Buffer
	SetDefaultLogger(bufferLogger(&buf).WithField("service", "mdsum"))

	GetLogger(Background()).Error("failed")
	fields := decodeLine(t, &buf)
	require.Equal(t, "mdsum", fields["service"])
	require.NotEmpty(t, fields[instanceIDKey{}.String()])
}
