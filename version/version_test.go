package version

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFprintVersion(t *testing.T) {
	var buf bytes.Buffer
	FprintVersion(&buf)

	fields := strings.Fields(buf.String())
	require.Len(t, fields, 3)
	require.Equal(t, filepath.Base(os.Args[0]), fields[0])
	require.Equal(t, "github.com/distribution/mdhash", fields[1])
	require.Equal(t, Version(), fields[2])
}

func TestFprintVersionWithRevision(t *testing.T) {
	defer func(old string) { revision = old }(revision)
	revision = "0123abcd"

	var buf bytes.Buffer
	FprintVersion(&buf)
	require.True(t, strings.HasSuffix(buf.String(), " 0123abcd\n"), buf.String())
}
