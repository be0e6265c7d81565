package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logrus.Level
		wantErr bool
	}{
		{in: "", want: logrus.InfoLevel},
		{in: "debug", want: logrus.DebugLevel},
		{in: "WARN", want: logrus.WarnLevel},
		{in: "error", want: logrus.ErrorLevel},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("reservation id=%d created", 42)
	log.Debug("hidden at info level")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reservation id=42 created")
	assert.NotContains(t, string(data), "hidden at info level")
}
