package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevelsByEnv(t *testing.T) {
	cases := []struct {
		env       string
		wantDebug bool
	}{
		{"local", true},
		{"prod", false},
	}
	for _, tc := range cases {
		t.Run(tc.env, func(t *testing.T) {
			l, err := New("recommendation-api", tc.env)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer func() { _ = l.Sync() }()
			if got := l.Core().Enabled(zapcore.DebugLevel); got != tc.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tc.wantDebug)
			}
		})
	}
}
