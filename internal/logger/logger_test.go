package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		env     string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"prod", "", zapcore.InfoLevel, false},
		{"local", "", zapcore.DebugLevel, false},
		{"cli", "", zapcore.WarnLevel, false},
		{"prod", "debug", zapcore.DebugLevel, false},
		{"staging", "", 0, true},
		{"prod", "loud", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.env+"/"+tc.level, func(t *testing.T) {
			l, err := NewLogger(tc.env, tc.level)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if !l.Core().Enabled(tc.want) {
				t.Errorf("level %s must be enabled", tc.want)
			}
			if tc.want > zapcore.DebugLevel && l.Core().Enabled(tc.want-1) {
				t.Errorf("level %s must be disabled", tc.want-1)
			}
		})
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must fall back to a nop logger")
	}

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))
	ctx = With(ctx, zap.String("catalog", "makeup"))
	FromContext(ctx).Info("ranked")

	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["catalog"] != "makeup" {
		t.Fatalf("entries = %+v", entries)
	}
}
