package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/awaygame-sync/internal/config"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	tests := map[string]config.Config{
		"flag off":  {UptraceEnabled: false, ServiceName: "awaygame-sync", ServiceVersion: "dev", AppEnv: config.EnvDev},
		"dsn empty": {UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "awaygame-sync", AppEnv: config.EnvDev},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			shutdown, err := InitUptrace(cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}
