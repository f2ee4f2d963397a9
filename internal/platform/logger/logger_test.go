package logger

import (
	"bytes"
	"context"
	"testing"

	kit "artisantrend/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":    "trace",
		"debug":    "debug",
		"info":     "info",
		"WARNING":  "warn",
		"error":    "error",
		"off":      "disabled",
		"":         "info",
		" garbage": "info",
	}
	for in, want := range cases {
		if got := ParseLevel(in).String(); got != want {
			t.Fatalf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitAndContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:     "debug",
		Format:    "json",
		Service:   "artisantrend-test",
		Component: "root",
		Writer:    &buf,
		Static:    map[string]string{"build": "test"},
	})

	ctx := WithRun(WithRequest(context.Background(), "req-1"), "run-9")
	C(ctx).Info().Msg("ctx-msg")
	Named("forecast").Info().Msg("named-msg")

	out := buf.String()
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"run_id":"run-9"`)
	kit.MustContain(t, out, `"component":"forecast"`)
	kit.MustContain(t, out, `"build":"test"`)

	if got := RunID(ctx); got != "run-9" {
		t.Fatalf("RunID = %q, want run-9", got)
	}
	if got := RunID(context.Background()); got != "" {
		t.Fatalf("RunID(empty) = %q, want empty", got)
	}
}

func TestNopDiscards(t *testing.T) {
	kit.MustNotPanic(t, func() { Nop().Info().Msg("dropped") })
}
