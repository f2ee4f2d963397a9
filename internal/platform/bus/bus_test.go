package bus

import (
	"context"
	"errors"
	"testing"

	kit "artisantrend/internal/platform/testkit"

	"github.com/nats-io/nats.go"
)

type fakeConn struct {
	subject string
	data    []byte
	flushed bool
	drained bool
	pubErr  error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.pubErr
}
func (f *fakeConn) FlushWithContext(context.Context) error { f.flushed = true; return nil }
func (f *fakeConn) Drain() error                           { f.drained = true; return nil }

func TestConnectPublishClose(t *testing.T) {
	fc := &fakeConn{}
	var gotURL string
	var gotOpts int
	kit.Swap(t, &connect, func(url string, opts ...nats.Option) (conn, error) {
		gotURL, gotOpts = url, len(opts)
		return fc, nil
	})

	n, err := Connect(Options{URL: "nats://bus:4222", Name: "artisantrend-run"}, nil)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if gotURL != "nats://bus:4222" || gotOpts != 7 {
		t.Fatalf("connect url=%q opts=%d", gotURL, gotOpts)
	}

	if err := n.Publish(context.Background(), "artisan.trends.rising", map[string]any{"product": "handmade soap"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if fc.subject != "artisan.trends.rising" || string(fc.data) != `{"product":"handmade soap"}` || !fc.flushed {
		t.Fatalf("published %q %s flushed=%v", fc.subject, fc.data, fc.flushed)
	}
	n.Close()
	if !fc.drained {
		t.Fatalf("Close did not drain")
	}
}

func TestPublishErrors(t *testing.T) {
	n := &NATS{nc: &fakeConn{pubErr: errors.New("slow consumer")}}
	if err := n.Publish(context.Background(), "s", 1); err == nil {
		t.Fatalf("expected publish error")
	}
	if err := n.Publish(context.Background(), "s", make(chan int)); err == nil {
		t.Fatalf("expected marshal error")
	}
}

func TestConnectError(t *testing.T) {
	kit.Swap(t, &connect, func(string, ...nats.Option) (conn, error) { return nil, errors.New("no servers") })
	if _, err := Connect(Options{URL: "nats://x"}, nil); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestRecorderAndNoop(t *testing.T) {
	var r Recorder
	_ = r.Publish(context.Background(), "a", 1)
	_ = r.Publish(context.Background(), "b", "x")
	if len(r.Events) != 2 || r.Events[1].Subject != "b" || string(r.Events[1].Payload) != `"x"` {
		t.Fatalf("events = %+v", r.Events)
	}
	var p Publisher = Noop{}
	if err := p.Publish(context.Background(), "a", nil); err != nil {
		t.Fatalf("Noop.Publish = %v", err)
	}
}
