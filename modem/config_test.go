package modem

import (
	"errors"
	"testing"

	"i4.energy/across/celllink/ring"
)

func TestConfigBuilderRequiresPort(t *testing.T) {
	_, err := NewConfigBuilder().Build()
	if !errors.Is(err, ErrNoPort) {
		t.Errorf("expected ErrNoPort, got: %v", err)
	}
}

func TestConfigBuilderRejectsTinyBuffers(t *testing.T) {
	_, err := NewConfigBuilder().
		WithPort(newScriptPort()).
		WithReadBuffer(ring.New(4)).
		Build()
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("expected ErrBufferTooSmall, got: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := NewConfigBuilder().WithPort(newScriptPort()).Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}
	if cfg.Profile.CloseToken != SIM800().CloseToken {
		t.Errorf("expected SIM800 default profile, got %q", cfg.Profile.Name)
	}
	if cfg.ReadBuffer == nil || cfg.WriteBuffer == nil {
		t.Error("expected default rings to be created")
	}
	if cfg.ReadBuffer.Capacity() != 128 {
		t.Errorf("expected default capacity 128, got %d", cfg.ReadBuffer.Capacity())
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNoPort) {
		t.Errorf("expected ErrNoPort from New(), got: %v", err)
	}
}
