package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(22050), WithFrameSize(1024), WithHopSize(256))
	if cfg.SampleRate != 22050 {
		t.Fatalf("sample rate = %v, want 22050", cfg.SampleRate)
	}
	if cfg.FrameSize != 1024 {
		t.Fatalf("frame size = %d, want 1024", cfg.FrameSize)
	}
	if cfg.HopSize != 256 {
		t.Fatalf("hop size = %d, want 256", cfg.HopSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithFrameSize(-1), WithHopSize(0), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
