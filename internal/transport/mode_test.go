package transport

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "road", want: ModeRoad},
		{in: "RAIL", want: ModeRail},
		{in: "  air ", want: ModeAir},
		{in: "sea", want: ModeSea},
		{in: "teleport", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModeSpeeds(t *testing.T) {
	speeds := map[Mode]float64{
		ModeRoad: 60,
		ModeRail: 80,
		ModeAir:  500,
		ModeSea:  25,
	}
	for mode, want := range speeds {
		if got := mode.SpeedKmh(); got != want {
			t.Errorf("%s speed = %f, want %f", mode, got, want)
		}
	}
}

func TestModesOrder(t *testing.T) {
	want := []Mode{ModeRoad, ModeRail, ModeAir, ModeSea}
	got := Modes()
	if len(got) != len(want) {
		t.Fatalf("Modes() returned %d modes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Modes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
