package models

import "testing"

func TestParseFloorID(t *testing.T) {
	tests := []struct {
		in      string
		want    FloorID
		wantErr bool
	}{
		{"ground", FloorGround, false},
		{"floor_1", Floor1, false},
		{"floor_2", Floor2, false},
		{" GROUND ", FloorGround, false},
		{"Floor_1", Floor1, false},
		{"basement", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFloorID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFloorID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFloorID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFloorOrder(t *testing.T) {
	want := []FloorID{FloorGround, Floor1, Floor2}
	if len(FloorOrder) != len(want) {
		t.Fatalf("FloorOrder has %d floors, want %d", len(FloorOrder), len(want))
	}
	for i, f := range want {
		if FloorOrder[i] != f {
			t.Errorf("FloorOrder[%d] = %q, want %q", i, FloorOrder[i], f)
		}
	}
}

func TestNormalizeRoomName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a.1.10", "A.1.10"},
		{" A.1.10 ", "A.1.10"},
		{"A.1.10", "A.1.10"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeRoomName(tt.in); got != tt.want {
			t.Errorf("NormalizeRoomName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
