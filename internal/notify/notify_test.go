package notify

import "testing"

func TestFormatNewConcert(t *testing.T) {
	tests := []struct {
		name string
		ev   NewConcert
		want string
	}{
		{
			"full",
			NewConcert{Artist: "Interpol", Date: "2025-10-01", Genres: []string{"Rock", "Indie"}, Price: "45"},
			"Interpol on 2025-10-01 (Rock, Indie) - 45",
		},
		{
			"no genres",
			NewConcert{Artist: "Open Mic", Date: "2025-09-12", Price: "free"},
			"Open Mic on 2025-09-12 - free",
		},
		{
			"bare",
			NewConcert{Artist: "TBA", Date: "2025-09-12"},
			"TBA on 2025-09-12",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNewConcert(tt.ev); got != tt.want {
				t.Errorf("FormatNewConcert = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMustUnmarshal(t *testing.T) {
	got, err := MustUnmarshal[NewConcert]([]byte(`{"artist":"Interpol","date":"2025-10-01","genres":["Rock"],"price":"45"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.Artist != "Interpol" || got.Price != "45" || len(got.Genres) != 1 {
		t.Errorf("decoded = %+v", got)
	}

	if _, err := MustUnmarshal[NewConcert]([]byte(`{`)); err == nil {
		t.Error("malformed JSON should error")
	}
}
