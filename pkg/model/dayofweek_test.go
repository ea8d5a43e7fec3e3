package model

import "testing"

func TestParseDayOfWeek(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  DayOfWeek
		ok    bool
	}{
		{name: "canonical", input: "MONDAY", want: Monday, ok: true},
		{name: "lower case form name", input: "wednesday", want: Wednesday, ok: true},
		{name: "mixed case", input: "Friday", want: Friday, ok: true},
		{name: "three letter abbreviation", input: "Thu", want: Thursday, ok: true},
		{name: "sunday abbreviation", input: "Sun", want: Sunday, ok: true},
		{name: "surrounding whitespace", input: " saturday ", want: Saturday, ok: true},
		{name: "unknown", input: "Funday", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDayOfWeek(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseDayOfWeek(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsoIndex(t *testing.T) {
	want := map[DayOfWeek]int{
		Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3,
		Friday: 4, Saturday: 5, Sunday: 6,
	}
	for day, index := range want {
		if got := day.IsoIndex(); got != index {
			t.Errorf("%s.IsoIndex() = %d, want %d", day, got, index)
		}
	}
}

func TestTimeSlotOrder(t *testing.T) {
	if !(TimeSlotAm.Order() < TimeSlotPm.Order() && TimeSlotPm.Order() < TimeSlotEd.Order()) {
		t.Error("band ordering must be AM < PM < ED")
	}

	if _, ok := ParseTimeSlot("am"); !ok {
		t.Error("ParseTimeSlot should accept lower case band codes")
	}
	if _, ok := ParseTimeSlot("NIGHT"); ok {
		t.Error("ParseTimeSlot should reject unknown band codes")
	}
}

func TestDayOfWeekFormName(t *testing.T) {
	if got := Tuesday.FormName(); got != "tuesday" {
		t.Errorf("FormName() = %q, want %q", got, "tuesday")
	}
	if got := Wednesday.Title(); got != "Wednesday" {
		t.Errorf("Title() = %q, want %q", got, "Wednesday")
	}
}
