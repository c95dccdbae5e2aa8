package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
		"123e4567-e89b-12d3-a456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"", // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "2023/01/01", "2023-02-29", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2024-02", "1999-12"}
	invalid := []string{"2024-13", "2024-2", "02-2024", "2024", ""}
	for _, s := range valid {
		if _, ok := IsValidMonth(s); !ok {
			t.Errorf("IsValidMonth(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}

	if first, _ := IsValidMonth("2024-02"); first.Day() != 1 {
		t.Errorf("IsValidMonth should return the first day of the month, got day %d", first.Day())
	}
}

func TestIsValidDayOfWeek(t *testing.T) {
	for day := 0; day <= 6; day++ {
		if !IsValidDayOfWeek(day) {
			t.Errorf("IsValidDayOfWeek(%d) = false, want true", day)
		}
	}
	for _, day := range []int{-1, 7, 100} {
		if IsValidDayOfWeek(day) {
			t.Errorf("IsValidDayOfWeek(%d) = true, want false", day)
		}
	}
}

func TestIsValidMinuteOfDay(t *testing.T) {
	for _, minute := range []int{0, 540, 1439} {
		if !IsValidMinuteOfDay(minute) {
			t.Errorf("IsValidMinuteOfDay(%d) = false, want true", minute)
		}
	}
	for _, minute := range []int{-1, 1440, 2000} {
		if IsValidMinuteOfDay(minute) {
			t.Errorf("IsValidMinuteOfDay(%d) = true, want false", minute)
		}
	}
}

func TestIsValidTimezone(t *testing.T) {
	valid := []string{"", "UTC", "Asia/Jakarta", "America/New_York"}
	invalid := []string{"Mars/Olympus", "GMT+7:00:00:00"}
	for _, name := range valid {
		if !IsValidTimezone(name) {
			t.Errorf("IsValidTimezone(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if IsValidTimezone(name) {
			t.Errorf("IsValidTimezone(%q) = true, want false", name)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"GUARD", "HOLIDAY", "WEEKEND"}
	if !IsInSlice("GUARD", slice) {
		t.Error("IsInSlice should find an existing value")
	}
	if IsInSlice("guard", slice) {
		t.Error("IsInSlice is case sensitive")
	}
	if IsInSlice("OVERTIME", slice) {
		t.Error("IsInSlice should not find a missing value")
	}
}
