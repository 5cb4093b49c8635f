package sheetstore

import "testing"

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"id":            "12",
		"name":          "Kim",
		"priority_rank": "",
		"is_active":     "1",
		"bad":           "abc",
	}

	if got := rec.Str("name"); got != "Kim" {
		t.Errorf("Str=%q", got)
	}
	if got, err := rec.Int("id"); err != nil || got != 12 {
		t.Errorf("Int=(%d,%v)", got, err)
	}
	if _, err := rec.Int("priority_rank"); err == nil {
		t.Error("Int on blank cell should error")
	}
	if _, err := rec.Int("bad"); err == nil {
		t.Error("Int on malformed cell should error")
	}
	if got := rec.IntOr("priority_rank", -1); got != -1 {
		t.Errorf("IntOr=%d, want fallback", got)
	}
	if got, err := rec.NullableInt("priority_rank"); err != nil || got != nil {
		t.Errorf("NullableInt on blank=(%v,%v), want nil", got, err)
	}
	if got, err := rec.NullableInt("id"); err != nil || got == nil || *got != 12 {
		t.Errorf("NullableInt=(%v,%v)", got, err)
	}
	if !rec.Flag("is_active") {
		t.Error("Flag(\"1\") should be true")
	}
	if rec.Flag("priority_rank") {
		t.Error("Flag on blank should be false")
	}
}

func TestToRecordsPadsShortRows(t *testing.T) {
	values := [][]string{
		{"id", "name", "semester"},
		{"1", "Writing"},
		{"2", "Coaching", "always"},
	}
	records := toRecords(values)
	if len(records) != 2 {
		t.Fatalf("records=%d, want 2", len(records))
	}
	if got := records[0].Str("semester"); got != "" {
		t.Errorf("short row semester=%q, want empty", got)
	}
	if got := records[1].Str("semester"); got != "always" {
		t.Errorf("semester=%q", got)
	}
}

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}
	for _, tc := range cases {
		if got := columnLetter(tc.col); got != tc.want {
			t.Errorf("columnLetter(%d)=%q, want %q", tc.col, got, tc.want)
		}
	}
}
