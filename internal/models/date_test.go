package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	t.Run("marshals as calendar date", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2024, time.March, 5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `"2024-03-05"` {
			t.Errorf("expected \"2024-03-05\", got %s", data)
		}
	})

	t.Run("rejects timestamps", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"2024-03-05T10:00:00Z"`), &d); err == nil {
			t.Fatal("expected error for RFC3339 timestamp")
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`""`), &d); err == nil {
			t.Fatal("expected error for empty date")
		}
	})
}

func TestDate_Scan(t *testing.T) {
	cases := map[string]interface{}{
		"time":      time.Date(2024, time.January, 31, 15, 4, 5, 0, time.UTC),
		"text":      "2024-01-31",
		"timestamp": []byte("2024-01-31 00:00:00+00:00"),
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			var d Date
			if err := d.Scan(input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != "2024-01-31" {
				t.Errorf("expected 2024-01-31, got %s", d)
			}
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		var d Date
		if err := d.Scan(42); err == nil {
			t.Fatal("expected error for int input")
		}
	})
}

func TestEnums(t *testing.T) {
	if !ExpenseCategoryHealthcare.IsValid() {
		t.Error("healthcare should be a valid category")
	}
	if ExpenseCategory("rent").IsValid() {
		t.Error("rent should not be a valid category")
	}
	if !IncomeSourceGift.IsValid() {
		t.Error("gift should be a valid source")
	}
	if IncomeSource("lottery").IsValid() {
		t.Error("lottery should not be a valid source")
	}
}
