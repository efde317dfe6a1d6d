package merge

import (
	"errors"
	"strings"
	"testing"
)

func TestWriterSQL(t *testing.T) {
	got, err := Into("lh.Sales").
		Using("{df}").
		On("target.id = source.id").
		WhenMatched().UpdateAll().
		WhenNotMatched().InsertAll().
		SQL()
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"MERGE INTO lh.Sales AS target",
		"USING {df} AS source",
		"ON target.id = source.id",
		"WHEN MATCHED THEN UPDATE SET *",
		"WHEN NOT MATCHED THEN INSERT *",
	}, "\n")
	if got != want {
		t.Errorf("statement mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriterSQLAllBranchKinds(t *testing.T) {
	got, err := Into("lh.Sales").
		Using("sales_stage").
		On("target.id = source.id").
		WhenNotMatchedBySource("target.closed = 0").Delete().
		WhenMatched("source.qty > 0").UpdateExpr("qty = source.qty").
		WhenMatched().Delete().
		WhenNotMatched().InsertExpr("(id, qty) VALUES (source.id, source.qty)").
		SQL()
	if err != nil {
		t.Fatal(err)
	}

	// Categories render in the fixed order matched, not matched, not
	// matched by source, regardless of recording order; lines within one
	// category keep their recording order.
	want := strings.Join([]string{
		"MERGE INTO lh.Sales AS target",
		"USING sales_stage AS source",
		"ON target.id = source.id",
		"WHEN MATCHED AND source.qty > 0 THEN UPDATE SET qty = source.qty",
		"WHEN MATCHED THEN DELETE",
		"WHEN NOT MATCHED THEN INSERT (id, qty) VALUES (source.id, source.qty)",
		"WHEN NOT MATCHED BY SOURCE AND target.closed = 0 THEN DELETE",
	}, "\n")
	if got != want {
		t.Errorf("statement mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriterSQLMissingConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		writer *Writer
	}{
		{"nothing set", Into("")},
		{"only table", Into("lh.Sales").WhenMatched().UpdateAll()},
		{"no condition", Into("lh.Sales").Using("{df}").WhenMatched().UpdateAll()},
		{"no view", Into("lh.Sales").On("target.id = source.id").WhenMatched().UpdateAll()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.writer.SQL(); !errors.Is(err, ErrMissingConfiguration) {
				t.Errorf("got %v, want ErrMissingConfiguration", err)
			}
		})
	}
}

func TestWriterSQLNoActions(t *testing.T) {
	w := Into("lh.Sales").Using("{df}").On("target.id = source.id")
	if _, err := w.SQL(); !errors.Is(err, ErrNoActions) {
		t.Errorf("got %v, want ErrNoActions", err)
	}
}

func TestWriterReuseAfterSQL(t *testing.T) {
	w := Into("lh.Sales").Using("{df}").On("target.id = source.id")
	if _, err := w.WhenMatched().UpdateAll().SQL(); err != nil {
		t.Fatal(err)
	}

	// A successful render consumes the recorded branches but keeps the
	// configuration.
	if _, err := w.SQL(); !errors.Is(err, ErrNoActions) {
		t.Fatalf("got %v, want ErrNoActions after successful render", err)
	}

	got, err := w.WhenNotMatched().InsertAll().SQL()
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"MERGE INTO lh.Sales AS target",
		"USING {df} AS source",
		"ON target.id = source.id",
		"WHEN NOT MATCHED THEN INSERT *",
	}, "\n")
	if got != want {
		t.Errorf("statement mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriterFailedSQLKeepsActions(t *testing.T) {
	w := Into("lh.Sales").WhenMatched().UpdateAll()
	if _, err := w.SQL(); !errors.Is(err, ErrMissingConfiguration) {
		t.Fatalf("got %v, want ErrMissingConfiguration", err)
	}

	// Fixing the configuration must be enough; the recorded branch
	// survives the failed render.
	got, err := w.Using("{df}").On("target.id = source.id").SQL()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "WHEN MATCHED THEN UPDATE SET *") {
		t.Errorf("recorded branch lost after failed render:\n%s", got)
	}
}

func TestBranchConditions(t *testing.T) {
	tests := []struct {
		name   string
		record func(w *Writer) *Writer
		want   string
	}{
		{
			"matched plain",
			func(w *Writer) *Writer { return w.WhenMatched().UpdateAll() },
			"WHEN MATCHED THEN UPDATE SET *",
		},
		{
			"matched conditioned",
			func(w *Writer) *Writer { return w.WhenMatched("col > 0").UpdateAll() },
			"WHEN MATCHED AND col > 0 THEN UPDATE SET *",
		},
		{
			"not matched conditioned",
			func(w *Writer) *Writer { return w.WhenNotMatched("source.valid = 1").InsertAll() },
			"WHEN NOT MATCHED AND source.valid = 1 THEN INSERT *",
		},
		{
			"not matched by source plain",
			func(w *Writer) *Writer { return w.WhenNotMatchedBySource().UpdateExpr("active = 0") },
			"WHEN NOT MATCHED BY SOURCE THEN UPDATE SET active = 0",
		},
		{
			"not matched by source conditioned",
			func(w *Writer) *Writer { return w.WhenNotMatchedBySource("target.active = 1").Delete() },
			"WHEN NOT MATCHED BY SOURCE AND target.active = 1 THEN DELETE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Into("lh.Sales").Using("{df}").On("target.id = source.id")
			got, err := tt.record(w).SQL()
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(got, "\n")
			if last := lines[len(lines)-1]; last != tt.want {
				t.Errorf("got %q, want %q", last, tt.want)
			}
		})
	}
}
