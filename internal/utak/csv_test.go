package utak

import "testing"

func TestParseCSVRoundTrip(t *testing.T) {
	text := "Title,Category,End\nUbe | Cup,Ice Cream,10\nMango | Pint,Ice Cream,5\n"

	rows, diag := ParseCSV(text)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if diag.DataRows != 2 || diag.DroppedRows != 0 || diag.TotalLines != 3 {
		t.Fatalf("unexpected diagnostics: %+v", diag)
	}
	if rows[0]["title"] != "Ube | Cup" || rows[0]["category"] != "Ice Cream" || rows[0]["end"] != "10" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1]["title"] != "Mango | Pint" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestParseCSVQuotedComma(t *testing.T) {
	text := "title,end\n\"Cookies, and Cream | Cup\",7\n"

	rows, _ := ParseCSV(text)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["title"] != "Cookies, and Cream | Cup" {
		t.Fatalf("quoted comma not preserved: %q", rows[0]["title"])
	}
}

func TestParseCSVQuotedHeader(t *testing.T) {
	text := "\"Title\",\"End Stock\"\nUbe | Cup,3\n"

	rows, _ := ParseCSV(text)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["end stock"] != "3" {
		t.Fatalf("header not unquoted/lower-cased: %+v", rows[0])
	}
}

func TestParseCSVDropsMismatchedRows(t *testing.T) {
	text := "title,category,end\nUbe | Cup,Ice Cream,10\nbroken,row\nMango | Pint,Ice Cream,5\n"

	rows, diag := ParseCSV(text)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if diag.DroppedRows != 1 {
		t.Fatalf("DroppedRows = %d, want 1", diag.DroppedRows)
	}
	// order of the surviving rows is preserved
	if rows[0]["title"] != "Ube | Cup" || rows[1]["title"] != "Mango | Pint" {
		t.Fatalf("row order not preserved: %+v", rows)
	}
}

func TestParseCSVBlankAndTiny(t *testing.T) {
	if rows, _ := ParseCSV(""); len(rows) != 0 {
		t.Fatalf("empty input produced rows: %+v", rows)
	}
	if rows, _ := ParseCSV("title,end\n"); len(rows) != 0 {
		t.Fatalf("header-only input produced rows: %+v", rows)
	}
	// blank lines between records are ignored
	rows, _ := ParseCSV("title,end\n\n\nUbe | Cup,1\n\n")
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
}
