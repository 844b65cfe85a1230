package license

import "testing"

func TestCatalogOrder(t *testing.T) {
	want := []ID{Apache2, MIT, Unlicense, FreeBSD, NewBSD, ISC, NoLicense}

	got := All()
	if len(got) != len(want) {
		t.Fatalf("All() returned %d licenses, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("All()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
		if got[i].Name == "" {
			t.Errorf("All()[%d] has no display name", i)
		}
	}
}

func TestLookup(t *testing.T) {
	l, ok := Lookup(FreeBSD)
	if !ok {
		t.Fatal("Lookup(FreeBSD) not found")
	}
	if l.Name != "FreeBSD" {
		t.Errorf("Name = %q, want %q", l.Name, "FreeBSD")
	}

	if _, ok := Lookup("GPL-3.0"); ok {
		t.Error("Lookup(GPL-3.0) should not be found")
	}
}

func TestParse(t *testing.T) {
	if id, err := Parse("ISC"); err != nil || id != ISC {
		t.Errorf("Parse(ISC) = %q, %v", id, err)
	}
	if _, err := Parse("mit"); err == nil {
		t.Error("Parse should be case sensitive")
	}
}

func TestTemplatePath(t *testing.T) {
	if got := TemplatePath(NewBSD); got != "licenses/BSD-3-Clause.txt" {
		t.Errorf("TemplatePath() = %q", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	list := All()
	list[0].Name = "changed"
	if All()[0].Name == "changed" {
		t.Error("All() should not expose the catalog slice")
	}
}
