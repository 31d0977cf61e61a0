package rules

import "testing"

func TestParseZone(t *testing.T) {
	for _, z := range []Zone{ZoneLibrary, ZoneHand, ZoneBattlefield, ZoneGraveyard, ZoneStack, ZoneExile, ZoneCommand} {
		got, err := ParseZone(" " + string(z) + " ")
		if err != nil {
			t.Fatalf("ParseZone(%q): %v", z, err)
		}
		if got != z {
			t.Fatalf("expected %s, got %s", z, got)
		}
	}

	got, err := ParseZone("graveyard")
	if err != nil || got != ZoneGraveyard {
		t.Fatalf("expected case-insensitive match, got %s (%v)", got, err)
	}

	if _, err := ParseZone("Sideboard"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}

func TestZoneString(t *testing.T) {
	if ZoneNone.String() != "NONE" {
		t.Fatalf("unexpected name for unset zone: %s", ZoneNone)
	}
	if ZoneExile.String() != "Exile" {
		t.Fatalf("unexpected name for exile: %s", ZoneExile)
	}
}
