package rules

import "testing"

func TestTurnManagerSequence(t *testing.T) {
	tm := NewTurnManager("Alice")

	expected := []Step{
		StepUntap,
		StepUpkeep,
		StepDraw,
		StepMain1,
		StepBeginCombat,
		StepDeclareAttackers,
		StepDeclareBlockers,
		StepCombatDamage,
		StepEndCombat,
		StepMain2,
		StepEnd,
		StepCleanup,
	}

	for i, exp := range expected {
		if tm.CurrentStep() != exp {
			t.Fatalf("step %d: expected step %s, got %s", i, exp, tm.CurrentStep())
		}
		if i < len(expected)-1 {
			tm.AdvanceStep("")
		}
	}
}

func TestTurnManagerAdvanceWrapsTurn(t *testing.T) {
	tm := NewTurnManager("Alice")

	// Advance through all but the last step to remain on turn 1.
	for i := 0; i < 11; i++ {
		if _, wrapped := tm.AdvanceStep(""); wrapped {
			t.Fatalf("unexpected wrap at step %d", i)
		}
		if tm.ActivePlayer() != "Alice" {
			t.Fatalf("expected active player to remain Alice during turn, got %s", tm.ActivePlayer())
		}
	}

	step, wrapped := tm.AdvanceStep("Bob")
	if !wrapped || tm.TurnNumber() != 2 {
		t.Fatalf("expected turn number 2 after wrap, got %d", tm.TurnNumber())
	}
	if tm.ActivePlayer() != "Bob" {
		t.Fatalf("expected active player Bob after wrap, got %s", tm.ActivePlayer())
	}
	if step != StepUntap {
		t.Fatalf("expected new turn to start at UNTAP, got %s", step)
	}
}

func TestTurnManagerSetStep(t *testing.T) {
	tm := NewTurnManager("Alice")
	tm.SetStep(StepMain2)
	tm.SetActivePlayer(" Bob ")

	if tm.CurrentStep() != StepMain2 {
		t.Fatalf("expected second main, got %s", tm.CurrentStep())
	}
	if !tm.CurrentStep().IsMain() {
		t.Fatal("expected main step")
	}
	if tm.ActivePlayer() != "Bob" {
		t.Fatalf("expected Bob, got %q", tm.ActivePlayer())
	}
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in   string
		want Step
	}{
		{"Upkeep", StepUpkeep},
		{"main1", StepMain1},
		{"BeginCombat", StepBeginCombat},
		{"COMBAT_DECLARE_ATTACKERS", StepDeclareAttackers},
		{"End of Turn", StepEnd},
		{"cleanup", StepCleanup},
	}
	for _, tt := range tests {
		got, err := ParseStep(tt.in)
		if err != nil {
			t.Fatalf("ParseStep(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseStep(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseStep("Second Breakfast"); err == nil {
		t.Fatal("expected error for unknown step")
	}
}

func TestParseStepRange(t *testing.T) {
	steps, err := ParseStepRange("Upkeep->Main1, Main2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Step{StepUpkeep, StepDraw, StepMain1, StepMain2}
	if len(steps) != len(want) {
		t.Fatalf("expected %v, got %v", want, steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, steps)
		}
	}

	if _, err := ParseStepRange("Main2->Upkeep"); err == nil {
		t.Fatal("expected error for backwards range")
	}
	if _, err := ParseStepRange("Upkeep->Nowhere"); err == nil {
		t.Fatal("expected error for unknown range end")
	}
}
