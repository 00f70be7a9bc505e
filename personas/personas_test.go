package personas

import (
	"strings"
	"testing"
)

func TestResolve_KnownIDs(t *testing.T) {
	if got := Resolve("GURU"); got != Guru {
		t.Errorf("Expected GURU, got %s", got)
	}
	if got := Resolve("PEER"); got != Peer {
		t.Errorf("Expected PEER, got %s", got)
	}
}

func TestResolve_LegacyID(t *testing.T) {
	// Older releases persisted the default persona as BABA.
	if got := Resolve("BABA"); got != Guru {
		t.Errorf("Expected legacy BABA to resolve to GURU, got %s", got)
	}
}

func TestResolve_UnknownDefaults(t *testing.T) {
	for _, raw := range []string{"", "SAGE", "guru", "GURU "} {
		if got := Resolve(raw); got != Default {
			t.Errorf("Expected %q to resolve to default, got %s", raw, got)
		}
	}
}

func TestGet_UnknownFallsBack(t *testing.T) {
	def := Get(ID("NOPE"))
	if def.ID != Default {
		t.Errorf("Expected default persona definition, got %s", def.ID)
	}
	if def.Intro == "" {
		t.Error("Expected default persona to have an intro message")
	}
}

func TestAll_StableOrder(t *testing.T) {
	defs := All()
	if len(defs) != 2 {
		t.Fatalf("Expected 2 personas, got %d", len(defs))
	}
	if defs[0].ID != Guru || defs[1].ID != Peer {
		t.Errorf("Expected order [GURU PEER], got [%s %s]", defs[0].ID, defs[1].ID)
	}
}

func TestBuildInstruction_Deterministic(t *testing.T) {
	first := BuildInstruction(Guru)
	second := BuildInstruction(Guru)
	if first != second {
		t.Error("Expected identical instruction for repeated builds of same persona")
	}
}

func TestBuildInstruction_DiffersPerPersona(t *testing.T) {
	guru := BuildInstruction(Guru)
	peer := BuildInstruction(Peer)
	if guru == peer {
		t.Error("Expected distinct instructions for distinct personas")
	}
	if !strings.Contains(guru, "Prem Guru") {
		t.Error("Expected guru instruction to describe the guru persona")
	}
	if !strings.Contains(peer, "Pagla Peer") {
		t.Error("Expected peer instruction to describe the peer persona")
	}
}

func TestBuildInstruction_SharedRules(t *testing.T) {
	// Both personas carry the same response and image guidelines.
	for _, id := range []ID{Guru, Peer} {
		if !strings.Contains(BuildInstruction(id), "GENERAL RESPONSE GUIDELINES") {
			t.Errorf("Expected %s instruction to include shared rules", id)
		}
	}
}

func TestBuildInstruction_UnknownUsesDefault(t *testing.T) {
	if BuildInstruction(ID("BABA")) != BuildInstruction(Guru) {
		t.Error("Expected legacy id to build the default persona instruction")
	}
}
