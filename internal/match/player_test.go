package match

import (
	"errors"
	"testing"
	"time"
)

func TestStintSymmetry(t *testing.T) {
	t.Parallel()

	p := &PlayerStint{ID: "alex"}
	if err := p.StartStint(5*time.Minute, "CM"); err != nil {
		t.Fatalf("start stint: %v", err)
	}
	if !p.OnField || p.Position != "CM" {
		t.Fatalf("player should be on field at CM, got on_field=%v pos=%s", p.OnField, p.Position)
	}

	vacated, err := p.EndStint(17 * time.Minute)
	if err != nil {
		t.Fatalf("end stint: %v", err)
	}
	if vacated != "CM" {
		t.Errorf("vacated position should be CM, got %s", vacated)
	}
	if p.Accumulated != 12*time.Minute {
		t.Errorf("accumulated should grow by exactly the stint length (12m), got %s", p.Accumulated)
	}
	if p.OnField || p.Position != "" || p.StintStart != 0 {
		t.Errorf("benched player should have cleared runtime fields: %+v", p)
	}
}

func TestStintAccessorsArePure(t *testing.T) {
	t.Parallel()

	p := &PlayerStint{ID: "alex", Accumulated: 10 * time.Minute}
	if got := p.CurrentStint(time.Hour); got != 0 {
		t.Errorf("benched current stint should be 0, got %s", got)
	}
	if got := p.Total(time.Hour); got != 10*time.Minute {
		t.Errorf("benched total should be accumulated only, got %s", got)
	}

	if err := p.StartStint(20*time.Minute, "ST"); err != nil {
		t.Fatalf("start stint: %v", err)
	}
	for i := 0; i < 2; i++ { // repeated reads must not mutate
		if got := p.CurrentStint(26 * time.Minute); got != 6*time.Minute {
			t.Errorf("current stint should be 6m, got %s", got)
		}
		if got := p.Total(26 * time.Minute); got != 16*time.Minute {
			t.Errorf("total should be 16m, got %s", got)
		}
	}
	if p.Accumulated != 10*time.Minute {
		t.Errorf("reads mutated accumulated: %s", p.Accumulated)
	}
}

func TestStintErrors(t *testing.T) {
	t.Parallel()

	p := &PlayerStint{ID: "alex"}
	if _, err := p.EndStint(time.Minute); !errors.Is(err, ErrNotOnField) {
		t.Errorf("ending a bench stint should be ErrNotOnField, got %v", err)
	}
	if err := p.StartStint(0, "GK"); err != nil {
		t.Fatalf("start stint: %v", err)
	}
	if err := p.StartStint(time.Minute, "ST"); !errors.Is(err, ErrAlreadyOnField) {
		t.Errorf("double start should be ErrAlreadyOnField, got %v", err)
	}
}
