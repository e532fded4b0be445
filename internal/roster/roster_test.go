package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/sidelined/internal/match"
)

func TestAddRemove(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Add(Player{ID: "alex", Number: "7"}))
	require.NoError(t, r.Add(Player{ID: "blair"}))

	err := r.Add(Player{ID: "alex"})
	require.ErrorIs(t, err, ErrPlayerExists)

	require.Equal(t, 2, r.Len())
	require.Equal(t, []match.PlayerID{"alex", "blair"}, r.IDs())

	require.NoError(t, r.Remove("alex"))
	require.Equal(t, []match.PlayerID{"blair"}, r.IDs())
	require.ErrorIs(t, r.Remove("alex"), ErrPlayerNotFound)

	_, err = r.Get("alex")
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		player  Player
		wantErr bool
	}{
		{"valid", Player{ID: "alex", Number: "10"}, false},
		{"no number", Player{ID: "alex"}, false},
		{"empty name", Player{ID: "  "}, true},
		{"one letter name", Player{ID: "a"}, true},
		{"non numeric number", Player{ID: "alex", Number: "7a"}, true},
		{"number too big", Player{ID: "alex", Number: "100"}, true},
		{"number zero", Player{ID: "alex", Number: "0"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.player)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParsePreferred(t *testing.T) {
	t.Parallel()

	got := ParsePreferred(" st, cm ,,GK ")
	require.Equal(t, []match.Position{"ST", "CM", "GK"}, got)
	require.Empty(t, ParsePreferred(""))
}

func TestPrefers(t *testing.T) {
	t.Parallel()

	p := &Player{ID: "alex", Preferred: ParsePreferred("ST,CM")}
	require.True(t, p.Prefers("CM"))
	require.False(t, p.Prefers("GK"))
}

func TestErrorsUnwrap(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Add(Player{ID: "alex"}))
	err := r.Add(Player{ID: "alex"})
	require.True(t, errors.Is(err, ErrPlayerExists))
}
