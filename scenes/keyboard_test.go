package scenes

import (
	"testing"

	"github.com/automoto/skirmish/input"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseControls(t *testing.T) {
	tests := []struct {
		name     string
		controls map[string][]string
		want     map[input.Key]netconfig.ActionID
		wantErr  bool
	}{
		{
			name: "ebiten key names",
			controls: map[string][]string{
				"MoveLeft":      {"A", "ArrowLeft"},
				"LaunchMissile": {"M"},
			},
			want: map[input.Key]netconfig.ActionID{
				input.Key(ebiten.KeyA):         netconfig.ActionMoveLeft,
				input.Key(ebiten.KeyArrowLeft): netconfig.ActionMoveLeft,
				input.Key(ebiten.KeyM):         netconfig.ActionLaunchMissile,
			},
		},
		{
			name:     "action names ignore case",
			controls: map[string][]string{"moveright": {"D"}, "JUMP": {"Space"}},
			want: map[input.Key]netconfig.ActionID{
				input.Key(ebiten.KeyD):     netconfig.ActionMoveRight,
				input.Key(ebiten.KeySpace): netconfig.ActionJump,
			},
		},
		{
			name:     "unknown action",
			controls: map[string][]string{"Teleport": {"T"}},
			wantErr:  true,
		},
		{
			name:     "unknown key name",
			controls: map[string][]string{"Fire": {"NotAKey"}},
			wantErr:  true,
		},
		{
			name:     "empty",
			controls: nil,
			want:     map[input.Key]netconfig.ActionID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseControls(tt.controls)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "M", KeyName(input.Key(ebiten.KeyM)))
	assert.Equal(t, "ArrowLeft", KeyName(input.Key(ebiten.KeyArrowLeft)))
}
