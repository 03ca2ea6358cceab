package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCatalog_CreateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTemplateInput
		wantErr error
	}{
		{
			name:  "valid",
			input: CreateTemplateInput{Name: "Squads", KillPoints: 1, PlacementPoints: []int{10, 5, 0}, TeamSize: 4},
		},
		{
			name:  "zero kill points allowed",
			input: CreateTemplateInput{Name: "Placement only", KillPoints: 0, PlacementPoints: []int{15}, TeamSize: 1},
		},
		{
			name:    "empty name",
			input:   CreateTemplateInput{Name: "  ", KillPoints: 1, PlacementPoints: []int{10}, TeamSize: 4},
			wantErr: ErrValidation,
		},
		{
			name:    "negative kill points",
			input:   CreateTemplateInput{Name: "Bad", KillPoints: -1, PlacementPoints: []int{10}, TeamSize: 4},
			wantErr: ErrValidation,
		},
		{
			name:    "zero team size",
			input:   CreateTemplateInput{Name: "Bad", KillPoints: 1, PlacementPoints: []int{10}, TeamSize: 0},
			wantErr: ErrValidation,
		},
		{
			name:    "empty placement table",
			input:   CreateTemplateInput{Name: "Bad", KillPoints: 1, TeamSize: 4},
			wantErr: ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tpl, err := env.templates.CreateTemplate(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, env.backend.Saves())
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tpl.ID)
			assert.Equal(t, tt.input.PlacementPoints, tpl.PlacementPoints)
			assert.Equal(t, 1, env.backend.Saves())
		})
	}
}

func TestTemplateCatalog_NameConflictBySlug(t *testing.T) {
	env := newTestEnv(t)
	env.mustTemplate(t, "Squad Rules", 1, 10)

	_, err := env.templates.CreateTemplate(context.Background(), CreateTemplateInput{
		Name: "squad   rules", KillPoints: 2, PlacementPoints: []int{5}, TeamSize: 2,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestTemplateCatalog_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	first := env.mustTemplate(t, "Solo", 2, 20, 10)
	second := env.mustTemplate(t, "Duo Cup", 1, 10, 5, 0)

	list, err := env.templates.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "insertion order")
	assert.Equal(t, second.ID, list[1].ID)

	byID, err := env.templates.GetTemplate(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Duo Cup", byID.Name)

	byName, err := env.templates.GetTemplate(context.Background(), "duo cup")
	require.NoError(t, err)
	assert.Equal(t, second.ID, byName.ID)

	_, err = env.templates.GetTemplate(context.Background(), "trios")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTemplateCatalog_ReturnedTemplateIsACopy(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.mustTemplate(t, "Solo", 1, 10, 5)
	tpl.PlacementPoints[0] = 1000

	stored, err := env.templates.GetTemplate(context.Background(), tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.PlacementPoints[0])
}

func TestParsePlacementPoints(t *testing.T) {
	tests := []struct {
		raw     string
		want    []int
		wantErr bool
	}{
		{raw: "10,5,0", want: []int{10, 5, 0}},
		{raw: " 12 , 8 ,4 ", want: []int{12, 8, 4}},
		{raw: "7", want: []int{7}},
		{raw: "-1,3", want: []int{-1, 3}},
		{raw: "", wantErr: true},
		{raw: "10,,5", wantErr: true},
		{raw: "10,five", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePlacementPoints(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
