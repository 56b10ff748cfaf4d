package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph(t *testing.T) {
	tests := []struct {
		name        string
		objectives  []*Objective
		expectError string
	}{
		{
			name: "valid chain",
			objectives: []*Objective{
				{ID: "a"},
				{ID: "b", Requires: []string{"a"}},
				{ID: "c", Requires: []string{"b"}},
			},
		},
		{
			name: "valid diamond",
			objectives: []*Objective{
				{ID: "start"},
				{ID: "left", Requires: []string{"start"}},
				{ID: "right", Requires: []string{"start"}},
				{ID: "end", Requires: []string{"left", "right"}},
			},
		},
		{
			name:       "empty graph",
			objectives: nil,
		},
		{
			name: "unknown prerequisite",
			objectives: []*Objective{
				{ID: "a", Requires: []string{"missing"}},
			},
			expectError: "unknown objective",
		},
		{
			name: "self cycle",
			objectives: []*Objective{
				{ID: "a", Requires: []string{"a"}},
			},
			expectError: "cycle",
		},
		{
			name: "two-node cycle",
			objectives: []*Objective{
				{ID: "a", Requires: []string{"b"}},
				{ID: "b", Requires: []string{"a"}},
			},
			expectError: "cycle",
		},
		{
			name: "cycle behind valid prefix",
			objectives: []*Objective{
				{ID: "start"},
				{ID: "x", Requires: []string{"start", "z"}},
				{ID: "y", Requires: []string{"x"}},
				{ID: "z", Requires: []string{"y"}},
			},
			expectError: "cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Quest{ID: "test"}
			for _, o := range tt.objectives {
				q.AddObjective(o)
			}

			err := q.ValidateGraph()
			if tt.expectError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			}
		})
	}
}

func TestValidateGraph_CycleNamesObjectives(t *testing.T) {
	q := &Quest{ID: "test"}
	q.AddObjective(&Objective{ID: "b", Requires: []string{"a"}})
	q.AddObjective(&Objective{ID: "a", Requires: []string{"b"}})

	err := q.ValidateGraph()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a, b")
}
