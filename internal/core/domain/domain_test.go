package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalhq/nodal/internal/core/domain"
)

func node(id domain.NodeID) *domain.Node {
	return &domain.Node{ID: id, Kind: "test", Inputs: 4, Outputs: 4}
}

func TestGraph_AddNode_Duplicate(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddNode(node(1)))

	err := g.AddNode(node(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNodeAlreadyExists)
}

func TestGraph_Connect_Validation(t *testing.T) {
	tests := []struct {
		name    string
		conn    domain.Connection
		wantErr error
	}{
		{
			name:    "unknown source",
			conn:    domain.Connection{From: 99, To: 2},
			wantErr: domain.ErrNodeNotFound,
		},
		{
			name:    "unknown destination",
			conn:    domain.Connection{From: 1, To: 99},
			wantErr: domain.ErrNodeNotFound,
		},
		{
			name:    "source port out of range",
			conn:    domain.Connection{From: 1, FromPort: 7, To: 2},
			wantErr: domain.ErrPortOutOfRange,
		},
		{
			name:    "destination port out of range",
			conn:    domain.Connection{From: 1, To: 2, ToPort: -1},
			wantErr: domain.ErrPortOutOfRange,
		},
		{
			name: "valid",
			conn: domain.Connection{From: 1, FromPort: 0, To: 2, ToPort: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewGraph()
			require.NoError(t, g.AddNode(node(1)))
			require.NoError(t, g.AddNode(node(2)))

			err := g.Connect(tt.conn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGraph_DownstreamOf(t *testing.T) {
	g := domain.NewGraph()
	for id := domain.NodeID(1); id <= 4; id++ {
		require.NoError(t, g.AddNode(node(id)))
	}
	// 1 -> 2, 1 -> 3 (twice, different ports), 3 -> 4
	require.NoError(t, g.Connect(domain.Connection{From: 1, To: 2}))
	require.NoError(t, g.Connect(domain.Connection{From: 1, To: 3, ToPort: 0}))
	require.NoError(t, g.Connect(domain.Connection{From: 1, To: 3, ToPort: 1}))
	require.NoError(t, g.Connect(domain.Connection{From: 3, To: 4}))

	assert.ElementsMatch(t, []domain.NodeID{2, 3}, g.DownstreamOf(1))
	assert.ElementsMatch(t, []domain.NodeID{4}, g.DownstreamOf(3))
	assert.Empty(t, g.DownstreamOf(4))
}

func TestGraph_RemoveNode_DropsConnections(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddNode(node(1)))
	require.NoError(t, g.AddNode(node(2)))
	require.NoError(t, g.AddNode(node(3)))
	require.NoError(t, g.Connect(domain.Connection{From: 1, To: 2}))
	require.NoError(t, g.Connect(domain.Connection{From: 2, To: 3}))

	g.RemoveNode(2)

	_, err := g.Node(2)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Empty(t, g.DownstreamOf(1))
	assert.Empty(t, g.ConnectionsTo(3))
}

func TestGraph_EvalOrder(t *testing.T) {
	// Diamond: 1 feeds 2 and 3, both feed 4.
	g := domain.NewGraph()
	for id := domain.NodeID(1); id <= 5; id++ {
		require.NoError(t, g.AddNode(node(id)))
	}
	require.NoError(t, g.Connect(domain.Connection{From: 1, To: 2}))
	require.NoError(t, g.Connect(domain.Connection{From: 1, To: 3}))
	require.NoError(t, g.Connect(domain.Connection{From: 2, To: 4, ToPort: 0}))
	require.NoError(t, g.Connect(domain.Connection{From: 3, To: 4, ToPort: 1}))

	order, err := g.EvalOrder([]domain.NodeID{4})
	require.NoError(t, err)

	pos := make(map[domain.NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Len(t, order, 4)
	assert.Less(t, pos[1], pos[2])
	assert.Less(t, pos[1], pos[3])
	assert.Less(t, pos[2], pos[4])
	assert.Less(t, pos[3], pos[4])
	// Node 5 is disconnected and not a target.
	assert.NotContains(t, order, domain.NodeID(5))
}

func TestGraph_EvalOrder_Cycle(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddNode(node(1)))
	require.NoError(t, g.AddNode(node(2)))
	require.NoError(t, g.Connect(domain.Connection{From: 1, To: 2}))
	require.NoError(t, g.Connect(domain.Connection{From: 2, To: 1}))

	_, err := g.EvalOrder([]domain.NodeID{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestValue_Canonical(t *testing.T) {
	// Same value, same encoding; different values, different encodings.
	assert.Equal(t, domain.FloatValue(1.5).Canonical(), domain.FloatValue(1.5).Canonical())
	assert.NotEqual(t, domain.StringValue("1").Canonical(), domain.IntValue(1).Canonical())
	assert.NotEqual(t, domain.BoolValue(true).Canonical(), domain.StringValue("true").Canonical())
	assert.NotEqual(t, domain.IntValue(2).Canonical(), domain.IntValue(3).Canonical())
}

func TestPattern_Matches(t *testing.T) {
	key := domain.StageKey{Node: 7, Stage: 1}

	assert.True(t, domain.ExactPattern(key).Matches(key))
	assert.False(t, domain.ExactPattern(key).Matches(domain.StageKey{Node: 7, Stage: 2}))

	assert.True(t, domain.NodePattern(7).Matches(key))
	assert.True(t, domain.NodePattern(7).Matches(domain.StageKey{Node: 7, Stage: 2}))
	assert.False(t, domain.NodePattern(8).Matches(key))

	assert.True(t, domain.AllPattern().Matches(key))
}
