package searcher

import (
	"sync"
	"testing"

	"conquest/game"

	"github.com/stretchr/testify/require"
)

// Decision nodes are exercised one call at a time first, then with
// expansion, backup and selection racing on the same node.

func TestDecisionSelectOrExpand(t *testing.T) {
	t.Run("selecting fully expanded node (all deterministic moves explored)", func(t *testing.T) {
		maxMove := mockMove(1, false)
		maxChild := &decision{rewards: 1, visits: 1}
		otherChild := &decision{rewards: 0, visits: 1}
		node := &decision{
			unexplored: []game.Move{},
			explored:   []game.Move{mockMove(0, false), maxMove},
			children:   []Node{otherChild, maxChild},
			rewards:    1,
			visits:     2,
		}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.Equal(t, maxChild, gotChild, "Node should select child with max policy value")
		require.IsType(t, &decision{}, gotChild, "Child should be a decision node")
		require.Equal(t, 1+Loss, gotChild.(*decision).rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.(*decision).visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Move{maxMove}, gotState.(mockState).played, "State should update by the move to the max policy child")
		require.True(t, gotSelected, "Node should perform selection")
		require.Equal(t, 1.0, node.rewards, "Node stats should not change")
		require.Equal(t, 2.0, node.visits, "Node stats should not change")
	})

	t.Run("selecting fully expanded node (all stochastic moves explored)", func(t *testing.T) {
		maxMove := mockMove(1, true)
		maxChild := &chance{rewards: 1, visits: 1}
		otherChild := &chance{rewards: 0, visits: 1}
		node := &decision{
			unexplored: []game.Move{},
			explored:   []game.Move{mockMove(0, true), maxMove},
			children:   []Node{otherChild, maxChild},
			rewards:    1,
			visits:     2,
		}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.Equal(t, maxChild, gotChild, "Node should select child with max policy value")
		require.IsType(t, &chance{}, gotChild, "Child should be a chance node")
		require.Equal(t, 1+Loss, gotChild.(*chance).rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.(*chance).visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Move{maxMove}, gotState.(mockState).played, "State should update by the move to the max policy child")
		require.True(t, gotSelected, "Node should perform selection")
	})

	t.Run("selecting an unvisited child first", func(t *testing.T) {
		unvisited := &decision{}
		node := &decision{
			explored: []game.Move{mockMove(0, false), mockMove(1, false)},
			children: []Node{&decision{rewards: 1, visits: 1}, unvisited},
			visits:   1,
		}

		gotChild, _, gotSelected := node.SelectOrExpand(mockState{}, nil)

		require.Equal(t, unvisited, gotChild, "Node should prioritize unvisited children")
		require.True(t, gotSelected)
	})

	t.Run("expanding node with unexplored deterministic moves", func(t *testing.T) {
		unexploredMove := mockMove(1, false)
		node := &decision{
			unexplored: []game.Move{unexploredMove},
			explored:   []game.Move{mockMove(0, false)},
			children:   []Node{&decision{rewards: 1, visits: 1}},
			visits:     1,
		}
		state := mockState{player: game.PlayerB, moves: []game.Move{}}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.IsType(t, &decision{}, gotChild, "Child should be a decision node")
		require.Equal(t, Loss, gotChild.(*decision).rewards, "Child should apply a temporary loss")
		require.Equal(t, 1.0, gotChild.(*decision).visits, "Child should apply a temporary loss")
		require.Equal(t, game.PlayerB, gotChild.(*decision).player, "Child should belong to the player who moved")
		require.Equal(t, 2, len(node.children), "Node should add a new child")
		require.Empty(t, node.unexplored, "Move should no longer be unexplored")
		require.Equal(t, []game.Move{unexploredMove}, gotState.(mockState).played, "State should update by the move to the unexplored child")
		require.False(t, gotSelected, "Node should perform expansion")
	})

	t.Run("expanding node with unexplored stochastic moves", func(t *testing.T) {
		unexploredMove := mockMove(1, true)
		node := &decision{
			unexplored: []game.Move{unexploredMove},
			explored:   []game.Move{mockMove(0, true)},
			children:   []Node{&chance{rewards: 1, visits: 1}},
			visits:     1,
		}
		state := mockState{moves: []game.Move{}}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.IsType(t, &chance{}, gotChild, "Child should be a chance node")
		require.Equal(t, Loss, gotChild.(*chance).rewards, "Child should apply a temporary loss")
		require.Equal(t, 1.0, gotChild.(*chance).visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Move{unexploredMove}, gotState.(mockState).played, "State should update by the move to the unexplored child")
		require.False(t, gotSelected, "Node should perform expansion")
		require.Equal(t, 2, len(node.children), "Node should add a new child")
	})

	t.Run("stagnating on terminal node", func(t *testing.T) {
		node := &decision{}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.Equal(t, node, gotChild, "Should return the same node")
		require.Equal(t, mockState{}, gotState, "Should return the same state")
		require.False(t, gotSelected, "Should not select any child or expand")
	})
}

func TestDecisionBackup(t *testing.T) {
	t.Run("recording win on root node", func(t *testing.T) {
		node := &decision{
			parent:  nil,
			player:  game.PlayerA,
			rewards: 0,
			visits:  0,
		}

		got := node.Backup(game.PlayerA, Win)

		require.Nil(t, got, "Should return no parent")
		require.Equal(t, Win, node.rewards, "Should apply a win reward")
		require.Equal(t, 1.0, node.visits, "Should add a visit")
	})

	t.Run("recording win on deterministic outcome node", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			player:  game.PlayerA,
			rewards: Loss,
			visits:  1,
		}

		got := node.Backup(game.PlayerA, Win)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, Win, node.rewards, "Should reverse virtual loss and add a win")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording win on stochastic outcome node", func(t *testing.T) {
		parent := &chance{}
		node := &decision{
			parent:  parent,
			player:  game.PlayerA,
			rewards: Loss,
			visits:  1,
		}

		got := node.Backup(game.PlayerA, Win)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, Win, node.rewards, "Should reverse virtual loss and add a win")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording loss", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			player:  game.PlayerA,
			rewards: Loss,
			visits:  1,
		}

		got := node.Backup(game.PlayerB, Win)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, Loss, node.rewards, "Should reverse virtual loss and add a loss")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording an evaluation at cutoff", func(t *testing.T) {
		node := &decision{player: game.PlayerB}

		node.Backup(game.PlayerA, 0.25)

		require.Equal(t, -0.25, node.rewards, "Should negate the opponent's evaluation")
	})
}

func TestDecisionPolicy(t *testing.T) {
	t.Run("reporting visits per explored move", func(t *testing.T) {
		node := &decision{
			explored: []game.Move{mockMove(0, false), mockMove(1, true)},
			children: []Node{&decision{visits: 3}, &chance{visits: 5}},
		}

		require.Equal(t, map[game.Move]float64{
			mockMove(0, false): 3,
			mockMove(1, true):  5,
		}, node.Policy())
	})
}

func TestDecisionRaceConditions(t *testing.T) {
	t.Run("concurrent expansion", func(t *testing.T) {
		node := &decision{
			unexplored: []game.Move{mockMove(0, false), mockMove(1, false)},
			explored:   []game.Move{},
			children:   []Node{},
		}
		baseState := mockState{moves: []game.Move{}}

		var wg sync.WaitGroup
		type result struct {
			child    Node
			state    mockState
			selected bool
		}
		var got [2]result

		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				state := mockState{moves: baseState.moves}
				gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)
				got[i] = result{gotChild, gotState.(mockState), gotSelected}
			}()
		}
		wg.Wait()

		require.Equal(t, 2, len(node.children), "Node should have two children")
		for i := 0; i < 2; i++ {
			require.IsType(t, &decision{}, got[i].child, "Child should be a decision node")
			require.Equal(t, Loss, got[i].child.(*decision).rewards, "Child should apply a temporary loss")
			require.Equal(t, 1.0, got[i].child.(*decision).visits, "Child should apply a temporary loss")
			require.False(t, got[i].selected, "Node should be expanded")
			require.Contains(t, []game.Move{mockMove(0, false), mockMove(1, false)}, got[i].state.played[0],
				"Node should expand with a legal move")
		}
		require.NotEqual(t, got[0].state.played[0], got[1].state.played[0],
			"Node should expand with different moves")
	})

	t.Run("concurrent backup", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			player:  game.PlayerA,
			rewards: Loss * 2, // 2 virtual losses
			visits:  2,
		}

		var wg sync.WaitGroup
		var got [2]Node
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got[i] = node.Backup(game.PlayerA, Win)
			}()
		}
		wg.Wait()

		require.Equal(t, [2]Node{parent, parent}, got, "Should return the parent node")
		require.Equal(t, Win*2, node.rewards, "Node should reverse virtual losses and add two wins")
		require.Equal(t, 2.0, node.visits, "Node should reverse virtual losses and add two visits")
	})

	t.Run("concurrent selection and backup", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			player:  game.PlayerA,
			rewards: Loss, // Virtual loss
			visits:  3,
		}
		child := &decision{
			parent:  node,
			rewards: 0,
			visits:  1,
		}
		move := mockMove(0, false)
		node.explored = []game.Move{move}
		node.children = []Node{child}
		state := mockState{moves: []game.Move{}}

		var wg sync.WaitGroup
		wg.Add(2)

		var selectedChild Node
		var selectedState State
		go func() {
			defer wg.Done()
			selectedChild, selectedState, _ = node.SelectOrExpand(state, nil)
		}()

		var backedUp Node
		go func() {
			defer wg.Done()
			backedUp = node.Backup(game.PlayerA, Win)
		}()

		wg.Wait()

		require.Equal(t, child, selectedChild, "Node should select the child")
		require.Equal(t, move, selectedState.(mockState).played[0], "State should update by the move to the child")
		require.Equal(t, parent, backedUp, "Node should return its parent")
		require.Equal(t, Loss, child.rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, child.visits, "Child should apply a temporary loss")
		require.Equal(t, Win, node.rewards, "Node should reverse virtual loss and add a win")
		require.Equal(t, 3.0, node.visits, "Node should reverse virtual loss and add a visit")
	})
}
