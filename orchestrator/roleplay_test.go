package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/graph"
)

func TestRolePlay_EmptyCandidates(t *testing.T) {
	admin := newMockAgent("admin")
	rp := NewRolePlay(admin)

	speaker, err := rp.NextSpeaker(context.Background(), candidates())

	require.NoError(t, err)
	assert.Nil(t, speaker)
	assert.Zero(t, admin.calls)
}

func TestRolePlay_SingleCandidateSkipsAdmin(t *testing.T) {
	admin := newMockAgent("admin")
	alice := newMockAgent("alice")
	rp := NewRolePlay(admin)

	speaker, err := rp.NextSpeaker(context.Background(), candidates(alice))

	require.NoError(t, err)
	require.NotNil(t, speaker)
	assert.Equal(t, "alice", speaker.Name())
	assert.Zero(t, admin.calls, "a single candidate needs no arbitration")
}

func TestRolePlay_GraphResolvesWithoutAdmin(t *testing.T) {
	admin := newMockAgent("admin")
	alice := newMockAgent("alice")
	bob := newMockAgent("bob")
	carol := newMockAgent("carol")

	transition, err := graph.NewTransition(alice, bob)
	require.NoError(t, err)
	g := graph.NewGraph(transition)

	rp := NewRolePlay(admin, func(o *RolePlayOptions) {
		o.Graph = g
	})

	octx := candidates(alice, bob, carol)
	octx.ChatHistory = []core.Message{core.NewMessage(core.RoleAssistant, "over to you", "alice")}

	speaker, err := rp.NextSpeaker(context.Background(), octx)

	require.NoError(t, err)
	require.NotNil(t, speaker)
	assert.Equal(t, "bob", speaker.Name())
	assert.Zero(t, admin.calls, "graph narrowed the pool to one, no arbitration")
}

func TestRolePlay_ArbitrationPromptAndOptions(t *testing.T) {
	admin := newMockAgent("admin")
	admin.reply = "From bob"
	alice := newMockAgent("alice")
	bob := newMockAgent("bob")

	rp := NewRolePlay(admin)

	octx := candidates(alice, bob)
	octx.ChatHistory = []core.Message{
		core.NewMessage(core.RoleUser, "kick off", "user"),
		core.NewMessage(core.RoleAssistant, "my take", "alice"),
	}

	speaker, err := rp.NextSpeaker(context.Background(), octx)

	require.NoError(t, err)
	assert.Equal(t, "bob", speaker.Name())
	require.Equal(t, 1, admin.calls)

	// The admin sees exactly one system message carrying the role play
	// framing, the candidate names and the attributed history.
	require.Len(t, admin.gotMsgs, 1)
	prompt := admin.gotMsgs[0]
	assert.Equal(t, core.RoleSystem, prompt.Role)
	assert.Contains(t, prompt.Content, "carry on the conversation")
	assert.Contains(t, prompt.Content, "alice,bob")
	assert.Contains(t, prompt.Content, "From user: kick off")
	assert.Contains(t, prompt.Content, "From alice: my take")

	// Arbitration pins down deterministic short-output generation and
	// advertises no functions.
	require.NotNil(t, admin.gotOpts)
	assert.Equal(t, []string{":"}, admin.gotOpts.StopSequence)
	require.NotNil(t, admin.gotOpts.Temperature)
	assert.Equal(t, 0.0, *admin.gotOpts.Temperature)
	assert.Equal(t, int64(128), admin.gotOpts.MaxTokens)
	assert.Empty(t, admin.gotOpts.Functions)
}

func TestRolePlay_MatchesTrailingColonAndPrefixText(t *testing.T) {
	alice := newMockAgent("alice")
	bob := newMockAgent("bob")

	for _, reply := range []string{
		"bob",
		"bob:",
		"From bob",
		"  From bob:  ",
		"The next speaker is bob",
	} {
		admin := newMockAgent("admin")
		admin.reply = reply
		rp := NewRolePlay(admin)

		octx := candidates(alice, bob)
		octx.ChatHistory = []core.Message{core.NewMessage(core.RoleUser, "go", "user")}

		speaker, err := rp.NextSpeaker(context.Background(), octx)

		require.NoError(t, err, "reply %q", reply)
		require.NotNil(t, speaker, "reply %q", reply)
		assert.Equal(t, "bob", speaker.Name(), "reply %q", reply)
	}
}

func TestRolePlay_SuffixTieResolvesToDeclarationOrder(t *testing.T) {
	// "bob" is a suffix of the reply for both candidates; the first declared
	// match wins.
	admin := newMockAgent("admin")
	admin.reply = "superbob"
	bob := newMockAgent("bob")
	superbob := newMockAgent("superbob")

	rp := NewRolePlay(admin)

	octx := candidates(bob, superbob)
	octx.ChatHistory = []core.Message{core.NewMessage(core.RoleUser, "go", "user")}

	speaker, err := rp.NextSpeaker(context.Background(), octx)

	require.NoError(t, err)
	assert.Equal(t, "bob", speaker.Name())
}

func TestRolePlay_UnmatchableReply(t *testing.T) {
	admin := newMockAgent("admin")
	admin.reply = "I don't know"
	alice := newMockAgent("alice")
	bob := newMockAgent("bob")

	rp := NewRolePlay(admin)

	octx := candidates(alice, bob)
	octx.ChatHistory = []core.Message{core.NewMessage(core.RoleUser, "go", "user")}

	speaker, err := rp.NextSpeaker(context.Background(), octx)

	assert.Nil(t, speaker)
	require.Error(t, err)

	var selErr *SpeakerSelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, "I don't know", selErr.Fragment)
	assert.Equal(t, []string{"alice", "bob"}, selErr.Candidates)
	assert.Equal(t,
		`failed to select next speaker: "I don't know" is either not in the candidates list or not in the correct format (candidates: alice,bob)`,
		err.Error())
}

func TestRolePlay_AdminErrorPropagates(t *testing.T) {
	admin := newMockAgent("admin")
	admin.err = errors.New("provider down")
	alice := newMockAgent("alice")
	bob := newMockAgent("bob")

	rp := NewRolePlay(admin)

	octx := candidates(alice, bob)
	octx.ChatHistory = []core.Message{core.NewMessage(core.RoleUser, "go", "user")}

	_, err := rp.NextSpeaker(context.Background(), octx)

	assert.ErrorIs(t, err, admin.err)
}

func TestRolePlay_GraphEmptyIntersectionFallsBack(t *testing.T) {
	// The graph knows nothing about the last speaker's successors, so the
	// full candidate list goes to the admin.
	admin := newMockAgent("admin")
	admin.reply = "From carol"
	alice := newMockAgent("alice")
	bob := newMockAgent("bob")
	carol := newMockAgent("carol")

	transition, err := graph.NewTransition(bob, carol)
	require.NoError(t, err)
	rp := NewRolePlay(admin, func(o *RolePlayOptions) {
		o.Graph = graph.NewGraph(transition)
	})

	octx := candidates(alice, bob, carol)
	octx.ChatHistory = []core.Message{core.NewMessage(core.RoleAssistant, "hi", "alice")}

	speaker, err := rp.NextSpeaker(context.Background(), octx)

	require.NoError(t, err)
	assert.Equal(t, "carol", speaker.Name())
	assert.Equal(t, 1, admin.calls)
	assert.Contains(t, admin.gotMsgs[0].Content, "alice,bob,carol")
}

// scriptedAdmin replays a fixed sequence of replies.
type scriptedAdmin struct {
	replies []string
	calls   int
}

func (s *scriptedAdmin) Name() string { return "admin" }

func (s *scriptedAdmin) GenerateReply(_ context.Context, _ []core.Message, _ *core.GenerateReplyOptions) (core.Message, error) {
	reply := s.replies[s.calls%len(s.replies)]
	s.calls++
	return core.NewMessage(core.RoleAssistant, reply, "admin"), nil
}

func TestRolePlay_DrivesRoundRobinCycle(t *testing.T) {
	// An admin that always names the next agent in declaration order makes
	// RolePlay behave exactly like RoundRobin.
	alice := newMockAgent("alice")
	bob := newMockAgent("bob")
	carol := newMockAgent("carol")
	admin := &scriptedAdmin{replies: []string{"From bob", "From carol", "From alice"}}

	rp := NewRolePlay(admin)

	history := []core.Message{core.NewMessage(core.RoleAssistant, "start", "alice")}
	var spoke []string
	for i := 0; i < 3; i++ {
		octx := candidates(alice, bob, carol)
		octx.ChatHistory = core.CloneHistory(history)

		speaker, err := rp.NextSpeaker(context.Background(), octx)
		require.NoError(t, err)
		require.NotNil(t, speaker)

		spoke = append(spoke, speaker.Name())
		history = append(history, core.NewMessage(core.RoleAssistant, "turn", speaker.Name()))
	}

	assert.Equal(t, []string{"bob", "carol", "alice"}, spoke)
}
