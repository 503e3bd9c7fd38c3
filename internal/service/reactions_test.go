package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat_web/internal/models"
)

func TestApplyToggle_NewEmoji(t *testing.T) {
	req := require.New(t)

	// Given a message with no reactions
	current := models.ReactionSet{}

	// When bob toggles 👍
	next := ApplyToggle(current, "👍", "bob")

	// Then a new entry holding only bob exists
	req.Equal(models.ReactionSet{"👍": {"bob"}}, next)
	req.NoError(next.Check())
}

func TestApplyToggle_TwiceRestoresOriginal(t *testing.T) {
	req := require.New(t)

	current := models.ReactionSet{"🔥": {"alice"}}

	// When the same (emoji, username) pair is toggled twice
	once := ApplyToggle(current, "👍", "bob")
	twice := ApplyToggle(once, "👍", "bob")

	// Then the set is back to the original
	req.Equal(current, twice)
	req.NoError(twice.Check())
}

func TestApplyToggle_LastUserRemovesEntry(t *testing.T) {
	req := require.New(t)

	current := models.ReactionSet{"👍": {"bob"}}

	// When the only reacting user toggles off
	next := ApplyToggle(current, "👍", "bob")

	// Then the emoji key is gone entirely, never stored empty
	req.Empty(next)
	req.NotContains(next, "👍")
	req.NoError(next.Check())
}

func TestApplyToggle_SecondUserAppends(t *testing.T) {
	req := require.New(t)

	current := models.ReactionSet{}

	// When bob and then carol toggle the same emoji
	next := ApplyToggle(current, "👍", "bob")
	next = ApplyToggle(next, "👍", "carol")

	// Then insertion order is preserved
	req.Equal(models.ReactionSet{"👍": {"bob", "carol"}}, next)

	// And when bob toggles off, carol remains
	next = ApplyToggle(next, "👍", "bob")
	req.Equal(models.ReactionSet{"👍": {"carol"}}, next)
	req.NoError(next.Check())
}

func TestApplyToggle_OtherEmojisUntouched(t *testing.T) {
	req := require.New(t)

	current := models.ReactionSet{"🔥": {"alice", "bob"}}

	next := ApplyToggle(current, "👍", "carol")

	req.Equal([]string{"alice", "bob"}, next["🔥"])
	req.Equal([]string{"carol"}, next["👍"])
}

func TestApplyToggle_DoesNotMutateInput(t *testing.T) {
	req := require.New(t)

	current := models.ReactionSet{"👍": {"bob"}}

	ApplyToggle(current, "👍", "carol")
	ApplyToggle(current, "👍", "bob")

	// The input set is unchanged after both calls
	req.Equal(models.ReactionSet{"👍": {"bob"}}, current)
}

func TestApplyToggle_NeverProducesEmptyEntries(t *testing.T) {
	req := require.New(t)

	users := []string{"alice", "bob", "carol"}
	emojis := []string{"👍", "🔥", "❤️"}

	// Toggle every pair on, then every pair off, checking the invariant
	// after each transition
	set := models.ReactionSet{}
	for _, emoji := range emojis {
		for _, user := range users {
			set = ApplyToggle(set, emoji, user)
			req.NoError(set.Check())
		}
	}
	for _, emoji := range emojis {
		for _, user := range users {
			set = ApplyToggle(set, emoji, user)
			req.NoError(set.Check())
		}
	}
	req.Empty(set)
}
