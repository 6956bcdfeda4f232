package wheel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openModal(t *testing.T, s *fakeSuggester) Model {
	t.Helper()
	m := newTestModel(t, Options{Suggester: s})
	assert.Contains(t, plain(m), "Not sure?")
	m = step(t, m, keyRunes("?"))
	require.True(t, m.modalOpen)
	return m
}

func TestModal_HiddenWithoutSuggester(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.NotContains(t, plain(m), "Not sure?")
	m = step(t, m, keyRunes("?"))
	assert.False(t, m.modalOpen)
}

func TestModal_OnlyOnPrimaryStage(t *testing.T) {
	m := newTestModel(t, Options{Suggester: &fakeSuggester{}})
	m = step(t, m, keySpace)
	m = step(t, m, keyEnter)
	assert.NotContains(t, plain(m), "Not sure?")
	m = step(t, m, keyRunes("?"))
	assert.False(t, m.modalOpen)
}

func TestModal_SubmitDisabledWhenBlank(t *testing.T) {
	m := openModal(t, &fakeSuggester{result: "Calm"})
	assert.False(t, m.modal.canSubmit())

	m = step(t, m, keyRunes("   "))
	assert.False(t, m.modal.canSubmit())

	m, cmd := stepCmd(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.modal.pending)
}

func TestModal_SubmitSuccess(t *testing.T) {
	s := &fakeSuggester{result: "Calm"}
	m := openModal(t, s)
	assert.Contains(t, plain(m), modalTitle)

	m = step(t, m, keyRunes("long day at work"))
	assert.True(t, m.modal.canSubmit())

	m, cmd := stepCmd(t, m, keyEnter)
	assert.True(t, m.modal.pending)
	assert.False(t, m.modal.canSubmit())
	assert.Contains(t, plain(m), "Analyzing...")

	m = step(t, m, firstMsg[suggestionMsg](t, cmd))
	assert.False(t, m.modal.pending)
	assert.Equal(t, []string{"long day at work"}, s.texts)
	assert.Contains(t, plain(m), "You could be feeling Calm")
}

func TestModal_SubmitError(t *testing.T) {
	m := openModal(t, &fakeSuggester{err: errors.New("HTTP error! status: 500")})
	m = step(t, m, keyRunes("meh"))
	m, cmd := stepCmd(t, m, keyEnter)
	m = step(t, m, firstMsg[suggestionMsg](t, cmd))

	view := plain(m)
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "HTTP error! status: 500")
	// Resubmitting is allowed after a failure.
	assert.True(t, m.modal.canSubmit())
}

func TestModal_CloseClearsEverything(t *testing.T) {
	m := openModal(t, &fakeSuggester{result: "Calm"})
	m = step(t, m, keyRunes("tired"))
	m, cmd := stepCmd(t, m, keyEnter)
	m = step(t, m, firstMsg[suggestionMsg](t, cmd))

	m = step(t, m, keyEsc)
	assert.False(t, m.modalOpen)
	assert.Empty(t, m.modal.input.Value())
	assert.Empty(t, m.modal.result)
	assert.NoError(t, m.modal.err)
	assert.Contains(t, plain(m), promptPrimary)
}

func TestModal_LateAnswerAfterCloseIsDropped(t *testing.T) {
	m := openModal(t, &fakeSuggester{result: "Calm"})
	m = step(t, m, keyRunes("tired"))
	m, cmd := stepCmd(t, m, keyEnter)

	m = step(t, m, keyEsc)
	m = step(t, m, keyRunes("?"))
	m = step(t, m, firstMsg[suggestionMsg](t, cmd))

	assert.True(t, m.modalOpen)
	assert.False(t, m.modal.pending)
	assert.Empty(t, m.modal.result)
	assert.NotContains(t, plain(m), "You could be feeling")
}

func TestModal_KeysDoNotReachPicker(t *testing.T) {
	m := openModal(t, &fakeSuggester{})
	m = step(t, m, keySpace)
	m = step(t, m, keyRunes("q"))

	st, _ := m.State()
	assert.Equal(t, [][]string{{}}, names(st.Selections))
	assert.True(t, m.modalOpen)
	assert.Equal(t, " q", m.modal.input.Value())
}
