package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podlift/podlift/internal/config"
)

type stubSession struct {
	submitErrs []error
	submits    int
	canceled   bool
}

func (s *stubSession) Submit(context.Context) error {
	s.submits++
	if len(s.submitErrs) > 0 {
		err := s.submitErrs[0]
		s.submitErrs = s.submitErrs[1:]
		return err
	}
	return nil
}

func (s *stubSession) Cancel() { s.canceled = true }

func testApp(input string) (*App, *bytes.Buffer) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	out := &bytes.Buffer{}
	return &App{
		config: cfg,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

func TestRunEditLoop_SetShowSave(t *testing.T) {
	a, out := testApp("set name New Name\nshow\nsave\n")
	sess := &stubSession{}

	value := "Old Name"
	fields := map[string]*fieldSpec{
		"name": {
			get: func() string { return value },
			set: func(v string) error { value = v; return nil },
		},
	}

	a.runEditLoop(context.Background(), "campaign c-1", []string{"name"}, fields, sess)

	assert.Equal(t, "New Name", value)
	assert.Equal(t, 1, sess.submits)
	assert.False(t, sess.canceled)
	assert.Contains(t, out.String(), "name: New Name")
}

func TestRunEditLoop_FailedSaveKeepsLoopAlive(t *testing.T) {
	a, out := testApp("save\nsave\n")
	sess := &stubSession{submitErrs: []error{errors.New("keywords must be unique")}}

	a.runEditLoop(context.Background(), "campaign c-1", nil, map[string]*fieldSpec{}, sess)

	assert.Equal(t, 2, sess.submits, "a rejected save leaves the edit loop running")
	assert.Contains(t, out.String(), "keywords must be unique")
}

func TestRunEditLoop_ConstraintRejectionPrinted(t *testing.T) {
	a, out := testApp("add keywords growth\ncancel\n")
	sess := &stubSession{}

	fields := map[string]*fieldSpec{
		"keywords": {
			get: func() string { return "" },
			add: func(string) error { return errors.New(`duplicate keyword: "growth"`) },
		},
	}

	a.runEditLoop(context.Background(), "campaign c-1", []string{"keywords"}, fields, sess)

	assert.True(t, sess.canceled)
	assert.Zero(t, sess.submits)
	assert.Contains(t, out.String(), "duplicate keyword")
}

func TestRunEditLoop_EOFCancels(t *testing.T) {
	a, _ := testApp("")
	sess := &stubSession{}

	a.runEditLoop(context.Background(), "campaign c-1", nil, map[string]*fieldSpec{}, sess)

	assert.True(t, sess.canceled, "dropping out of the loop discards the working copy")
}

func TestRunEditLoop_RmParsesIndex(t *testing.T) {
	var removed []int
	a, out := testApp("rm keywords 2\nrm keywords x\ncancel\n")
	sess := &stubSession{}

	fields := map[string]*fieldSpec{
		"keywords": {
			get: func() string { return "" },
			rm:  func(i int) error { removed = append(removed, i); return nil },
		},
	}

	a.runEditLoop(context.Background(), "campaign c-1", []string{"keywords"}, fields, sess)

	require.Equal(t, []int{2}, removed)
	assert.Contains(t, out.String(), "Usage: rm")
}
