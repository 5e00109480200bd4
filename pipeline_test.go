package schemadiff

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline(t *testing.T) {
	p := NewPipeline()

	p.AddStage("drop_comments", func(s *Snapshot) (*Snapshot, error) {
		out := s.Copy()
		for i := range out.Tables {
			out.Tables[i].Comment = nil
		}
		return out, nil
	})

	p.AddStage("lowercase_definitions", func(s *Snapshot) (*Snapshot, error) {
		out := s.Copy()
		for i := range out.Indexes {
			out.Indexes[i].Definition = strings.ToLower(out.Indexes[i].Definition)
		}
		return out, nil
	})

	assert.Equal(t, []string{"drop_comments", "lowercase_definitions"}, p.Stages())

	comment := "users of the app"
	in := &Snapshot{
		Tables:  []Table{{Name: "users", Comment: &comment}},
		Indexes: []Index{{TableName: "users", Name: "users_pkey", Definition: "CREATE UNIQUE INDEX users_pkey"}},
	}

	out, err := p.Run(in)
	require.NoError(t, err)
	assert.Nil(t, out.Tables[0].Comment)
	assert.Equal(t, "create unique index users_pkey", out.Indexes[0].Definition)

	// stages work on copies
	assert.Equal(t, &comment, in.Tables[0].Comment)
	assert.Equal(t, "CREATE UNIQUE INDEX users_pkey", in.Indexes[0].Definition)
}

func TestPipelineErrors(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("stage error", func(t *testing.T) {
		called := false
		p := NewPipeline()
		p.AddStage("fail", func(s *Snapshot) (*Snapshot, error) { return nil, errBoom })
		p.AddStage("never", func(s *Snapshot) (*Snapshot, error) {
			called = true
			return s, nil
		})

		_, err := p.Run(&Snapshot{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errBoom))
		assert.Contains(t, err.Error(), "`fail`")
		assert.False(t, called)
	})

	t.Run("stage returns nothing", func(t *testing.T) {
		p := NewPipeline()
		p.AddStage("drop", func(s *Snapshot) (*Snapshot, error) { return nil, nil })

		_, err := p.Run(&Snapshot{})
		assert.EqualError(t, err, "pipeline stage `drop` returned no snapshot")
	})

	t.Run("empty and nil pipelines", func(t *testing.T) {
		s := &Snapshot{Schema: "public"}

		out, err := NewPipeline().Run(s)
		require.NoError(t, err)
		assert.Same(t, s, out)

		var p *Pipeline
		out, err = p.Run(s)
		require.NoError(t, err)
		assert.Same(t, s, out)
	})
}
