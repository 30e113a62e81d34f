package script

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrucache/internal/cache"
)

const walkthrough = `
# capacity 2
put 1 1
put 2 2
get 1
put 3 3
get 2
put 4 4
get 1
get 3
get 4
keys
len
`

func TestParse(t *testing.T) {
	ops, err := Parse(strings.NewReader("put a 1\n\n  GET a  \n# note\ndel a\nkeys\nlen\npeek b\n"))
	require.NoError(t, err)

	assert.Equal(t, []Op{
		{Line: 1, Kind: KindPut, Key: "a", Value: "1"},
		{Line: 3, Kind: KindGet, Key: "a"},
		{Line: 5, Kind: KindDel, Key: "a"},
		{Line: 6, Kind: KindKeys},
		{Line: 7, Kind: KindLen},
		{Line: 8, Kind: KindPeek, Key: "b"},
	}, ops)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown command", "put a 1\nfrob a\n", `line 2: unknown command "frob"`},
		{"missing value", "put a\n", "line 1: put takes 2 argument(s), got 1"},
		{"extra argument", "get a b\n", "line 1: get takes 1 argument(s), got 2"},
		{"args on len", "len 3\n", "line 1: len takes 0 argument(s), got 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Parse(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, ops)
		})
	}
}

func TestRun_Walkthrough(t *testing.T) {
	c, err := cache.New[string, string](2)
	require.NoError(t, err)

	ops, err := Parse(strings.NewReader(walkthrough))
	require.NoError(t, err)

	results := Run(c, ops)
	require.Len(t, results, len(ops))

	var got []string
	for _, r := range results {
		got = append(got, r.String())
	}
	assert.Equal(t, []string{"", "", "1", "", Miss, "", Miss, "3", "4", "4 3", "2"}, got)
}

func TestRun_PeekAndDel(t *testing.T) {
	c, err := cache.New[string, string](2)
	require.NoError(t, err)

	ops, err := Parse(strings.NewReader("put a x\nput b y\npeek a\nput c z\npeek a\ndel b\ndel b\nkeys\n"))
	require.NoError(t, err)

	results := Run(c, ops)
	var got []string
	for _, r := range results {
		got = append(got, r.String())
	}
	// peek does not refresh a, so c evicts it.
	assert.Equal(t, []string{"", "", "x", "", Miss, "true", "false", "c"}, got)
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "put k v", Op{Kind: KindPut, Key: "k", Value: "v"}.String())
	assert.Equal(t, "get k", Op{Kind: KindGet, Key: "k"}.String())
	assert.Equal(t, "len", Op{Kind: KindLen}.String())
}

func TestRunContext_Canceled(t *testing.T) {
	c, err := cache.New[string, string](2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunContext(ctx, c, []Op{{Kind: KindPut, Key: "a", Value: "1"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Zero(t, c.Len())
}

func TestRun_MissMarkerValueIsAHit(t *testing.T) {
	c, err := cache.New[string, string](2)
	require.NoError(t, err)

	ops, err := Parse(strings.NewReader("put k " + Miss + "\nget k\nget absent\npeek k\npeek absent\n"))
	require.NoError(t, err)

	results := Run(c, ops)
	require.Len(t, results, 5)

	assert.True(t, results[1].Found)
	assert.Equal(t, Miss, results[1].Output)
	assert.False(t, results[2].Found)
	assert.Empty(t, results[2].Output)
	assert.NotEqual(t, results[1], results[2])

	assert.True(t, results[3].Found)
	assert.False(t, results[4].Found)
	assert.Equal(t, Miss, results[4].String())
}

func TestRun_DelReportsFound(t *testing.T) {
	c, err := cache.New[string, string](1)
	require.NoError(t, err)

	results := Run(c, []Op{
		{Kind: KindPut, Key: "a", Value: "1"},
		{Kind: KindDel, Key: "a"},
		{Kind: KindDel, Key: "a"},
	})
	assert.True(t, results[1].Found)
	assert.False(t, results[2].Found)
}

func TestRun_Synced(t *testing.T) {
	s, err := cache.NewSynced[string, string](2)
	require.NoError(t, err)

	ops, err := Parse(strings.NewReader(walkthrough))
	require.NoError(t, err)

	var got []string
	for _, r := range Run(s, ops) {
		got = append(got, r.String())
	}
	assert.Equal(t, []string{"", "", "1", "", Miss, "", Miss, "3", "4", "4 3", "2"}, got)
}

func TestParse_LineTooLong(t *testing.T) {
	input := "put a 1\nput b " + strings.Repeat("x", MaxLineSize+1) + "\n"

	ops, err := Parse(strings.NewReader(input))
	require.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, ops)
}

func TestParse_LongLineWithinLimit(t *testing.T) {
	value := strings.Repeat("x", 100*1024)

	ops, err := Parse(strings.NewReader("put a " + value + "\n"))
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, value, ops[0].Value)
}
