// Package script replays line-oriented cache commands against a Cache.
//
// One command per line:
//
//	put <key> <value>
//	get <key>
//	peek <key>
//	del <key>
//	len
//	keys
//
// Blank lines and lines starting with '#' are skipped.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lrucache/internal/cache"
)

// Miss is printed for a get or peek on an absent key.
const Miss = "MISS"

// MaxLineSize bounds a single script line.
const MaxLineSize = 1 << 20

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("script: syntax error")

// Store is the cache surface a script drives. Both *cache.Cache and
// *cache.Synced satisfy it for string keys and values.
type Store interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Peek(key string) (string, bool)
	Remove(key string) bool
	Len() int
	Keys() []string
}

var (
	_ Store = (*cache.Cache[string, string])(nil)
	_ Store = (*cache.Synced[string, string])(nil)
)

// Kind names a script command.
type Kind string

const (
	KindPut  Kind = "put"
	KindGet  Kind = "get"
	KindPeek Kind = "peek"
	KindDel  Kind = "del"
	KindLen  Kind = "len"
	KindKeys Kind = "keys"
)

// arity is the number of arguments each command takes.
var arity = map[Kind]int{
	KindPut:  2,
	KindGet:  1,
	KindPeek: 1,
	KindDel:  1,
	KindLen:  0,
	KindKeys: 0,
}

// Op is one parsed command.
type Op struct {
	Line  int
	Kind  Kind
	Key   string
	Value string
}

func (op Op) String() string {
	switch arity[op.Kind] {
	case 2:
		return fmt.Sprintf("%s %s %s", op.Kind, op.Key, op.Value)
	case 1:
		return fmt.Sprintf("%s %s", op.Kind, op.Key)
	default:
		return string(op.Kind)
	}
}

// Result is the outcome of one Op.
//
// Found reports whether the key was resident for get, peek and del. On a
// get or peek miss Output is empty; a stored value equal to Miss is still a
// hit. Output is empty for put.
type Result struct {
	Op     Op
	Output string
	Found  bool
}

// String renders r the way the CLI prints it: the Miss marker for a get or
// peek on an absent key, Output otherwise.
func (r Result) String() string {
	switch r.Op.Kind {
	case KindGet, KindPeek:
		if !r.Found {
			return Miss
		}
	}
	return r.Output
}

// Parse reads every command from r.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		kind := Kind(strings.ToLower(fields[0]))
		want, ok := arity[kind]
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown command %q", ErrSyntax, line, fields[0])
		}
		if got := len(fields) - 1; got != want {
			return nil, fmt.Errorf("%w: line %d: %s takes %d argument(s), got %d", ErrSyntax, line, kind, want, got)
		}

		op := Op{Line: line, Kind: kind}
		if want >= 1 {
			op.Key = fields[1]
		}
		if want == 2 {
			op.Value = fields[2]
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: longer than %d bytes", ErrSyntax, line+1, MaxLineSize)
		}
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ops, nil
}

// Run applies ops to c in order and returns one Result per Op.
func Run(c Store, ops []Op) []Result {
	out, _ := RunContext(context.Background(), c, ops)
	return out
}

// RunContext is Run with cancellation checked between commands. On
// cancellation it returns the results gathered so far and ctx.Err().
func RunContext(ctx context.Context, c Store, ops []Op) ([]Result, error) {
	out := make([]Result, 0, len(ops))
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out = append(out, apply(c, op))
	}
	return out, nil
}

func apply(c Store, op Op) Result {
	r := Result{Op: op}
	switch op.Kind {
	case KindPut:
		c.Put(op.Key, op.Value)
	case KindGet:
		r.Output, r.Found = c.Get(op.Key)
	case KindPeek:
		r.Output, r.Found = c.Peek(op.Key)
	case KindDel:
		r.Found = c.Remove(op.Key)
		r.Output = strconv.FormatBool(r.Found)
	case KindLen:
		r.Output = strconv.Itoa(c.Len())
	case KindKeys:
		r.Output = strings.Join(c.Keys(), " ")
	}
	return r
}
