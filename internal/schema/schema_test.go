package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmattia/docindex/internal/wire"
)

func Test_LookupByOpcode_Finds_All_Six_Rows(t *testing.T) {
	for _, want := range []wire.Opcode{wire.OpAdd, wire.OpCheck, wire.OpDelete, wire.OpList, wire.OpSearch, wire.OpFlush} {
		e, ok := LookupByOpcode(want)
		require.True(t, ok, "opcode %v", want)
		require.Equal(t, want, e.Opcode)
	}
}

func Test_LookupByOpcode_Unknown_Opcode_Misses(t *testing.T) {
	_, ok := LookupByOpcode(wire.Opcode('Z'))
	require.False(t, ok)
}

func Test_ParseCLI_Search_Accepts_Optional_Worker_Count(t *testing.T) {
	e, ok := ParseCLI([]string{"-s", "banana"})
	require.True(t, ok)
	require.Equal(t, wire.OpSearch, e.Opcode)

	e, ok = ParseCLI([]string{"-s", "banana", "4"})
	require.True(t, ok)
	require.Equal(t, wire.OpSearch, e.Opcode)
}

func Test_ParseCLI_Rejects_Wrong_Arity(t *testing.T) {
	_, ok := ParseCLI([]string{"-c"})
	require.False(t, ok)

	_, ok = ParseCLI([]string{"-c", "1", "2"})
	require.False(t, ok)

	_, ok = ParseCLI([]string{"-f", "extra"})
	require.False(t, ok)
}

func Test_ParseCLI_Unknown_Flag_Misses(t *testing.T) {
	_, ok := ParseCLI([]string{"-z"})
	require.False(t, ok)
}

func Test_Blocking_Bit_Matches_Spec_Table(t *testing.T) {
	blocking := map[wire.Opcode]bool{
		wire.OpAdd: true, wire.OpCheck: false, wire.OpDelete: true,
		wire.OpList: false, wire.OpSearch: false, wire.OpFlush: true,
	}

	for op, want := range blocking {
		e, ok := LookupByOpcode(op)
		require.True(t, ok)
		require.Equal(t, want, e.Blocking, "opcode %v", op)
	}
}
