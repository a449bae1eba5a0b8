package scan

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CountMatching_Counts_Lines_Not_Occurrences(t *testing.T) {
	n, err := CountMatching(strings.NewReader("apple banana\napple\n"), "apple", false)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func Test_CountMatching_Counts_Final_Unterminated_Line(t *testing.T) {
	n, err := CountMatching(strings.NewReader("apple banana\napple"), "apple", false)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func Test_CountMatching_Empty_Term_Matches_Nothing(t *testing.T) {
	n, err := CountMatching(strings.NewReader("anything\nat all\n"), "", false)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func Test_CountMatching_StopAtFirst_Returns_One(t *testing.T) {
	n, err := CountMatching(strings.NewReader("apple\napple\napple\n"), "apple", true)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func Test_Contains_True_And_False(t *testing.T) {
	hit, err := Contains(strings.NewReader("hello world\n"), "world")
	require.NoError(t, err)
	require.True(t, hit)

	hit, err = Contains(strings.NewReader("hello world\n"), "xyz")
	require.NoError(t, err)
	require.False(t, hit)
}

func Test_CountMatching_Overlapping_Prefix_Does_Not_Double_Count(t *testing.T) {
	// "aaa" contains "aa" only once per line under the state machine's
	// reset-on-completion rule.
	n, err := CountMatching(strings.NewReader("aaa\n"), "aa", false)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func Test_ParallelContains_Deterministic_Across_Worker_Counts(t *testing.T) {
	docs := map[int]string{
		0: "apple\n",
		1: "banana\n",
		2: "apple pie\n",
		3: "grape\n",
	}

	open := func(key int) (io.ReadCloser, error) {
		s, ok := docs[key]
		if !ok {
			return nil, io.EOF
		}

		return io.NopCloser(strings.NewReader(s)), nil
	}

	for _, w := range []int{1, 2, 3, 8} {
		bmp, err := ParallelContains(len(docs), "apple", w, 10, open)
		require.NoError(t, err)
		require.Equal(t, []int{0, 2}, bmp.Keys(len(docs)))
	}
}

func Test_ParallelContains_Skips_Unreadable_Documents(t *testing.T) {
	open := func(key int) (io.ReadCloser, error) {
		if key == 1 {
			return nil, io.ErrUnexpectedEOF
		}

		return io.NopCloser(strings.NewReader("apple\n")), nil
	}

	bmp, err := ParallelContains(3, "apple", 4, 10, open)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, bmp.Keys(3))
}

func Test_ParallelContains_Empty_Term_Or_Empty_Corpus(t *testing.T) {
	open := func(int) (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("x")), nil }

	bmp, err := ParallelContains(0, "x", 4, 10, open)
	require.NoError(t, err)
	require.Empty(t, bmp.Keys(0))

	bmp, err = ParallelContains(3, "", 4, 10, open)
	require.NoError(t, err)
	require.Empty(t, bmp.Keys(3))
}
