package docstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmattia/docindex/internal/protoerr"
	"github.com/nmattia/docindex/pkg/fs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(fs.NewFake(), "index.bin")
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func Test_Add_Assigns_Dense_Monotonic_Keys(t *testing.T) {
	s := openTestStore(t)

	for i := int32(0); i < 5; i++ {
		key, err := s.Add(Document{Title: "T", Authors: "A", Path: "f.txt", Year: 2020})
		require.NoError(t, err)
		require.Equal(t, i, key)
	}

	total, err := s.Total()
	require.NoError(t, err)
	require.Equal(t, 5, total)
}

func Test_Get_Returns_What_Add_Stored(t *testing.T) {
	s := openTestStore(t)

	key, err := s.Add(Document{Title: "T", Authors: "A", Path: "f.txt", Year: 2020})
	require.NoError(t, err)

	doc, err := s.Get(key)
	require.NoError(t, err)
	require.Equal(t, "T", doc.Title)
	require.Equal(t, "A", doc.Authors)
	require.Equal(t, "f.txt", doc.Path)
	require.EqualValues(t, 2020, doc.Year)
	require.Equal(t, key, doc.Key)
}

func Test_Get_Unknown_Key_Is_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(999)
	require.True(t, errors.Is(err, protoerr.ErrNotFound))
}

func Test_Delete_Tombstones_Without_Affecting_Other_Live_Keys(t *testing.T) {
	s := openTestStore(t)

	k0, err := s.Add(Document{Title: "A", Authors: "a", Path: "a.txt", Year: 1})
	require.NoError(t, err)
	k1, err := s.Add(Document{Title: "B", Authors: "b", Path: "b.txt", Year: 2})
	require.NoError(t, err)
	k2, err := s.Add(Document{Title: "C", Authors: "c", Path: "c.txt", Year: 3})
	require.NoError(t, err)

	require.NoError(t, s.Delete(k1))

	_, err = s.Get(k1)
	require.True(t, errors.Is(err, protoerr.ErrNotFound))

	d0, err := s.Get(k0)
	require.NoError(t, err)
	require.Equal(t, "A", d0.Title)

	d2, err := s.Get(k2)
	require.NoError(t, err)
	require.Equal(t, "C", d2.Title)

	total, err := s.Total()
	require.NoError(t, err)
	require.Equal(t, 3, total) // deletion does not reclaim the slot
}

func Test_Delete_Already_Deleted_Is_NotFound(t *testing.T) {
	s := openTestStore(t)

	key, err := s.Add(Document{Title: "A", Authors: "a", Path: "a.txt", Year: 1})
	require.NoError(t, err)

	require.NoError(t, s.Delete(key))
	require.True(t, errors.Is(s.Delete(key), protoerr.ErrNotFound))
}

func Test_Add_Rejects_Field_Exceeding_Fixed_Width(t *testing.T) {
	s := openTestStore(t)

	tooLong := make([]byte, pathWidth+1)
	for i := range tooLong {
		tooLong[i] = 'x'
	}

	_, err := s.Add(Document{Title: "T", Authors: "A", Path: string(tooLong), Year: 1})
	require.Error(t, err)
}
