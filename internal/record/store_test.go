package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

func (n note) Clone() note {
	n.Tags = append([]string(nil), n.Tags...)
	return n
}

func ids[T any](rs []Record[T]) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestStore_AddAssignsMaxPlusOne(t *testing.T) {
	s := NewStore[note]()
	seen := map[int]bool{}
	for i := 0; i < 10; i++ {
		want := s.NextID()
		r := s.Add(note{Name: "n"})
		require.Equal(t, want, r.ID)
		require.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
	}
	assert.Equal(t, 1, NewStore[note]().NextID())
}

func TestStore_IdsNotReusedAfterMiddleDelete(t *testing.T) {
	s := NewStore(note{Name: "a"}, note{Name: "b"})
	require.Equal(t, []int{1, 2}, ids(s.List()))

	x := s.Add(note{Name: "X"})
	assert.Equal(t, 3, x.ID)

	require.True(t, s.Remove(2))
	y := s.Add(note{Name: "Y"})
	assert.Equal(t, 4, y.ID)
	assert.Equal(t, []int{1, 3, 4}, ids(s.List()))
}

func TestStore_MaxIdReusedAfterDeletingIt(t *testing.T) {
	s := NewStore(note{Name: "a"}, note{Name: "b"}, note{Name: "c"})
	require.True(t, s.Remove(3))
	assert.Equal(t, 3, s.Add(note{Name: "d"}).ID)

	for _, id := range []int{1, 2, 3} {
		s.Remove(id)
	}
	assert.Equal(t, 1, s.Add(note{Name: "e"}).ID)
}

func TestStore_ReplaceKeepsPosition(t *testing.T) {
	s := NewStore(note{Name: "a"}, note{Name: "b"}, note{Name: "c"})

	require.True(t, s.Replace(2, note{Name: "B"}))

	list := s.List()
	assert.Equal(t, []int{1, 2, 3}, ids(list))
	assert.Equal(t, "a", list[0].Payload.Name)
	assert.Equal(t, "B", list[1].Payload.Name)
	assert.Equal(t, "c", list[2].Payload.Name)

	assert.False(t, s.Replace(42, note{Name: "z"}))
	assert.Equal(t, 3, s.Len())
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := NewStore(note{Name: "a"}, note{Name: "b"})

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.Equal(t, []int{2}, ids(s.List()))
}

func TestStore_ListReturnsCopies(t *testing.T) {
	s := NewStore(note{Name: "a", Tags: []string{"x"}})

	list := s.List()
	list[0].Payload.Tags[0] = "mutated"
	list[0].Payload.Name = "mutated"

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, note{Name: "a", Tags: []string{"x"}}, got.Payload)
}

func TestRecord_JSONIsFlat(t *testing.T) {
	r := Record[note]{ID: 7, Payload: note{Name: "pizza"}}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"pizza"}`, string(b))

	var back Record[note]
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r, back)
}

func TestRecord_JSONRejectsNonObjectPayload(t *testing.T) {
	_, err := json.Marshal(Record[int]{ID: 1, Payload: 5})
	assert.Error(t, err)
}
