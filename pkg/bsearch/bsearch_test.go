package bsearch

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_KnownScenarios(t *testing.T) {
	odd := []int{1, 3, 5, 7, 9}

	tests := []struct {
		name   string
		s      []int
		target int
		want   int
	}{
		{"middle element", odd, 5, 2},
		{"above range", odd, 10, NotFound},
		{"first element", odd, 1, 0},
		{"last element", odd, 9, 4},
		{"below range", odd, 0, NotFound},
		{"gap between elements", odd, 4, NotFound},
		{"empty sequence", []int{}, 5, NotFound},
		{"nil sequence", nil, 5, NotFound},
		{"single element hit", []int{42}, 42, 0},
		{"single element miss", []int{42}, 7, NotFound},
		{"negative values", []int{-9, -4, -1, 0, 3}, -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Search(tt.s, tt.target))
		})
	}
}

func TestSearch_Strings(t *testing.T) {
	words := []string{"apple", "banana", "cherry", "date"}

	assert.Equal(t, 2, Search(words, "cherry"))
	assert.Equal(t, NotFound, Search(words, "blueberry"))
}

func TestSearch_PresentTargetsAreFound(t *testing.T) {
	// Given: random ascending sequences of varying length
	r := rand.New(rand.NewPCG(1, 2))

	for n := 0; n < 200; n++ {
		s := randomSorted(r, n)

		// Then: every element is found at an index holding an equal value
		for _, v := range s {
			i := Search(s, v)
			require.NotEqual(t, NotFound, i, "len=%d target=%d", n, v)
			require.Equal(t, v, s[i])
		}
	}
}

func TestSearch_AbsentTargetsReturnNotFound(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))

	for n := 0; n < 200; n++ {
		s := randomSorted(r, n)
		for x := -5; x < 3*n+5; x++ {
			if slices.Contains(s, x) {
				continue
			}
			require.Equal(t, NotFound, Search(s, x), "len=%d target=%d", n, x)
		}
	}
}

func TestSearch_DuplicatesReturnSomeMatch(t *testing.T) {
	// Which duplicate is returned is unspecified; only equality is asserted.
	s := []int{1, 2, 2, 2, 2, 2, 3, 7, 7, 9}

	for _, target := range []int{2, 7} {
		i := Search(s, target)
		require.NotEqual(t, NotFound, i)
		assert.Equal(t, target, s[i])
	}

	allSame := []int{4, 4, 4, 4, 4, 4, 4}
	i := Search(allSame, 4)
	require.NotEqual(t, NotFound, i)
	assert.Equal(t, 4, allSame[i])
}

func TestSearch_Idempotent(t *testing.T) {
	s := []int{1, 3, 5, 7, 9}
	first := Search(s, 7)

	for range 10 {
		assert.Equal(t, first, Search(s, 7))
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	s := []int{1, 3, 5, 7, 9}
	before := slices.Clone(s)

	_ = Search(s, 5)
	_ = Search(s, 6)

	assert.Equal(t, before, s)
}

func TestSearch_ConcurrentReaders(t *testing.T) {
	// Given: one shared read-only sequence
	s := make([]int, 1000)
	for i := range s {
		s[i] = i * 2
	}

	// When: many goroutines search it at once
	var wg sync.WaitGroup
	errs := make(chan int, 64)
	for g := range 64 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := g; i < len(s); i += 64 {
				if Search(s, s[i]) != i {
					errs <- i
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	// Then: every lookup lands on its own index
	for i := range errs {
		t.Errorf("lookup of index %d returned wrong position", i)
	}
}

func TestSearchFunc_StructKey(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}
	users := []user{{1, "ada"}, {4, "bob"}, {9, "cy"}, {12, "dee"}}
	byID := func(u user, id int) int { return cmp.Compare(u.ID, id) }

	tests := []struct {
		id   int
		want int
	}{
		{1, 0},
		{9, 2},
		{12, 3},
		{5, NotFound},
		{13, NotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SearchFunc(users, tt.id, byID), "id=%d", tt.id)
	}
}

func TestSearchFunc_AgreesWithSearch(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	s := randomSorted(r, 300)

	for x := -3; x < 1000; x++ {
		got := SearchFunc(s, x, cmp.Compare[int])
		want := Search(s, x)
		require.Equal(t, want, got, "target=%d", x)
	}
}

func TestSearchFunc_CaseInsensitive(t *testing.T) {
	names := []string{"Alpha", "bravo", "CHARLIE", "delta"}
	fold := func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) }

	assert.Equal(t, 2, SearchFunc(names, "charlie", fold))
	assert.Equal(t, NotFound, SearchFunc(names, "echo", fold))
}

func TestContains(t *testing.T) {
	s := []float64{0.5, 1.25, 2.0}

	assert.True(t, Contains(s, 1.25))
	assert.False(t, Contains(s, 1.5))
	assert.False(t, Contains([]float64{}, 0))
}

// randomSorted returns n ascending ints with gaps and occasional duplicates.
func randomSorted(r *rand.Rand, n int) []int {
	s := make([]int, n)
	v := 0
	for i := range s {
		v += r.IntN(3)
		s[i] = v
	}
	return s
}

func BenchmarkSearch(b *testing.B) {
	s := make([]int, 1<<20)
	for i := range s {
		s[i] = i
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Search(s, i&(len(s)-1))
	}
}
