// Package mathx provides integer helpers for snipkit.
package mathx

import (
	"fmt"
	"math/big"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

// MaxUint64Factorial is the largest n whose factorial fits in a uint64.
const MaxUint64Factorial = 20

// MaxBigFactorial is the largest n accepted by FactorialBig. 100000! has
// 456574 decimal digits.
const MaxBigFactorial = 100_000

// DefaultMemoSize is the number of results a Memo keeps when no size is given.
const DefaultMemoSize = 256

// Factorial returns n! as a uint64.
// Negative n is rejected with ERR_401_INVALID_INPUT and n > 20 with
// ERR_407_NUMERIC_OVERFLOW; use FactorialBig for exact large results.
func Factorial(n int) (uint64, error) {
	if err := checkNonNegative(n); err != nil {
		return 0, err
	}
	if n > MaxUint64Factorial {
		return 0, snipErrors.New(snipErrors.ErrCodeNumericOverflow,
			fmt.Sprintf("%d! overflows uint64", n), nil).
			WithDetail("n", strconv.Itoa(n)).
			WithSuggestion(fmt.Sprintf("Values above %d need arbitrary precision (--big)", MaxUint64Factorial))
	}

	result := uint64(1)
	for i := uint64(2); i <= uint64(n); i++ {
		result *= i
	}
	return result, nil
}

// FactorialBig returns n! with arbitrary precision for 0 <= n <= MaxBigFactorial.
// Larger n is rejected with ERR_401_INVALID_INPUT.
func FactorialBig(n int) (*big.Int, error) {
	if err := checkNonNegative(n); err != nil {
		return nil, err
	}
	if n > MaxBigFactorial {
		return nil, snipErrors.ValidationError(
			fmt.Sprintf("%d is above the factorial limit of %d", n, MaxBigFactorial), nil).
			WithDetail("n", strconv.Itoa(n))
	}
	if n < 2 {
		return big.NewInt(1), nil
	}
	return new(big.Int).MulRange(2, int64(n)), nil
}

func checkNonNegative(n int) error {
	if n < 0 {
		return snipErrors.ValidationError("factorial is not defined for negative numbers", nil).
			WithDetail("n", strconv.Itoa(n))
	}
	return nil
}

// Memo caches FactorialBig results in a bounded LRU.
// It is safe for concurrent use.
type Memo struct {
	cache *lru.Cache[int, *big.Int]
}

// NewMemo creates a memo holding up to size results.
func NewMemo(size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	cache, _ := lru.New[int, *big.Int](size)
	return &Memo{cache: cache}
}

// Get returns n!, computing and caching it on a miss. The returned value is a
// copy and may be modified by the caller.
func (m *Memo) Get(n int) (*big.Int, error) {
	if v, ok := m.cache.Get(n); ok {
		return new(big.Int).Set(v), nil
	}

	v, err := FactorialBig(n)
	if err != nil {
		return nil, err
	}
	m.cache.Add(n, v)
	return new(big.Int).Set(v), nil
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	return m.cache.Len()
}
