package bsearch_test

import (
	"fmt"

	"github.com/Aman-CERP/snipkit/pkg/bsearch"
)

func ExampleSearch() {
	sorted := []int{1, 3, 5, 7, 9}
	fmt.Println(bsearch.Search(sorted, 5))
	fmt.Println(bsearch.Search(sorted, 10))
	// Output:
	// 2
	// -1
}
