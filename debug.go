//go:build debug

package hydro

import "fmt"

func assertHard(truth bool, msg ...interface{}) {
	if !truth {
		panic(fmt.Sprint("Assertion failed: ", msg))
	}
}
