package main

import (
	"fmt"
	"os"

	cerr "github.com/toycpp/toycpp/error"
)

func main() {
	err := Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cerr.ExitCode(err))
	}
}
