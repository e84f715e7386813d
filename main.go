package main

import (
	"os"

	"github.com/ethlightclient/verifier/cmd/verifier"
)

func main() {
	os.Exit(verifier.Execute())
}
