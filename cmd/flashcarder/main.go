// Command flashcarder runs the flashcard generation pipeline from the
// terminal without a database, for checking prompts and models.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/r4yfon/flashcarder/internal/platform/llm"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(llm.NewCompleter).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
