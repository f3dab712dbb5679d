// Command repl is an interactive shell for building, inspecting and running
// queries. Statements are assembled clause by clause, rendered for any of
// the supported dialects and optionally executed against a live database.
//
// The dialect comes from KYSELY_ENGINE (or an interactive prompt) and a
// DATABASE_URL, from the environment or a .env file, is connected on
// startup.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/joho/godotenv"

	"github.com/SferaDev/kysely/exec"
)

func main() {
	// .env supplements the environment; real variables win.
	_ = godotenv.Load()

	engine := strings.ToLower(os.Getenv("KYSELY_ENGINE"))
	if _, ok := exec.DriverName(engine); !ok {
		engine = promptEngine()
	}

	sess := NewSession(engine)
	defer sess.Close()

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          "kysely> ",
		HistoryFile:     historyPath(),
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &replCompleter{sess: sess},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("kysely shell, %s dialect. 'help' lists commands, 'exit' leaves.\n", sess.dialect.Name())

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		if err := sess.Execute("connect " + dsn); err != nil {
			fmt.Printf("  DATABASE_URL: %v\n", err)
		}
	}

	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); lower == "exit" || lower == "quit" {
			break
		}
		if err := sess.Execute(line); err != nil {
			fmt.Printf("  Error: %v\n", err)
		}
	}
}

// promptEngine asks for a dialect on stdin, defaulting to postgres.
func promptEngine() string {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("dialect (postgres, mysql, sqlite) [postgres]: ")
		line, err := in.ReadString('\n')
		if err != nil {
			return exec.Postgres
		}
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			return exec.Postgres
		}
		if _, ok := exec.DriverName(line); ok {
			return line
		}
		fmt.Printf("unknown dialect %q\n", line)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kysely_history")
}
