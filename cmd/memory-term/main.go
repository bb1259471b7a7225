// Command memory-term plays a game of memory over stdin and stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/memory-server/internal/command"
	"github.com/vancomm/memory-server/internal/memory"
	"github.com/vancomm/memory-server/internal/term"
)

type player struct {
	*memory.Session
	*term.Renderer
}

func main() {
	var (
		dimension int
		verbose   bool
	)
	flag.IntVar(&dimension, "d", memory.DefaultDimension, "board dimension")
	flag.BoolVar(&verbose, "v", false, "log game events to stderr")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	memory.Log = log

	renderer := term.NewRenderer(os.Stdout)
	session, err := memory.NewSession(
		memory.DefaultParams().WithDimension(dimension),
		renderer,
		memory.WithLogger(log),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	p := player{Session: session, Renderer: renderer}

	fmt.Println("commands: g (board), s (start), c <i> (click), r (restart after a win), n (new game)")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		for _, line := range command.Lines(scanner.Text()) {
			cmd, err := command.Parse(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if cmd.Kind == command.Get {
				fmt.Print(session.Board().String())
				continue
			}
			if err := command.Execute(p, cmd); err != nil {
				fmt.Println(err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
