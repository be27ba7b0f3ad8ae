package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/minaorangina/uno/engine"
	"github.com/minaorangina/uno/game"
	"github.com/minaorangina/uno/players"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	numPlayers := flag.Int("players", 4, "number of players")
	seed := flag.Int64("seed", 0, "seed for shuffling and random players; 0 picks one from the clock")
	human := flag.Bool("human", false, "play the first seat yourself")
	flag.Parse()
	defer klog.Flush()

	if *numPlayers < game.MinPlayers || *numPlayers > game.MaxPlayers {
		klog.Exitf("between %d and %d players can play", game.MinPlayers, game.MaxPlayers)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ps := players.NewPlayers()
	for i := 0; i < *numPlayers; i++ {
		name := fmt.Sprintf("Player%d", i)
		if i == 0 && *human {
			ps = players.AddPlayer(ps, players.NewCLIPlayer(players.NewID(), "You", os.Stdin, os.Stdout))
			continue
		}
		ps = players.AddPlayer(ps, players.NewRandomPlayer(players.NewID(), name, rand.New(rand.NewSource(*seed+int64(i)))))
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:    "cli",
		CreatorID: ps[0].ID(),
		Players:   ps,
		Uno:       game.NewSeeded(*seed),
	})
	if err != nil {
		klog.Exitf("could not create game: %v", err)
	}
	if err := ge.Start(); err != nil {
		klog.Exitf("could not start game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for ge.PlayState() != engine.Over {
		if ctx.Err() != nil {
			fmt.Println("\nGame abandoned")
			return
		}
		if !*human {
			fmt.Println(ge.State())
		}
		if _, err := ge.Step(); err != nil {
			klog.Exitf("turn %d: %v", ge.Turns(), err)
		}
	}

	winner, _ := ge.Winner()
	fmt.Printf("\n%s wins after %d turns (seed %d)\n", winner.Name(), ge.Turns(), *seed)
}
