// Command duel-cli plays a battle in the terminal against the computer.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/config"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/service"
)

func main() {
	// Keep structured logs off the battle transcript.
	logging.SetOutput(io.Discard)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	rules := cfg.Rules
	battle := service.NewBattle(service.StaticRoster(cfg.Roster), service.Settings{Rules: &rules})
	defer battle.Close()

	snaps, cancel := battle.Subscribe()
	defer cancel()
	go render(os.Stdout, snaps)

	if err := play(battle, bufio.NewScanner(os.Stdin), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// play reads commands until stdin closes or the player quits.
func play(b *service.Battle, in *bufio.Scanner, out io.Writer) error {
	roster, err := b.ListRoster()
	if err != nil {
		return err
	}
	printRoster(out, roster)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			return nil
		}
		snap := b.Snapshot()
		switch snap.Phase {
		case game.PhaseSelecting:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(roster) {
				fmt.Fprintln(out, "Pick a creature by number.")
				continue
			}
			if _, err := b.StartSession(roster[n-1].ID); err != nil {
				fmt.Fprintln(out, "Cannot start:", err)
			}
		case game.PhaseInBattle:
			n, err := strconv.Atoi(line)
			if err != nil || !b.SubmitPlayerMove(n-1) {
				fmt.Fprintln(out, "Not now.")
			}
		case game.PhaseConcluded:
			if strings.HasPrefix(strings.ToLower(line), "y") {
				b.ResetToSelection()
				printRoster(out, roster)
				continue
			}
			return nil
		}
	}
	return in.Err()
}

func printRoster(out io.Writer, roster []game.Creature) {
	fmt.Fprintln(out, "Choose your creature:")
	for i, c := range roster {
		fmt.Fprintf(out, "  %d) %-12s %-8s HP %d\n", i+1, c.Name, c.Type, c.MaxHP)
	}
}

// render prints new log lines as snapshots arrive and prompts whenever the
// player may act.
func render(out io.Writer, snaps <-chan game.Snapshot) {
	var (
		session string
		printed int
	)
	for snap := range snaps {
		if snap.SessionID != session {
			session, printed = snap.SessionID, 0
		}
		for ; printed < len(snap.Log); printed++ {
			fmt.Fprintln(out, snap.Log[printed])
		}
		switch {
		case snap.Phase == game.PhaseConcluded && !snap.Busy:
			fmt.Fprintln(out, "Play again? (y/n)")
		case snap.Phase == game.PhaseInBattle && snap.Turn == game.SidePlayer && !snap.Busy:
			printStatus(out, snap)
		}
	}
}

func printStatus(out io.Writer, snap game.Snapshot) {
	fmt.Fprintf(out, "%s %d/%d [%s]  vs  %s %d/%d [%s]\n",
		snap.Player.Name, snap.PlayerHP, snap.Player.MaxHP, snap.PlayerBand,
		snap.Opponent.Name, snap.OpponentHP, snap.Opponent.MaxHP, snap.OpponentBand)
	for i, m := range snap.Player.Moves {
		fmt.Fprintf(out, "  %d) %s (%s)\n", i+1, m.Name, m.Type)
	}
}
