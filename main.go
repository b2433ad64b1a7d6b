package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"chance-chess/internal/config"
	"chance-chess/internal/game"

	"github.com/fatih/color"
)

var (
	lightSq  = color.New(color.BgHiBlack)
	darkSq   = color.New(color.BgBlack)
	markSq   = color.New(color.BgYellow)
	blockSq  = color.New(color.BgRed)
	whiteFg  = color.New(color.FgHiWhite, color.Bold)
	blackFg  = color.New(color.FgHiCyan, color.Bold)
	infoLine = color.New(color.FgHiBlue)
	warnLine = color.New(color.FgYellow)
)

func main() {
	variantName := flag.String("variant", "", "classic, coin_toss or dice (default from config)")
	seed := flag.Int64("seed", 0, "seed for dice and coin draws; 0 seeds from the clock")
	fen := flag.String("fen", "", "start from this FEN position")
	bot := flag.Bool("bot", false, "let the bot play Black")
	saveCfg := flag.Bool("save-config", false, "write -variant and -seed to the user config file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		warnLine.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
		def := config.DefaultConfig
		cfg = &def
	}
	if *variantName == "" {
		*variantName = cfg.DefaultVariant
	}
	variant, ok := game.ParseVariant(*variantName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown variant %q\n", *variantName)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = cfg.RNGSeed
	}
	if *saveCfg {
		if err := saveSettings(cfg, variant, *seed); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		infoLine.Println("Settings saved.")
		return
	}

	opts := []game.Option{}
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	}
	var e *game.Engine
	if *fen == "" {
		e = game.NewEngine(variant, opts...)
	} else if e, err = game.NewEngineFromFEN(variant, *fen, opts...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	reader := bufio.NewReader(os.Stdin)
	infoLine.Printf("%s chess. Type help for commands.\n", variant)
	for {
		s := e.State()
		printBoard(s)
		if s.IsCheckmate != nil {
			color.New(color.FgHiRed, color.Bold).Printf("\nCheckmate, %s wins.\n", s.IsCheckmate.Opposite())
			if !prompt(reader, "reset? [y/N] ", "y") {
				return
			}
			e.ResetGame()
			continue
		}
		printStatus(s)

		if *bot && botActs(s) && playBot(e, cfg.Weights) {
			continue
		}

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		if quit := run(e, strings.Fields(line)); quit {
			return
		}
	}
}

// saveSettings stores the chosen variant and seed as the new defaults.
func saveSettings(cfg *config.Config, variant game.GameVariant, seed int64) error {
	next := *cfg
	next.DefaultVariant = variant.String()
	next.RNGSeed = seed
	if err := next.Validate(); err != nil {
		return err
	}
	return next.Save()
}

// botActs reports whether the bot owns the next action when it plays Black.
func botActs(s game.Snapshot) bool {
	if s.PendingPromotion != nil {
		return s.LastMove != nil && s.LastMove.Piece.Color == game.Black
	}
	if s.WaitingForDiceRoll || s.WaitingForCoinToss {
		return false
	}
	return s.CurrentTurn == game.Black
}

// playBot makes the bot's move and reports whether it found one.
func playBot(e *game.Engine, w config.Weights) bool {
	s := e.State()
	if s.PendingPromotion != nil {
		e.PromotePawn(*s.PendingPromotion)
		infoLine.Println("Bot promotes to a queen.")
		return true
	}
	mv, err := e.BestMove(w)
	if err != nil {
		warnLine.Println("Bot has no move:", err)
		return false
	}
	e.MovePiece(mv.From, mv.To)
	infoLine.Printf("Bot plays %s%s.\n", mv.From, mv.To)
	if p := e.State().PendingPromotion; p != nil {
		e.PromotePawn(*p)
	}
	return true
}

func run(e *game.Engine, args []string) (quit bool) {
	if len(args) == 0 {
		return false
	}
	switch cmd := strings.ToLower(args[0]); cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Println("  e2e4 | e2 e4     move a piece")
		fmt.Println("  select e2        show where a piece can go")
		fmt.Println("  roll | toss      dice or coin draw")
		fmt.Println("  promote [q|r|b|n]")
		fmt.Println("  moves | fen | reset | quit")
	case "roll":
		r := e.RollDice()
		if r.Value == 0 {
			warnLine.Println("No roll expected.")
			break
		}
		infoLine.Printf("Rolled %d: %s gets %d move(s).\n", r.Value, r.Player, r.MovesGranted)
	case "toss":
		before := e.State().WaitingForCoinToss
		t := e.TossCoin()
		if !before {
			warnLine.Println("No toss expected.")
			break
		}
		infoLine.Printf("Coin says %s.\n", t.Result)
	case "promote":
		s := e.State()
		if s.PendingPromotion == nil {
			warnLine.Println("Nothing to promote.")
			break
		}
		pt := game.Queen
		if len(args) > 1 {
			var ok bool
			if pt, ok = game.ParsePieceType(args[1]); !ok {
				warnLine.Printf("Unknown piece %q.\n", args[1])
				break
			}
		}
		if !e.PromotePawn(*s.PendingPromotion, pt) {
			warnLine.Println("Cannot promote to", pt)
		}
	case "select":
		if len(args) < 2 {
			e.UnselectPiece()
			break
		}
		p, ok := game.ParsePosition(args[1])
		if !ok {
			warnLine.Printf("Bad square %q.\n", args[1])
			break
		}
		e.SelectPiece(p)
	case "moves":
		var out []string
		for _, m := range e.AllLegalMoves() {
			out = append(out, m.From.String()+m.To.String())
		}
		fmt.Println(strings.Join(out, " "))
	case "fen":
		fmt.Println(e.FEN())
	case "reset":
		e.ResetGame()
	default:
		from, to, ok := parseMove(args)
		if !ok {
			warnLine.Printf("Unknown command %q, try help.\n", cmd)
			break
		}
		if !e.MovePiece(from, to) {
			warnLine.Println("Illegal move.")
		}
	}
	return false
}

func parseMove(args []string) (from, to game.Position, ok bool) {
	s := strings.Join(args, "")
	if len(s) != 4 {
		return from, to, false
	}
	from, okFrom := game.ParsePosition(s[:2])
	to, okTo := game.ParsePosition(s[2:])
	return from, to, okFrom && okTo
}

func printStatus(s game.Snapshot) {
	switch {
	case s.PendingPromotion != nil:
		warnLine.Printf("Pawn on %s awaits promotion.\n", s.PendingPromotion)
	case s.WaitingForDiceRoll:
		infoLine.Println("Roll the die.")
	case s.WaitingForCoinToss:
		infoLine.Println("Toss the coin.")
	default:
		msg := fmt.Sprintf("%s to move", s.CurrentTurn)
		if s.GameType == game.Dice {
			msg += fmt.Sprintf(" (%d left)", s.RemainingMoves)
		}
		infoLine.Println(msg + ".")
	}
	if s.IsInCheck != nil {
		color.New(color.FgRed).Printf("%s is in check.\n", s.IsInCheck)
	}
}

func printBoard(s game.Snapshot) {
	marked := map[game.Position]*color.Color{}
	for _, p := range s.ValidMoves {
		marked[p] = markSq
	}
	for _, p := range s.BlockedMoves {
		marked[p] = blockSq
	}
	if s.SelectedPiece != nil {
		marked[*s.SelectedPiece] = markSq
	}

	fmt.Println()
	for row := 0; row < 8; row++ {
		fmt.Printf("%d ", 8-row)
		for col := 0; col < 8; col++ {
			p := game.Pos(row, col)
			bg := lightSq
			if (row+col)%2 == 1 {
				bg = darkSq
			}
			if m, ok := marked[p]; ok {
				bg = m
			}
			cell := " . "
			fg := whiteFg
			if pc, ok := s.Board.At(p); ok {
				cell = " " + pc.String() + " "
				if pc.Color == game.Black {
					fg = blackFg
				}
			}
			bg.Print(fg.Sprint(cell))
		}
		fmt.Println()
	}
	fmt.Println("   a  b  c  d  e  f  g  h")
}

func prompt(r *bufio.Reader, q, yes string) bool {
	fmt.Print(q)
	line, err := r.ReadString('\n')
	return err == nil && strings.EqualFold(strings.TrimSpace(line), yes)
}
