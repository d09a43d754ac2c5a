// Command warrensim runs the rabbit colony simulation.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hollowfield/warrensim/internal/api"
	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
	"github.com/hollowfield/warrensim/internal/engine"
	"github.com/hollowfield/warrensim/internal/entropy"
	"github.com/hollowfield/warrensim/internal/leaderboard"
	"github.com/hollowfield/warrensim/internal/persistence"
)

type app struct {
	eng      *engine.Engine
	db       *persistence.DB
	board    *leaderboard.Client
	playerID string

	mu    sync.Mutex
	state engine.ColonyState
}

func main() {
	dbPath := flag.String("db", "data/warrensim.db", "path to the SQLite save database")
	balancePath := flag.String("balance", "", "optional YAML balance override file")
	preset := flag.String("preset", "", "balance preset: casual or hard")
	seed := flag.Uint64("seed", 0, "deterministic RNG seed (0 = system entropy)")
	apiPort := flag.Int("port", 0, "HTTP API port (0 = disabled)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	bal, err := loadBalance(*balancePath, *preset)
	if err != nil {
		slog.Error("failed to load balance", "error", err)
		os.Exit(1)
	}

	var rng entropy.Source
	if *seed != 0 {
		rng = entropy.NewSeeded(*seed)
		slog.Info("deterministic entropy", "seed", *seed)
	} else {
		rng = entropy.Default()
	}

	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	playerID, err := db.PlayerID()
	if err != nil {
		slog.Error("failed to resolve player id", "error", err)
		os.Exit(1)
	}

	state, found, err := db.LoadState()
	if err != nil {
		slog.Error("failed to load save", "error", err)
		os.Exit(1)
	}
	if found {
		slog.Info("save loaded", "day", state.Day, "rabbits", len(state.Population))
	} else {
		state = engine.NewGame(bal)
		slog.Info("new colony started")
	}

	a := &app{
		eng:      engine.New(bal, rng),
		db:       db,
		board:    leaderboard.New(os.Getenv("LEADERBOARD_URL"), os.Getenv("LEADERBOARD_KEY")),
		playerID: playerID,
		state:    state,
	}
	if a.board.Enabled() {
		slog.Info("leaderboard sync enabled")
	}

	if *apiPort > 0 {
		server := &api.Server{
			State:       a.snapshot,
			Eng:         a.eng,
			DB:          db,
			Leaderboard: a.board,
			Port:        *apiPort,
		}
		server.Start()
	}

	fmt.Println("warrensim — type 'help' for commands")
	a.printStatus()
	a.repl()
}

func loadBalance(path, preset string) (config.Balance, error) {
	if path != "" {
		return config.Load(path)
	}
	switch preset {
	case "casual":
		return config.Casual(), nil
	case "hard":
		return config.Hard(), nil
	case "":
		return config.Default(), nil
	default:
		return config.Balance{}, fmt.Errorf("unknown preset %q", preset)
	}
}

func (a *app) snapshot() engine.ColonyState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Clone()
}

func (a *app) repl() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			printHelp()
		case "status":
			a.printStatus()
		case "advance", "a":
			n := 1
			if len(args) > 0 {
				if v, err := strconv.Atoi(args[0]); err == nil && v > 0 && v <= 365 {
					n = v
				}
			}
			a.advance(n)
		case "shop":
			a.printShop()
		case "price":
			a.printPrice(args)
		case "buy":
			a.buy(args)
		case "sell":
			a.sell()
		case "isolate":
			a.isolate()
		case "cure":
			a.cure(args)
		case "event":
			a.printEvent()
		case "dismiss":
			a.dismiss()
		case "achievements":
			a.printAchievements()
		case "runs":
			a.printRuns()
		case "reset":
			a.reset(args)
		case "quit", "exit", "q":
			a.save()
			fmt.Println("colony saved, goodbye")
			return
		default:
			fmt.Printf("unknown command %q — try 'help'\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  status            show colony overview
  advance [n]       advance n days (default 1)
  shop              list purchasable items with current prices
  price <id> [qty]  quote a price without buying
  buy <id> [qty]    purchase an item
  sell              sell part of the herd (market day only)
  event             show the pending event
  dismiss           dismiss the pending event
  isolate           isolate infected rabbits during an epidemic
  cure <fraction>   cure the epidemic, paying that fraction of coins
  achievements      list unlocked achievements
  runs              show past run history
  reset confirm     abandon the colony and start over
  quit              save and exit
`)
}

func (a *app) printStatus() {
	a.mu.Lock()
	s := a.state
	capacity := a.eng.Capacity(s)
	a.mu.Unlock()

	counts := s.BreedCounts()
	fmt.Printf("day %d | rabbits %d/%d (common %d, rare %d, legendary %d)\n",
		s.Day, len(s.Population), capacity,
		counts[catalog.BreedCommon], counts[catalog.BreedRare], counts[catalog.BreedLegendary])
	fmt.Printf("coins %s | food %s | water %s | houses %d\n",
		humanize.Comma(int64(s.Coins)), humanize.Comma(int64(s.Food)),
		humanize.Comma(int64(s.Water)), s.Houses)
	fmt.Printf("food tier %s | water tier %s | achievements %d\n",
		s.FoodTier, s.WaterTier, len(s.UnlockedAchievements))
	if s.EpidemicActive {
		fmt.Printf("EPIDEMIC: %d infected, %d days left (isolate or cure <fraction>)\n",
			len(s.InfectedIDs), s.EpidemicDaysLeft)
	}
	if s.PendingEvent != nil {
		fmt.Printf("pending event: %s (%s) — 'event' for details\n",
			s.PendingEvent.Name, s.PendingEvent.Rarity)
	}
	if next := a.eng.NextSaleDay(s); next == s.Day {
		fmt.Println("market day: 'sell' is available")
	} else {
		fmt.Printf("next market day: %d\n", next)
	}
}

func (a *app) advance(n int) {
	for i := 0; i < n; i++ {
		a.mu.Lock()
		report := a.eng.AdvanceDay(a.state)
		a.state = report.State
		gameOver := a.state.GameOver()
		a.mu.Unlock()

		fmt.Printf("day %d: earned %s coins", report.State.Day, humanize.Comma(int64(report.CoinsEarned)))
		if report.Births > 0 {
			fmt.Printf(", %d born", report.Births)
		}
		if report.Losses > 0 {
			fmt.Printf(", %d lost", report.Losses)
		}
		fmt.Println()
		if report.Event != nil {
			fmt.Printf("  event: %s — %s\n", report.Event.Name, report.Event.Description)
		}
		if report.BrokenUpgrade != "" {
			fmt.Printf("  upgrade broke: %s (repurchase to repair)\n", report.BrokenUpgrade)
		}
		if report.EpidemicEnded {
			fmt.Println("  the epidemic has run its course")
		}
		if report.NewAchievement != "" {
			fmt.Printf("  achievement unlocked: %s\n", report.NewAchievement)
		}

		if gameOver {
			a.gameOver()
			return
		}
	}
	a.save()
	a.syncLeaderboard()
}

func (a *app) printShop() {
	a.mu.Lock()
	s := a.state
	a.mu.Unlock()

	fmt.Println("id                    price  owned")
	for _, item := range catalog.Items {
		price := a.eng.Price(s, item, 1)
		owned := ""
		for _, id := range s.OwnedUpgrades {
			if id == item.ID {
				owned = "yes"
			}
		}
		for _, id := range s.BrokenUpgrades {
			if id == item.ID {
				owned = "BROKEN"
			}
		}
		fmt.Printf("%-20s %6s  %s\n", item.ID, humanize.Comma(int64(price)), owned)
	}
}

func (a *app) printPrice(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: price <id> [qty]")
		return
	}
	item, ok := catalog.ItemByID(args[0])
	if !ok {
		fmt.Printf("no such item %q\n", args[0])
		return
	}
	qty := 1
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
			qty = v
		}
	}
	a.mu.Lock()
	price := a.eng.Price(a.state, item, qty)
	a.mu.Unlock()
	fmt.Printf("%s x%d: %s coins\n", item.ID, qty, humanize.Comma(int64(price)))
}

func (a *app) buy(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: buy <id> [qty]")
		return
	}
	item, ok := catalog.ItemByID(args[0])
	if !ok {
		fmt.Printf("no such item %q\n", args[0])
		return
	}
	qty := 1
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
			qty = v
		}
	}

	a.mu.Lock()
	next, err := a.eng.Purchase(a.state, item, qty)
	if err == nil {
		a.state = next
	}
	coins := a.state.Coins
	a.mu.Unlock()

	if err != nil {
		fmt.Printf("cannot buy %s: %v\n", item.ID, err)
		return
	}
	fmt.Printf("bought %s x%d, %s coins left\n", item.ID, qty, humanize.Comma(int64(coins)))
	a.save()
}

func (a *app) sell() {
	a.mu.Lock()
	next, sold, err := a.eng.SellPopulation(a.state)
	if err == nil {
		a.state = next
	}
	coins := a.state.Coins
	a.mu.Unlock()

	if err != nil {
		fmt.Printf("cannot sell: %v\n", err)
		return
	}
	fmt.Printf("sold %d rabbits, coins now %s\n", sold, humanize.Comma(int64(coins)))
	a.save()
}

func (a *app) isolate() {
	a.mu.Lock()
	if !a.state.EpidemicActive {
		a.mu.Unlock()
		fmt.Println("no epidemic in progress")
		return
	}
	a.state = a.eng.ChooseIsolate(a.state)
	n := len(a.state.IsolatedIDs)
	a.mu.Unlock()

	fmt.Printf("%d rabbits isolated, the fever must run its course\n", n)
	a.save()
}

func (a *app) cure(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: cure <fraction>   e.g. cure 0.5")
		return
	}
	frac, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Printf("invalid fraction %q\n", args[0])
		return
	}

	a.mu.Lock()
	if !a.state.EpidemicActive {
		a.mu.Unlock()
		fmt.Println("no epidemic in progress")
		return
	}
	before := a.state.Coins
	a.state = a.eng.ChooseCure(a.state, frac)
	spent := before - a.state.Coins
	a.mu.Unlock()

	fmt.Printf("epidemic cured for %s coins\n", humanize.Comma(int64(spent)))
	a.save()
}

func (a *app) printEvent() {
	a.mu.Lock()
	ev := a.state.PendingEvent
	a.mu.Unlock()

	if ev == nil {
		fmt.Println("no pending event")
		return
	}
	fmt.Printf("%s (%s)\n  %s\n", ev.Name, ev.Rarity, ev.Description)
}

func (a *app) dismiss() {
	a.mu.Lock()
	a.state = a.eng.DismissEvent(a.state)
	a.mu.Unlock()
	a.save()
}

func (a *app) printAchievements() {
	a.mu.Lock()
	s := a.state
	a.mu.Unlock()

	if len(s.UnlockedAchievements) == 0 {
		fmt.Println("no achievements yet")
		return
	}
	for _, id := range s.UnlockedAchievements {
		ach, ok := catalog.AchievementByID(id)
		name := id
		if ok {
			name = ach.Name
		}
		fmt.Printf("  day %3d  %s\n", s.AchievementUnlockDay[id], name)
	}
	fmt.Printf("%d of %d unlocked\n", len(s.UnlockedAchievements), len(catalog.Achievements))
}

func (a *app) printRuns() {
	runs, err := a.db.ListRuns(10)
	if err != nil {
		slog.Error("run history query failed", "error", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("no finished runs yet")
		return
	}
	for _, r := range runs {
		fmt.Printf("  %s  day %d, %d rabbits, %s coins earned, %d achievements\n",
			r.EndedAt.Format("2006-01-02"), r.Day, r.Rabbits,
			humanize.Comma(int64(r.TotalCoinsEarned)), len(r.Achievements))
	}
}

func (a *app) reset(args []string) {
	if len(args) == 0 || args[0] != "confirm" {
		fmt.Println("this abandons the current colony — type 'reset confirm' to proceed")
		return
	}
	a.mu.Lock()
	record := a.state.FinishRun(time.Now())
	a.state = engine.NewGame(a.eng.Balance())
	a.mu.Unlock()

	if err := a.db.SaveRun(record); err != nil {
		slog.Error("failed to record run", "error", err)
	}
	a.save()
	fmt.Println("colony reset, a fresh warren awaits")
}

// gameOver records the finished run and starts a fresh colony. The player
// identity and run history survive.
func (a *app) gameOver() {
	a.mu.Lock()
	record := a.state.FinishRun(time.Now())
	a.state = engine.NewGame(a.eng.Balance())
	a.mu.Unlock()

	fmt.Printf("\nall rabbits are gone — the colony ends on day %d\n", record.Day)
	fmt.Printf("final tally: %s coins earned, %d achievements\n",
		humanize.Comma(int64(record.TotalCoinsEarned)), len(record.Achievements))
	fmt.Println("a fresh warren awaits")

	if err := a.db.SaveRun(record); err != nil {
		slog.Error("failed to record run", "error", err)
	}
	a.save()

	if a.board.Enabled() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			sub := leaderboard.RunSubmission{
				PlayerID:         a.playerID,
				Day:              record.Day,
				Rabbits:          record.Rabbits,
				Houses:           record.Houses,
				TotalCoinsEarned: record.TotalCoinsEarned,
				Achievements:     record.Achievements,
				EndedAt:          record.EndedAt.UTC().Format(time.RFC3339),
			}
			if err := a.board.SubmitRun(ctx, sub); err != nil {
				slog.Warn("run submission failed", "error", err)
			}
		}()
	}
}

func (a *app) save() {
	a.mu.Lock()
	s := a.state.Clone()
	a.mu.Unlock()
	if err := a.db.SaveState(s); err != nil {
		slog.Error("save failed", "error", err)
	}
}

// syncLeaderboard pushes progress in the background. Failures are logged
// and otherwise ignored.
func (a *app) syncLeaderboard() {
	if !a.board.Enabled() {
		return
	}
	a.mu.Lock()
	s := a.state.Clone()
	capacity := a.eng.Capacity(s)
	a.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		p := leaderboard.ProgressFrom(a.playerID, s, capacity)
		if err := a.board.SyncProgress(ctx, p); err != nil {
			slog.Warn("leaderboard sync failed", "error", err)
		}
	}()
}
