// Command spectate joins a table server without a window and logs what the
// sync loop sees. It can record the inbound stream to a journal and replay
// one offline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/automoto/airhockey-mp/assets"
	"github.com/automoto/airhockey-mp/config"
	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/network/journal"
	"github.com/automoto/airhockey-mp/shared/statevec"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type options struct {
	addr     string
	tickRate int
	render   time.Duration
	record   string
	replay   string
	table    string
	logEvery int
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var opts options
	flag.StringVar(&opts.addr, "addr", getEnv("AIRHOCKEY_ADDR", config.Net.Address), "Table server address (host:port)")
	flag.IntVar(&opts.tickRate, "tick", getEnvInt("AIRHOCKEY_TICK_RATE", 60), "Fixed physics ticks per second")
	flag.DurationVar(&opts.render, "render", config.Net.Loop.RenderInterval, "Render tick interval")
	flag.StringVar(&opts.record, "record", "", "Write inbound events to this journal file")
	flag.StringVar(&opts.replay, "replay", "", "Replay a journal file instead of connecting")
	flag.StringVar(&opts.table, "table", getEnv("AIRHOCKEY_TABLE", config.Table.Name), "Embedded table name")
	flag.IntVar(&opts.logEvery, "log-every", 30, "Log positions every N render ticks (0 disables)")
	flag.Parse()

	sessionID := uuid.NewString()
	log.SetPrefix("[" + sessionID[:8] + "] ")

	if opts.tickRate <= 0 {
		log.Fatalf("tick rate must be positive, got %d", opts.tickRate)
	}

	table, err := assets.LoadTable(opts.table)
	if err != nil {
		log.Printf("[spectate] %v, using built-in table", err)
		table = config.Table.Fallback
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.replay != "" {
		err = replay(ctx, opts, table)
	} else {
		err = spectate(ctx, opts, table, sessionID)
	}
	if err != nil {
		log.Fatalf("[spectate] %v", err)
	}
}

func loopConfig(opts options) network.LoopConfig {
	cfg := config.Net.Loop
	cfg.FixedDt = 1 / float64(opts.tickRate)
	cfg.RenderInterval = opts.render
	return cfg
}

func spectate(ctx context.Context, opts options, table tablephysics.Table, sessionID string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	collab := network.Collaborators{
		Renderer: &logRenderer{every: opts.logEvery},
		Views:    roleLogger{},
		Notifier: inactivityExit{cancel: cancel},
	}

	if opts.record != "" {
		f, err := os.Create(opts.record)
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer f.Close()

		w, err := journal.NewWriter(f, journal.Header{
			Session:   sessionID,
			Table:     opts.table,
			StartedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		collab.Recorder = w
		defer func() { log.Printf("[spectate] recorded %d frames to %s", w.Frames(), opts.record) }()
	}

	world := tablephysics.NewWorld(table, config.Physics)
	loop := network.NewSyncLoop(world, network.NewSession(), loopConfig(opts), collab)

	client := network.NewClient()
	sub := client.Subscribe(loop.Deliver)
	defer sub.Release()
	client.Connect(opts.addr)
	defer client.Disconnect()

	go watchClient(ctx, client, cancel)

	if err := loop.Run(ctx); err != nil {
		return err
	}
	logStats(loop.Stats())
	return client.LastError()
}

// watchClient stops the loop once the connection is gone.
func watchClient(ctx context.Context, client *network.Client, cancel context.CancelFunc) {
	t := time.NewTicker(250 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			switch client.State() {
			case network.StateDisconnected, network.StateError:
				log.Printf("[spectate] client %s", client.State())
				cancel()
				return
			}
		}
	}
}

// replay feeds a journal through a fresh loop as fast as it can.
func replay(ctx context.Context, opts options, table tablephysics.Table) error {
	f, err := os.Open(opts.replay)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	r, err := journal.NewReader(f)
	if err != nil {
		return err
	}
	h := r.Header()
	log.Printf("[replay] session=%s table=%s started=%s", h.Session, h.Table, h.StartedAt.Format(time.RFC3339))

	cfg := loopConfig(opts)
	world := tablephysics.NewWorld(table, config.Physics)
	loop := network.NewSyncLoop(world, network.NewSession(), cfg, network.Collaborators{
		Renderer: &logRenderer{every: opts.logEvery},
		Views:    roleLogger{},
	})
	rep := journal.NewReplayer(r)

	// Render once per this many fixed ticks to mirror live pacing.
	perRender := max(1, int(cfg.RenderInterval.Seconds()/cfg.FixedDt))
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		done, err := rep.Pump(loop.Tick(), loop.Deliver)
		if err != nil {
			return err
		}
		loop.FixedTick()
		if int(loop.Tick())%perRender == 0 {
			loop.RenderTick()
		}
		if done {
			break
		}
	}

	if n := rep.Skipped(); n > 0 {
		log.Printf("[replay] skipped %d unknown frames", n)
	}
	logStats(loop.Stats())
	return nil
}

type logRenderer struct {
	every  int
	frames int
}

func (r *logRenderer) Render(pos statevec.Positions) {
	r.frames++
	if r.every <= 0 || r.frames%r.every != 0 {
		return
	}
	log.Printf("[render] puck=(%.3f, %.3f) p1=(%.3f, %.3f) p2=(%.3f, %.3f)",
		pos.Puck.X, pos.Puck.Y, pos.P1.X, pos.P1.Y, pos.P2.X, pos.P2.Y)
}

type roleLogger struct{}

func (roleLogger) SwitchView(role network.Role) {
	log.Printf("[spectate] assigned %s", role)
}

type inactivityExit struct {
	cancel context.CancelFunc
}

func (n inactivityExit) SessionInactive() {
	log.Println("[spectate] session dropped for inactivity")
	n.cancel()
}

func logStats(s network.Stats) {
	log.Printf("[stats] ticks=%d applied=%d malformed=%d dropped=%d failures=%d lag=%d",
		s.Ticks, s.Applied, s.Malformed, s.DroppedUpdates, s.TickFailures, s.LagTicks)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}
