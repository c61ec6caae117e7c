package main

import (
	"fmt"
	"log"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/memxbar/datarecording"
	"github.com/sarchlab/memxbar/mem/acceptancetests/memaccessagent"
	"github.com/sarchlab/memxbar/mem/hierarchy"
	"github.com/sarchlab/memxbar/monitoring"
	"github.com/sarchlab/memxbar/sim"
	"github.com/sarchlab/memxbar/tracing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a random trace through a hierarchy.",
	Long: "`run --config f.env --top L2XBar --num-reqs 1000 --seed 1` " +
		"issues reads and writes to random addresses and prints the " +
		"crossbar statistics. The same seed always gives the same results.",
	Run: func(cmd *cobra.Command, _ []string) {
		runTrace(cmd)
	},
}

func init() {
	runCmd.Flags().Int("num-reqs", 1000, "Number of requests to issue.")
	runCmd.Flags().Int64("seed", 1, "Seed of the random addresses.")
	runCmd.Flags().Uint64("max-address", 1<<20, "Addresses are below this.")
	runCmd.Flags().Int("max-pending", 16, "Requests in flight, 0 for no limit.")
	runCmd.Flags().String("db", "",
		"Record routing decisions and statistics into <db>.sqlite3.")
	runCmd.Flags().Bool("trace-routes", false, "Print every routing decision.")
	runCmd.Flags().Bool("log-events", false, "Print every simulation event.")
	runCmd.Flags().Bool("monitor", false, "Start the monitoring server.")
	runCmd.Flags().Int("monitor-port", 0, "Port of the monitoring server.")
	runCmd.Flags().Bool("open-browser", false,
		"Open the monitoring server in a browser.")

	rootCmd.AddCommand(runCmd)
}

type tracers struct {
	recorder datarecording.DataRecorder
	routes   *tracing.DBRouteTracer
	stats    *tracing.StatsDumper
	logger   *tracing.RouteLogger
}

func setupTracers(cmd *cobra.Command) tracers {
	t := tracers{}

	if cmd.Flags().Changed("db") {
		path, _ := cmd.Flags().GetString("db")
		t.recorder = datarecording.New(path)
		t.routes = tracing.NewDBRouteTracer(t.recorder)
		t.stats = tracing.NewStatsDumper(t.recorder)
	}

	if on, _ := cmd.Flags().GetBool("trace-routes"); on {
		t.logger = tracing.NewRouteLogger(nil)
	}

	return t
}

func (t tracers) attach(h *hierarchy.Hierarchy, engine sim.Engine) {
	for _, x := range h.Crossbars() {
		if t.routes != nil {
			tracing.CollectRoutes(x, t.routes)
			t.stats.Add(x)
		}

		if t.logger != nil {
			tracing.CollectRoutes(x, t.logger)
		}
	}

	if t.stats != nil {
		engine.RegisterSimulationEndHandler(t.stats)
	}
}

func checkTraceArgs(numReqs int, maxAddr uint64) error {
	if numReqs < 0 {
		return fmt.Errorf("num-reqs must not be negative, got %d", numReqs)
	}

	if maxAddr < 4 {
		return fmt.Errorf("max-address must be at least 4, got %d", maxAddr)
	}

	return nil
}

func runTrace(cmd *cobra.Command) {
	numReqs, _ := cmd.Flags().GetInt("num-reqs")
	seed, _ := cmd.Flags().GetInt64("seed")
	maxAddr, _ := cmd.Flags().GetUint64("max-address")
	maxPending, _ := cmd.Flags().GetInt("max-pending")

	dieOnErr(checkTraceArgs(numReqs, maxAddr))

	engine := sim.NewSerialEngine()
	if on, _ := cmd.Flags().GetBool("log-events"); on {
		engine.AcceptHook(sim.NewEventLogger(log.Default()))
	}

	h, _ := buildHierarchy(cmd, engine)

	t := setupTracers(cmd)
	t.attach(h, engine)

	agent := memaccessagent.MakeBuilder().
		WithEngine(engine).
		WithSeed(seed).
		WithMaxAddress(maxAddr).
		WithMaxPending(maxPending).
		WithReadLeft(numReqs / 2).
		WithWriteLeft(numReqs - numReqs/2).
		WithLowModule(h.Top()).
		Build("Agent")

	var m *monitoring.Monitor
	var bar *monitoring.ProgressBar
	if on, _ := cmd.Flags().GetBool("monitor"); on {
		m, bar = startMonitor(cmd, h, engine, agent, uint64(numReqs))
	}

	agent.Start()
	dieOnErr(engine.Run())
	engine.Finished()

	if m != nil {
		m.CompleteProgressBar(bar)
	}

	if t.recorder != nil {
		dieOnErr(t.recorder.Close())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "completed %d requests in %.10f s, %d retries\n",
		agent.Completed, engine.CurrentTime(), agent.Retried)

	for _, x := range h.Crossbars() {
		fmt.Fprintf(out, "%s: readHit %d, writeHit %d\n",
			x.Name(), x.ReadHit(), x.WriteHit())
	}
}

func startMonitor(
	cmd *cobra.Command,
	h *hierarchy.Hierarchy,
	engine sim.Engine,
	agent *memaccessagent.MemAccessAgent,
	total uint64,
) (*monitoring.Monitor, *monitoring.ProgressBar) {
	port, _ := cmd.Flags().GetInt("monitor-port")

	m := monitoring.NewMonitor().WithPortNumber(port)
	m.RegisterEngine(engine)

	for _, obj := range h.Registry().Objects() {
		m.RegisterComponent(obj)
	}

	bar := m.CreateProgressBar("Requests", total)
	reported := uint64(0)
	engine.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos != sim.HookPosAfterEvent || agent.Completed == reported {
			return
		}

		bar.IncrementInProgress(agent.Completed - reported)
		bar.MoveInProgressToFinished(agent.Completed - reported)
		reported = agent.Completed
	}))

	url := m.StartServer()

	if open, _ := cmd.Flags().GetBool("open-browser"); open {
		dieOnErr(browser.OpenURL(url))
	}

	return m, bar
}
