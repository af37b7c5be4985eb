// Command simulate runs the rooting engine over the deterministic
// mid-tournament snapshot and prints the output as JSON, for eyeballing
// narration and sort order without a running server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/okian/podium/internal/adapters/catalog"
	"github.com/okian/podium/internal/adapters/results"
	app "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/sim"
	"github.com/okian/podium/pkg/logger"
)

func main() {
	seed := flag.Int64("seed", 42, "prediction assignment seed")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx := context.Background()
	snap := sim.NewSnapshot(sim.WithSeed(*seed))

	svc := app.New(
		app.WithCatalog(catalog.NewMemoryStore(snap.Events, catalog.WithPropositions(snap.Propositions...))),
		app.WithSource(results.NewStaticSource(snap.Completed, snap.Official)),
	)

	out := map[string]any{}
	for _, set := range snap.Sets {
		infos, err := svc.Rooting(ctx, set, snap.Now)
		if err != nil {
			os.Stderr.WriteString("rooting failed for " + set.Owner + ": " + err.Error() + "\n")
			os.Exit(1)
		}
		out[set.Owner] = infos
	}

	scores, err := svc.Scores(ctx, snap.Sets)
	if err != nil {
		os.Stderr.WriteString("scoring failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	out["scores"] = scores

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		os.Stderr.WriteString("encode failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
