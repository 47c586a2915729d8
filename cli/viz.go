// ABOUTME: Visualization CLI commands
// ABOUTME: Pipeline graph output and the terminal dashboard
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/viz"
)

// VizPipelineCommand renders the project/status pipeline graph.
func VizPipelineCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("viz pipeline", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	format := fs.String("format", "dot", "dot, svg or png")
	_ = fs.Parse(args)

	f, err := viz.ParseFormat(*format)
	if err != nil {
		return err
	}

	generator := viz.NewGraphGenerator(s.Contacts(), s.Projects())
	data, err := generator.GeneratePipelineGraph(ctx, f)
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, data, 0644)
	}

	_, err = stdout.Write(data)
	return err
}

// VizDashboardCommand prints the terminal dashboard.
func VizDashboardCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("viz dashboard", flag.ExitOnError)
	_ = fs.Parse(args)

	state := s.Snapshot()
	fmt.Fprint(stdout, viz.RenderDashboard(viz.GenerateDashboardStats(&state, time.Now())))
	return nil
}
