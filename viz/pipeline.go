// ABOUTME: Pipeline graph generation with graphviz
// ABOUTME: Project nodes fan out to status nodes labelled with contact counts
package viz

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/outreach/models"
)

// NoProject labels contacts that belong to no project.
const NoProject = "(no project)"

// ProjectPipeline counts a project's contacts per status.
type ProjectPipeline struct {
	Project string
	Counts  map[string]int
	Total   int
}

// Pipelines groups contacts by project. Known projects come first in store
// order, then names only contacts mention, then contacts without a project.
func Pipelines(contacts []models.Contact, projects []models.Project) []ProjectPipeline {
	index := make(map[string]int)
	var out []ProjectPipeline

	add := func(name string) int {
		key := strings.ToLower(strings.TrimSpace(name))
		if i, ok := index[key]; ok {
			return i
		}
		index[key] = len(out)
		out = append(out, ProjectPipeline{Project: name, Counts: make(map[string]int)})
		return len(out) - 1
	}

	for _, p := range projects {
		add(p.Name)
	}

	var extra []string
	for _, c := range contacts {
		if strings.TrimSpace(c.Project) == "" {
			continue
		}
		if _, ok := index[strings.ToLower(strings.TrimSpace(c.Project))]; !ok {
			extra = append(extra, c.Project)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		add(name)
	}

	for _, c := range contacts {
		name := c.Project
		if strings.TrimSpace(name) == "" {
			name = NoProject
		}
		i := add(name)
		out[i].Counts[models.NormalizeStatus(c.Status)]++
		out[i].Total++
	}
	return out
}

// GraphGenerator renders pipeline graphs for a set of contacts.
type GraphGenerator struct {
	contacts []models.Contact
	projects []models.Project
}

func NewGraphGenerator(contacts []models.Contact, projects []models.Project) *GraphGenerator {
	return &GraphGenerator{contacts: contacts, projects: projects}
}

// GeneratePipelineGraph renders project → status edges in the given format
// (graphviz.XDOT for DOT text, graphviz.SVG, graphviz.PNG).
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Outreach Pipeline")
	graph.SetRankDir(cgraph.LRRank)

	for pi, p := range Pipelines(g.contacts, g.projects) {
		projectNode, err := graph.CreateNodeByName(fmt.Sprintf("project_%d", pi))
		if err != nil {
			return nil, fmt.Errorf("failed to create project node: %w", err)
		}
		projectNode.SetLabel(fmt.Sprintf("%s\n%d contacts", p.Project, p.Total))
		projectNode.SetShape("box")
		projectNode.SetStyle("filled")
		projectNode.SetFillColor("lightblue")

		for si, status := range models.ContactStatuses {
			count := p.Counts[status]
			if count == 0 {
				continue
			}
			statusNode, err := graph.CreateNodeByName(fmt.Sprintf("project_%d_status_%d", pi, si))
			if err != nil {
				return nil, fmt.Errorf("failed to create status node: %w", err)
			}
			statusNode.SetLabel(fmt.Sprintf("%s: %d", status, count))
			statusNode.SetShape("ellipse")
			statusNode.SetStyle("filled")
			statusNode.SetFillColor(statusColors[status])

			edge, err := graph.CreateEdgeByName(status, projectNode, statusNode)
			if err != nil {
				return nil, fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel(fmt.Sprintf("%d", count))
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, format, &buf); err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.Bytes(), nil
}

var statusColors = map[string]string{
	models.StatusNotStarted: "lightgray",
	models.StatusInProgress: "lightyellow",
	models.StatusResponded:  "lightsalmon",
	models.StatusSignedUp:   "lightgreen",
}

// ParseFormat maps a CLI format name to a graphviz format.
func ParseFormat(name string) (graphviz.Format, error) {
	switch strings.ToLower(name) {
	case "", "dot":
		return graphviz.XDOT, nil
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	}
	return "", fmt.Errorf("unknown format %q (want dot, svg or png)", name)
}
