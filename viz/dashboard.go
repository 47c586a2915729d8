// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: ASCII overview of the outreach pipeline, tasks and stale contacts
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outreach/models"
)

// StaleAfter is how long a contact can go untouched before it needs attention.
const StaleAfter = 30 * 24 * time.Hour

type DashboardStats struct {
	ByStatus map[string]int

	TotalContacts int
	TotalProjects int
	OpenTasks     int
	OverdueTasks  int

	// Contacts never contacted or not contacted within StaleAfter.
	StaleContacts []StaleContact

	// Follow-ups due today or earlier.
	DueFollowups int
}

type StaleContact struct {
	Name      string
	DaysSince int // -1 when never contacted
}

func GenerateDashboardStats(state *models.State, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		ByStatus:      make(map[string]int),
		TotalContacts: len(state.Contacts),
		TotalProjects: len(state.Projects),
	}

	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	for _, c := range state.Contacts {
		stats.ByStatus[models.NormalizeStatus(c.Status)]++

		if c.FollowUpDate != nil && !c.FollowUpDate.After(endOfDay) {
			stats.DueFollowups++
		}

		switch {
		case c.LastContact == nil:
			stats.StaleContacts = append(stats.StaleContacts, StaleContact{Name: c.VendorName, DaysSince: -1})
		case now.Sub(*c.LastContact) > StaleAfter:
			stats.StaleContacts = append(stats.StaleContacts, StaleContact{
				Name:      c.VendorName,
				DaysSince: int(now.Sub(*c.LastContact).Hours() / 24),
			})
		}
	}

	for _, t := range state.Tasks {
		if t.Status != models.TaskStatusOpen {
			continue
		}
		stats.OpenTasks++
		if t.IsOverdue(now) {
			stats.OverdueTasks++
		}
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  OUTREACH DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE\n")
	renderPipeline(&out, stats.ByStatus)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  📁 %d projects  ✅ %d open tasks\n\n",
		stats.TotalContacts, stats.TotalProjects, stats.OpenTasks))

	if len(stats.StaleContacts) > 0 || stats.OverdueTasks > 0 || stats.DueFollowups > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		if stats.DueFollowups > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d follow-ups due\n", stats.DueFollowups))
		}
		if stats.OverdueTasks > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d tasks overdue\n", stats.OverdueTasks))
		}
		if len(stats.StaleContacts) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d contacts - no contact in 30+ days\n", len(stats.StaleContacts)))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, byStatus map[string]int) {
	maxCount := 0
	for _, n := range byStatus {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, status := range models.ContactStatuses {
		count := byStatus[status]
		barLength := (count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-12s %s  %2d\n", status, bar, count))
	}
}
