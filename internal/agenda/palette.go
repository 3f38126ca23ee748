package agenda

// Calendar event palette, indexed by job id modulo its size. Hash-free
// so a job keeps its color across fetches and sessions.
var eventPalette = []string{
	"#4f46e5", "#059669", "#db2777", "#d97706", "#0891b2", "#6d28d9", "#be185d",
}

// Fallback for events whose job link did not resolve.
const defaultEventColor = "#3182ce"

// Sidebar rows cycle their own palette by list position, not by job.
var sidebarPalette = []string{
	"bg-indigo-500", "bg-green-500", "bg-pink-500", "bg-yellow-500", "bg-purple-500",
}

// ColorForJob returns the stable color for a job posting.
func ColorForJob(jobID int) string {
	return eventPalette[jobID%len(eventPalette)]
}

func eventColor(e Event) string {
	if id := e.jobID(); id != 0 {
		return ColorForJob(id)
	}
	return defaultEventColor
}

// JobColors maps every job appearing in events to its color, first seen
// first assigned.
func JobColors(events []Event) map[int]string {
	colors := make(map[int]string)
	for _, e := range events {
		id := e.jobID()
		if id == 0 {
			continue
		}
		if _, ok := colors[id]; !ok {
			colors[id] = ColorForJob(id)
		}
	}
	return colors
}
