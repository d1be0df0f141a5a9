package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	timeColumnWidth = 13
	cellWidth       = 24
)

type RenderOptions struct {
	// Topics resolves topic ids to their content. Unknown topics are shown
	// by id.
	Topics   map[domain.TopicID]domain.Topic
	Location *time.Location
	ShowIDs  bool
}

func renderView(event domain.GridEvent, opts RenderOptions, s styles) string {
	grid := event.Content
	lines := []string{
		s.title.Render("Session Grid"),
		s.header.Render(fmt.Sprintf("tracks: %d  time slots: %d  sessions: %d  parked: %d",
			len(grid.Tracks), len(grid.TimeSlots), len(grid.Sessions), len(grid.ParkingLot))),
	}
	if event.Sender != "" {
		lines = append(lines, s.header.Render("last change by "+event.Sender))
	}

	lines = append(lines, s.section.Render(renderTable(grid, opts, s)))
	lines = append(lines, s.section.Render(renderParkingLot(grid, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTable(grid domain.SessionGrid, opts RenderOptions, s styles) string {
	if len(grid.TimeSlots) == 0 {
		return s.empty.Render("No time slots.")
	}

	header := []string{pad("", timeColumnWidth)}
	for _, track := range grid.Tracks {
		label := track.Name
		if opts.ShowIDs {
			label += " " + string(track.ID)
		}
		header = append(header, s.track.Render(pad(label, cellWidth)))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for _, slot := range grid.TimeSlots {
		rows = append(rows, renderSlotRow(grid, slot, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSlotRow(grid domain.SessionGrid, slot domain.TimeSlot, opts RenderOptions, s styles) string {
	cells := []string{s.slotTime.Render(pad(timeRange(slot, opts.Location), timeColumnWidth))}

	if event, ok := slot.CommonEvent(); ok {
		text := event.Summary
		if event.Icon != "" {
			text = fmt.Sprintf("%s (%s)", text, event.Icon)
		}
		cells = append(cells, s.commonEvent.Render(pad(text, cellWidth*max(len(grid.Tracks), 1))))
	} else {
		for _, track := range grid.Tracks {
			session, ok := grid.SessionAt(track.ID, slot.ID)
			if !ok {
				cells = append(cells, s.emptyCell.Render(pad("-", cellWidth)))
				continue
			}
			cells = append(cells, pad(topicLabel(session.TopicID, opts, s, cellWidth-1), cellWidth))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if opts.ShowIDs {
		row += " " + s.id.Render(string(slot.ID))
	}
	return row
}

func renderParkingLot(grid domain.SessionGrid, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Parking lot")}
	if len(grid.ParkingLot) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No parked topics."))...)
	}

	for i, entry := range grid.ParkingLot {
		lines = append(lines, fmt.Sprintf("%2d. %s", i, topicLabel(entry.TopicID, opts, s, 0)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// topicLabel truncates the title to width cells unless width is 0. Ids are
// only appended to untruncated labels.
func topicLabel(id domain.TopicID, opts RenderOptions, s styles, width int) string {
	topic, ok := opts.Topics[id]
	title := string(id)
	if ok && topic.Title != "" {
		title = topic.Title
	}
	if width > 0 {
		title = ansi.Truncate(title, width, "…")
	}

	style := s.cell
	if ok && topic.Pinned {
		style = s.pinned
	}

	label := style.Render(title)
	if opts.ShowIDs && width == 0 {
		label += " " + s.id.Render(string(id))
	}
	return label
}

func timeRange(slot domain.TimeSlot, loc *time.Location) string {
	start, end := slot.StartTime, slot.EndTime
	if loc != nil {
		start, end = start.In(loc), end.In(loc)
	}
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

func pad(text string, width int) string {
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}
