package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/HabbuBB/mini-yahtzee-go/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	clrHeld   = lipgloss.Color("#4682b4") // steelblue
	clrLocked = lipgloss.Color("#8b949e")
	clrStatus = lipgloss.Color("#e3b341")
	clrBonus  = lipgloss.Color("#3fb950")
	clrTitle  = lipgloss.Color("#58a6ff")
)

type boardStyles struct {
	die      lipgloss.Style
	heldDie  lipgloss.Style
	category lipgloss.Style
	selected lipgloss.Style
	locked   lipgloss.Style
	status   lipgloss.Style
	button   lipgloss.Style
	bonus    lipgloss.Style
	title    lipgloss.Style
}

// newBoardStyles binds the board styles to r so colours follow the
// capabilities of the output the board is written to.
func newBoardStyles(r *lipgloss.Renderer) boardStyles {
	return boardStyles{
		die:      r.NewStyle(),
		heldDie:  r.NewStyle().Foreground(clrHeld).Bold(true),
		category: r.NewStyle(),
		selected: r.NewStyle().Foreground(clrHeld).Bold(true),
		locked:   r.NewStyle().Foreground(clrLocked),
		status:   r.NewStyle().Foreground(clrStatus),
		button:   r.NewStyle().Bold(true),
		bonus:    r.NewStyle().Foreground(clrBonus).Bold(true),
		title:    r.NewStyle().Foreground(clrTitle).Bold(true),
	}
}

// Render writes the board for the snapshot. Held dice and selected
// categories are bracketed and coloured, locked categories are dimmed and
// marked with angles, so the state stays readable without colour.
func Render(w io.Writer, s game.Snapshot) error {
	st := newBoardStyles(lipgloss.NewRenderer(w))
	_, err := io.WriteString(w, board(st, s))
	return err
}

// RenderReplay writes a recorded snapshot under a header naming its position.
func RenderReplay(w io.Writer, s game.Snapshot, position, size int) error {
	st := newBoardStyles(lipgloss.NewRenderer(w))
	header := st.title.Render(fmt.Sprintf("Replay %d/%d", position+1, size))
	_, err := io.WriteString(w, header+"\n"+board(st, s))
	return err
}

func board(st boardStyles, s game.Snapshot) string {
	dice := make([]string, 0, len(s.Faces))
	for i, face := range s.Faces {
		label := "-"
		if face != 0 {
			label = fmt.Sprintf("%d", face)
		}
		if s.Held[i] {
			dice = append(dice, st.heldDie.Render("["+label+"]"))
		} else {
			dice = append(dice, st.die.Render(" "+label+" "))
		}
	}

	cells := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		cell := fmt.Sprintf("%d:%d", c.Face, c.Score)
		switch {
		case c.Locked:
			cell = st.locked.Render("<" + cell + ">")
		case c.Selected:
			cell = st.selected.Render("[" + cell + "]")
		default:
			cell = st.category.Render(" " + cell + " ")
		}
		cells = append(cells, " "+cell)
	}

	bonus := s.BonusMessage
	if s.BonusRemaining < 0 {
		bonus = st.bonus.Render(bonus)
	}

	lines := []string{
		"Dice:  " + lipgloss.JoinHorizontal(lipgloss.Top, dice...),
		fmt.Sprintf("Round %d | Throws left: %d", s.Round, s.ThrowsLeft),
		st.status.Render(s.Status),
		st.button.Render("( " + s.ActionLabel + " )"),
		fmt.Sprintf("Total: %d", s.TotalScore),
		bonus,
		"Points:" + lipgloss.JoinHorizontal(lipgloss.Top, cells...),
	}
	return strings.Join(lines, "\n") + "\n"
}
