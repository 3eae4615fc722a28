package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpText = `- Encrypt or decrypt with any integer key (negative keys shift backward).
- Long text: press tab at the text prompt to read from a file, or pipe it:
  cat message.txt | caesar brute
- Brute-force tries keys 1..25 and ranks them by common words and letter frequency.
- After a result is shown you can copy it to the clipboard or save it to a file.`

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.renderBanner()}
	switch m.screen {
	case screenMenu:
		sections = append(sections, m.panel("MAIN MENU", m.renderMenu()))
	case screenText:
		sections = append(sections,
			m.panel(m.flowTitle(), m.flowDescription()),
			m.input.View(),
			hintStyle.Render("tab: toggle file input  enter: submit  esc: menu"),
		)
	case screenKey:
		sections = append(sections,
			m.panel(m.flowTitle(), m.flowDescription()),
			m.input.View(),
			hintStyle.Render("enter: submit  esc: menu"),
		)
	case screenResult:
		sections = append(sections,
			m.panel(m.resultTitle, wrapText(m.result, m.panelWidth()-4)),
			hintStyle.Render("[1/c] copy to clipboard  [2/s] save to file  [enter] back"),
		)
	case screenSave:
		sections = append(sections, m.input.View(), hintStyle.Render("enter: save  esc: cancel"))
	case screenWorking:
		sections = append(sections, fmt.Sprintf("%s Brute-forcing...", m.spinner.View()), hintStyle.Render("esc: cancel"))
	case screenBrute:
		sections = append(sections, m.renderBrute()...)
	case screenHelp:
		sections = append(sections, m.panel("HELP", helpText), hintStyle.Render("Press any key to return to the menu..."))
	}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderBanner() string {
	title := titleStyle.Render("CAESAR CIPHER")
	sub := subtitleStyle.Render("encrypt · decrypt · brute-force")
	block := lipgloss.JoinVertical(lipgloss.Center, title, sub)
	return lipgloss.PlaceHorizontal(m.panelWidth(), lipgloss.Center, block)
}

func (m *Model) renderMenu() string {
	lines := make([]string, 0, len(menuItems))
	for i, item := range menuItems {
		label := fmt.Sprintf("%d) %s", i+1, item)
		if i == m.menuCursor {
			lines = append(lines, menuActiveStyle.Render("> "+label))
		} else {
			lines = append(lines, menuItemStyle.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBrute() []string {
	out := []string{m.panel("BRUTE-FORCE RESULTS (sorted)", m.table.View())}
	if m.showDetail {
		out = append(out, m.panel(m.detailTitle, m.detail.View()))
	}
	return append(out, m.input.View(), hintStyle.Render(m.bruteHint()))
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return okStyle.Render(m.status)
}

func (m *Model) flowTitle() string {
	switch m.flow {
	case flowEncrypt:
		return "ENCRYPT"
	case flowDecrypt:
		return "DECRYPT"
	default:
		return "BRUTE-FORCE"
	}
}

func (m *Model) flowDescription() string {
	switch m.flow {
	case flowEncrypt:
		return "Enter the text to encrypt and an integer key."
	case flowDecrypt:
		return "Enter the ciphertext and an integer key."
	default:
		return "Try every key 1..25 and rank the results by score. Pick a row to see it in full."
	}
}

func (m *Model) panel(title, body string) string {
	content := panelTitleStyle.Render(title) + "\n" + body
	return panelStyle.Width(m.panelWidth()).Render(content)
}
