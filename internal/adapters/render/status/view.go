package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/player-boosts-cli/internal/application"
	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(statuses []application.BoostStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Player Boost Status"),
		s.header.Render(fmt.Sprintf("profiles: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No profiles available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderProfile(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProfile(status application.BoostStatus, opts RenderOptions, s styles) string {
	parts := []string{
		s.profile.Render(profileTitle(status.Profile)),
		s.detail.Render(fmt.Sprintf("rebirths: %d  peers: %d", status.Profile.Rebirths, status.Peers)),
	}

	if len(status.Resources) == 0 {
		parts = append(parts, s.empty.Render("no boosts or balances"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, resource := range status.Resources {
		parts = append(parts, renderResource(status.Profile, resource, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderResource(profile domain.Profile, resource application.ResourceStatus, opts RenderOptions, s styles) string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.boostKey.Render(string(resource.Resource)+":"),
		" ",
		s.multiplier.Render(fmt.Sprintf("x%.2f", resource.Multiplier)),
		" ",
		s.detail.Render(fmt.Sprintf("(balance %s)", domain.FormatAmount(profile.Balance(resource.Resource)))),
	)

	lines := []string{header}
	for _, boost := range resource.Boosts {
		lines = append(lines, boostLine(boost, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func boostLine(boost domain.BoostRecord, opts RenderOptions, s styles) string {
	label := s.boostKey.Render(fmt.Sprintf("  %s", boost.ID))
	magnitude := s.detail.Render(fmt.Sprintf("+%.2f", boost.Magnitude))

	if boost.Permanent() {
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			label,
			" ",
			magnitude,
			" ",
			s.permanent.Render("permanent"),
		)
	}

	bar := renderRemainingBar(boost, opts.Now, 24, s)
	remaining := s.detail.Render(formatRemaining(*boost.ExpiresAt, opts.Now))

	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		magnitude,
		" ",
		bar,
		" ",
		remaining,
	)

	if !opts.Now.IsZero() && !boost.ActiveAt(opts.Now) {
		line += " " + s.warning.Render("[expired]")
	}

	return line
}

// renderRemainingBar draws the fraction of the boost's original window that
// is still left. Unknown windows render as a full bar.
func renderRemainingBar(boost domain.BoostRecord, now time.Time, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := remainingFraction(boost, now)
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func remainingFraction(boost domain.BoostRecord, now time.Time) float64 {
	if boost.ExpiresAt == nil {
		return 1
	}
	if now.IsZero() || boost.CreatedAt.IsZero() {
		return 1
	}

	window := boost.ExpiresAt.Sub(boost.CreatedAt)
	if window <= 0 {
		return 0
	}

	fraction := boost.ExpiresAt.Sub(now).Seconds() / window.Seconds()
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}

	return fraction
}

func formatRemaining(expiresAt, now time.Time) string {
	if now.IsZero() {
		return "expires " + expiresAt.Format(time.RFC3339)
	}
	if !expiresAt.After(now) {
		return "expired"
	}

	remaining := expiresAt.Sub(now)
	switch {
	case remaining < time.Minute:
		return fmt.Sprintf("%ds left", int(math.Ceil(remaining.Seconds())))
	case remaining < time.Hour:
		return fmt.Sprintf("%dm left", int(math.Ceil(remaining.Minutes())))
	case remaining < 24*time.Hour:
		hours := int(remaining.Hours())
		minutes := int(math.Ceil(remaining.Minutes())) - hours*60
		if minutes <= 0 {
			return fmt.Sprintf("%dh left", hours)
		}
		return fmt.Sprintf("%dh%dm left", hours, minutes)
	default:
		days := int(math.Ceil(remaining.Hours() / 24))
		return fmt.Sprintf("%dd left", days)
	}
}

func profileTitle(profile domain.Profile) string {
	trimmed := strings.TrimSpace(profile.Name)
	if trimmed == "" {
		return string(profile.ID)
	}

	return fmt.Sprintf("%s (%s)", trimmed, profile.ID)
}
