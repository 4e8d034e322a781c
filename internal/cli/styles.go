// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/binghuan/bptrack/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#E85D75")
	// SuccessColor indicates successful operations and normal readings.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings and elevated readings.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors and hypertensive readings.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// categoryStyles maps each clinical category to its display style.
var categoryStyles = map[model.Category]lipgloss.Style{
	model.CategoryNormal:             SuccessStyle,
	model.CategoryElevated:           WarningStyle,
	model.CategoryHighStage1:         WarningStyle,
	model.CategoryHighStage2:         ErrorStyle,
	model.CategoryHypertensiveCrisis: ErrorStyle.Bold(true),
	model.CategoryInvalid:            SubtleStyle,
}

// CategoryStyle returns the style for a clinical category.
func CategoryStyle(category model.Category) lipgloss.Style {
	if style, ok := categoryStyles[category]; ok {
		return style
	}
	return SubtleStyle
}

// TrendGlyph returns the arrow shown next to a record's trend.
func TrendGlyph(trend model.Trend) string {
	switch trend {
	case model.TrendIncreased:
		return "↑"
	case model.TrendDecreased:
		return "↓"
	case model.TrendStable:
		return "→"
	case model.TrendFirstRecord:
		return "·"
	default:
		return "·"
	}
}
