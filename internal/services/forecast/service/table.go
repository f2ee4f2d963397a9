package service

import (
	"fmt"
	"io"
	"strings"

	"artisantrend/internal/core/trend"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

const rule = 100

func colorOf(d trend.Direction) string {
	switch d {
	case trend.Rising:
		return ansiGreen
	case trend.Declining:
		return ansiRed
	default:
		return ansiYellow
	}
}

// Render prints records as a fixed-width table; color tints each row by direction
func Render(w io.Writer, records []trend.Record, color bool) error {
	var b strings.Builder
	b.WriteString("Trend Prediction Results:\n")
	b.WriteString(strings.Repeat("=", rule) + "\n")
	fmt.Fprintf(&b, "%-28s %14s %16s %-10s %9s %11s %14s\n",
		"Product", "Current Score", "Predicted Score", "Trend", "Change %", "Confidence", "Monthly Income")
	b.WriteString(strings.Repeat("-", rule) + "\n")
	for _, r := range records {
		line := fmt.Sprintf("%-28s %14.2f %16.2f %-10s %8.2f%% %10.0f%% %14.2f",
			r.Product, r.CurrentScore, r.PredictedScore, r.Direction, r.ChangePercentage, r.Confidence, r.ApproxIncome)
		if color {
			line = colorOf(r.Direction) + line + ansiReset
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(strings.Repeat("=", rule) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
