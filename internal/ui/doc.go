// Package ui provides semantic text formatting for CLI output.
//
// Formatters carry both a color and a plain-text fallback so output stays
// readable when color is unavailable or disabled via NO_COLOR. Commands
// compose them instead of calling fatih/color directly:
//
//	fmt.Println(ui.Success.Sprint("✓") + " Sealed backup created")
//	fmt.Println("Gift for " + ui.Highlight.Sprint(name))
//
// The reveal flow uses ui.Share for the secret share block so the digits
// are visually distinct from the surrounding instructions.
package ui
