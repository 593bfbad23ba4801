// Package view provides pure rendering helpers for the TUI.
package view
