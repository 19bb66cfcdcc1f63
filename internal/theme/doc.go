// Package theme handles colour theme loading for the sheets TUI.
// It supports loading themes from ~/.config/sheets/themes/ and provides
// embedded themes for use when no custom theme is configured.
package theme
