// Package templates holds the templ components that render HTML views of
// freight quotes. Run `templ generate` after editing a .templ file.
package templates
