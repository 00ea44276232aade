// Package components holds reusable dashboard fragments.
package components
